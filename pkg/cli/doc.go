// Package cli holds helpers shared by the rulediff commands: output
// rendering, exit codes, lookup progress and signal handling.
//
//	ctx, stop := cli.SignalContext(context.Background())
//	defer stop()
//
//	rep, err := svc.Compare(ctx, in)
//	if err != nil {
//		os.Exit(cli.ExitCode(err))
//	}
//	_ = cli.WriteReport(os.Stdout, rep, cli.ReportOptions{Format: cli.FormatText})
package cli
