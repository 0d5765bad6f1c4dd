package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"srs-hq/rulediff/pkg/cli"
	"srs-hq/rulediff/pkg/comparator"
	"srs-hq/rulediff/pkg/config"
	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/report"
	"srs-hq/rulediff/pkg/source"
	"srs-hq/rulediff/pkg/telemetry"
)

// compareOptions holds the compare flags.
type compareOptions struct {
	repo      string
	oldRef    string
	newRef    string
	path      string
	newPath   string
	format    string
	partition string
	outputDir string
	summary   bool
	noEnrich  bool
	mode      string
	progress  bool
	watch     bool

	dbUser     string
	dbPassword string
	dbHost     string
	dbPort     string
	dbService  string
}

var compareFlags = compareOptions{newRef: "HEAD", partition: "dropped"}

var compareCmd = &cobra.Command{
	Use:   "compare [OLD.xml NEW.xml]",
	Short: "Compare two rule-definition documents",
	Long: `Compare two rule-definition documents and report dropped, new and matched rules.

Documents are read from files, or from two revisions of a git repository.
Dropped and matched rules are enriched with their stored configuration
unless --no-enrich is given.

Examples:
  # Print a summary table
  rulediff compare old.xml new.xml

  # Write the three CSV reports
  rulediff compare old.xml new.xml --output-dir ./out

  # Print the dropped rules as CSV
  rulediff compare old.xml new.xml --format csv --partition dropped

  # Compare a document across git revisions
  rulediff compare --repo . --old-ref v1.2.0 --new-ref HEAD --path rules/srs.xml

  # Rerun whenever either file changes
  rulediff compare old.xml new.xml --watch`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	f := compareCmd.Flags()
	f.StringVar(&compareFlags.repo, "repo", "", "git repository path or URL to read documents from")
	f.StringVar(&compareFlags.oldRef, "old-ref", "", "old revision (with --repo)")
	f.StringVar(&compareFlags.newRef, "new-ref", "HEAD", "new revision (with --repo)")
	f.StringVar(&compareFlags.path, "path", "", "document path inside the repository (with --repo)")
	f.StringVar(&compareFlags.newPath, "new-path", "", "document path at the new revision when it moved (with --repo)")
	f.StringVarP(&compareFlags.format, "format", "f", "", "output format: text, json or csv (default from config)")
	f.StringVar(&compareFlags.partition, "partition", "dropped", "partition for csv output: dropped, new or matched")
	f.StringVarP(&compareFlags.outputDir, "output-dir", "o", "", "write the three partition CSV files to this directory")
	f.BoolVar(&compareFlags.summary, "summary", false, "print only counts in text output")
	f.BoolVar(&compareFlags.noEnrich, "no-enrich", false, "skip stored data lookups")
	f.StringVar(&compareFlags.mode, "lookup-mode", "", "override lookup mode: http or store")
	f.BoolVar(&compareFlags.progress, "progress", false, "show lookup progress on stderr")
	f.BoolVarP(&compareFlags.watch, "watch", "w", false, "rerun the comparison when either file changes")

	f.StringVar(&compareFlags.dbUser, "db-user", "", "store username (overrides config)")
	f.StringVar(&compareFlags.dbPassword, "db-password", "", "store password (prefer RULEDIFF_CREDENTIALS_PASSWORD)")
	f.StringVar(&compareFlags.dbHost, "db-host", "", "store host (overrides config)")
	f.StringVar(&compareFlags.dbPort, "db-port", "", "store port (overrides config)")
	f.StringVar(&compareFlags.dbService, "db-service", "", "store service name (overrides config)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCompareFlags(cfg)

	opts, err := reportOptions(cfg)
	if err != nil {
		return err
	}

	if compareFlags.repo == "" && len(args) != 2 {
		return cli.NewConfigError("args", "compare needs OLD and NEW documents, or --repo with --old-ref and --path")
	}
	if compareFlags.watch && compareFlags.repo != "" {
		return cli.NewConfigError("watch", "--watch works with files only")
	}

	tel, err := newTelemetry(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = tel.Shutdown(context.Background()) }()

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	var b *backend
	if !compareFlags.noEnrich {
		b, err = newBackend(ctx, cfg, tel, cfg.Lookup.Mode)
		if err != nil {
			return err
		}
		defer b.Close()
	}

	run := &compareRun{
		cfg:    cfg,
		tel:    tel,
		opts:   opts,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		creds:  credentials(&cfg.Credentials),
	}

	var progress *cli.LookupProgress
	var lookupMetrics enrich.Metrics
	if compareFlags.progress && b != nil {
		progress = cli.NewLookupProgress(run.errOut, tel.Metrics())
		lookupMetrics = progress
	}
	run.svc = newComparator(cfg, tel, b, lookupMetrics)
	run.progress = progress

	if compareFlags.repo != "" {
		oldDoc, newDoc, err := readRevisions(ctx, cfg, tel)
		if err != nil {
			return err
		}
		return run.once(ctx, oldDoc, newDoc)
	}

	oldPath, newPath := args[0], args[1]
	err = run.files(ctx, oldPath, newPath)
	if !compareFlags.watch {
		return err
	}
	if err != nil {
		fmt.Fprintln(run.errOut, "Error:", err)
	}
	return watchFiles(ctx, run, oldPath, newPath)
}

func applyCompareFlags(cfg *config.Config) {
	if compareFlags.format != "" {
		cfg.Report.Format = compareFlags.format
	}
	if compareFlags.outputDir != "" {
		cfg.Report.OutputDir = compareFlags.outputDir
	}
	if compareFlags.mode != "" {
		cfg.Lookup.Mode = compareFlags.mode
	}

	c := &cfg.Credentials
	overrides := []struct {
		value string
		dst   *string
	}{
		{compareFlags.dbUser, &c.Username},
		{compareFlags.dbPassword, &c.Password},
		{compareFlags.dbHost, &c.Host},
		{compareFlags.dbPort, &c.Port},
		{compareFlags.dbService, &c.ServiceName},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = o.value
		}
	}
}

func reportOptions(cfg *config.Config) (cli.ReportOptions, error) {
	format, err := cli.ParseFormat(cfg.Report.Format)
	if err != nil {
		return cli.ReportOptions{}, err
	}
	opts := cli.ReportOptions{Format: format, Summary: compareFlags.summary}
	if format == cli.FormatCSV {
		p, err := report.ParsePartition(compareFlags.partition)
		if err != nil {
			return cli.ReportOptions{}, cli.NewConfigError("partition", err.Error())
		}
		opts.Partition = p
	}
	return opts, nil
}

// compareRun holds what one or more comparisons of the same command share.
type compareRun struct {
	cfg      *config.Config
	tel      *telemetry.Telemetry
	svc      *comparator.Service
	opts     cli.ReportOptions
	creds    lookup.Credentials
	progress *cli.LookupProgress
	out      io.Writer
	errOut   io.Writer

	// mu serializes watched reruns.
	mu sync.Mutex
}

func (r *compareRun) files(ctx context.Context, oldPath, newPath string) error {
	oldDoc, err := source.ReadFile(oldPath)
	if err != nil {
		return comparator.NewInputError("old", comparator.ErrUnreadableDocument, err)
	}
	newDoc, err := source.ReadFile(newPath)
	if err != nil {
		return comparator.NewInputError("new", comparator.ErrUnreadableDocument, err)
	}
	return r.once(ctx, oldDoc, newDoc)
}

func (r *compareRun) once(ctx context.Context, oldDoc, newDoc source.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep, err := r.svc.Compare(ctx, comparator.Input{
		Old:            oldDoc,
		New:            newDoc,
		Credentials:    r.creds,
		SkipEnrichment: compareFlags.noEnrich,
	})
	if r.progress != nil {
		r.progress.Finish()
	}
	if err != nil {
		return cli.NewCommandError("compare", err)
	}

	if dir := r.cfg.Report.OutputDir; dir != "" {
		written, err := report.WriteDir(dir, rep)
		if err != nil {
			return cli.NewCommandError("compare", err)
		}
		for _, path := range written {
			fmt.Fprintf(r.errOut, "✓ wrote %s (%d rules)\n", path, rep.Len(partitionOf(path)))
		}
	}

	return cli.WriteReport(r.out, rep, r.opts)
}

// partitionOf maps a written CSV file back to its partition.
func partitionOf(path string) report.Partition {
	base := filepath.Base(path)
	for _, p := range report.Partitions {
		if p.FileName() == base {
			return p
		}
	}
	return ""
}

func readRevisions(ctx context.Context, cfg *config.Config, tel *telemetry.Telemetry) (source.Document, source.Document, error) {
	if compareFlags.oldRef == "" || compareFlags.path == "" {
		return source.Document{}, source.Document{}, cli.NewConfigError("repo", "--repo needs --old-ref and --path")
	}

	auth, err := source.NewAuthProvider(&cfg.Source.Git.Auth)
	if err != nil {
		return source.Document{}, source.Document{}, cli.NewConfigError("source.git.auth", err.Error())
	}
	repo := source.NewGitSource(compareFlags.repo, source.GitOptions{
		Auth:         auth,
		CloneTimeout: cfg.Source.Git.CloneTimeout,
		Logger:       tel.Logger(),
	})
	defer repo.Close()

	newPath := compareFlags.newPath
	if newPath == "" {
		newPath = compareFlags.path
	}

	oldDoc, err := repo.ReadAt(ctx, compareFlags.oldRef, compareFlags.path)
	if err != nil {
		return source.Document{}, source.Document{}, comparator.NewInputError("old", comparator.ErrUnreadableDocument, err)
	}
	newDoc, err := repo.ReadAt(ctx, compareFlags.newRef, newPath)
	if err != nil {
		return source.Document{}, source.Document{}, comparator.NewInputError("new", comparator.ErrUnreadableDocument, err)
	}
	return oldDoc, newDoc, nil
}

func watchFiles(ctx context.Context, run *compareRun, oldPath, newPath string) error {
	w, err := source.NewWatcher([]string{oldPath, newPath}, run.cfg.Source.WatchDebounce, run.tel.Logger())
	if err != nil {
		return cli.NewCommandError("compare", err)
	}

	fmt.Fprintf(run.errOut, "Watching %s and %s (Ctrl+C to stop)\n", oldPath, newPath)
	return w.Watch(ctx, func(changed string) {
		fmt.Fprintf(run.errOut, "\n%s changed, comparing again\n", changed)
		if err := run.files(ctx, oldPath, newPath); err != nil {
			fmt.Fprintln(run.errOut, "Error:", err)
		}
	})
}
