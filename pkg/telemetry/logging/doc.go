// Package logging builds the structured logger used across rulediff.
//
// Loggers are plain *slog.Logger values. [New] selects a handler for the
// configured format (JSON, logfmt-style text, or a colourised console
// format for terminals) and wraps it so that credential-bearing attributes
// never reach the output:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
// Attributes whose key names a secret (password, dsn, connect_string,
// db_creds, ...) are replaced with "***". String values are scrubbed of
// passwords embedded in connection URLs and key=value pairs.
//
// Request and comparison IDs travel in the context; [FromContext] returns a
// logger carrying them together with the active trace ID.
package logging
