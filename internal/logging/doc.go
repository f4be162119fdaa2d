// Package logging provides structured logging for searcher.
//
// The package wraps Go's log/slog to write JSON-formatted logs, either to
// stderr or to a size-rotated file in a log directory. Child loggers carry
// persistent attributes such as the document being searched and the
// container a searcher is attached to.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithDocument("menu.html").Debug("search pass", "items", 12, "matched", 3)
//
// # Testing
//
// Use [NopLogger] to discard all log output.
package logging
