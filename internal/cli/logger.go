package cli

import (
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"

	"github.com/seitarof/gen-from/internal/diag"
)

// NewLogger builds the CLI logger writing to w at the given level.
func NewLogger(w io.Writer, level string) (*charmlog.Logger, error) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return charmlog.NewWithOptions(w, charmlog.Options{
		Prefix: "gen-from",
		Level:  lvl,
	}), nil
}

// diagnosticLogger reports each diagnostic through logger as it arrives.
func diagnosticLogger(logger *charmlog.Logger) diag.Sink {
	return diag.SinkFunc(func(d diag.Diagnostic) {
		switch d.Severity {
		case diag.SeverityWarning:
			logger.Warn(d.String())
		default:
			logger.Error(d.String())
		}
	})
}
