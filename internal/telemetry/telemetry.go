// Package telemetry wires structured logging for CLI diagnostics (the
// check command's --verbose output) and provides run-ID correlation
// helpers. The engine packages themselves do not log.
//
// Kept on the standard library's log/slog rather than a third-party
// logger: no lightweight structured logger appears anywhere in the
// retrieved corpus except the full OpenTelemetry/Prometheus stack
// bundled with an unrelated AI-agent framework
// (_examples/jinterlante1206-AleutianLocal), and wiring a metrics
// exporter or trace SDK into a synchronous, single-threaded, no-server
// decision procedure would be pure ballast with no component to drive
// it. See DESIGN.md for the corresponding ledger entry.
package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type runIDKey struct{}

// NewRun attaches a fresh run ID to ctx, for log correlation across a
// single determinization/compile invocation (spec.md §5/§9: "each
// determinization takes its own context object").
func NewRun(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, runIDKey{}, id), id
}

// RunID extracts the run ID attached by NewRun, or "" if none.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// New builds a leveled, structured logger writing to w. The CLI uses
// this for --verbose diagnostics; library code never constructs its
// own logger, it only accepts one.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard is the zero-overhead logger used when no diagnostics were
// requested.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Default is a convenience logger writing to stderr at Info level.
func Default() *slog.Logger {
	return New(os.Stderr, slog.LevelInfo)
}

// WithRun returns logger annotated with ctx's run ID, if any.
func WithRun(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := RunID(ctx); id != "" {
		return logger.With("run_id", id)
	}
	return logger
}
