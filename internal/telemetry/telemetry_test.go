package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunAttachesCorrelatableID(t *testing.T) {
	ctx, id := NewRun(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, RunID(ctx))
}

func TestRunIDEmptyWithoutNewRun(t *testing.T) {
	assert.Empty(t, RunID(context.Background()))
}

func TestWithRunAnnotatesLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx, id := NewRun(context.Background())
	logger := WithRun(ctx, New(&buf, slog.LevelInfo))
	logger.Info("determinization started")
	assert.Contains(t, buf.String(), id)
}
