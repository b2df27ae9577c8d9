package handler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loghive/loghive/core"
)

func TestSlogHandlerBridgesRecords(t *testing.T) {
	mem := NewMemoryHandler()
	logger := slog.New(NewSlogHandler(mem, "svc.bridge", core.Debug))

	logger.Info("hello", "user", "ada")
	logger.Error("boom")

	tuples := mem.RecordTuples()
	require.Len(t, tuples, 2)
	assert.Equal(t, "svc.bridge", tuples[0].Name)
	assert.Equal(t, core.Info, tuples[0].Level)
	assert.Equal(t, "hello", tuples[0].Message)
	assert.Equal(t, core.Error, tuples[1].Level)

	records := mem.Records()
	require.NotNil(t, records[0].Extra)
	assert.Equal(t, "ada", records[0].Extra["user"])
}

func TestSlogHandlerEnabledGate(t *testing.T) {
	mem := NewMemoryHandler()
	logger := slog.New(NewSlogHandler(mem, "svc", core.Warning))

	logger.Debug("below")
	logger.Info("below too")
	logger.Warn("passes")

	tuples := mem.RecordTuples()
	require.Len(t, tuples, 1)
	assert.Equal(t, "passes", tuples[0].Message)
}

func TestSlogHandlerWithAttrsAndGroups(t *testing.T) {
	mem := NewMemoryHandler()
	logger := slog.New(NewSlogHandler(mem, "svc", core.Debug))

	logger.With("region", "eu").WithGroup("req").Info("served", "id", 7)

	records := mem.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "eu", records[0].Extra["region"])
	assert.Equal(t, int64(7), records[0].Extra["req.id"])
}

func TestSlogHandlerPreservesRecordTime(t *testing.T) {
	mem := NewMemoryHandler()
	sh := NewSlogHandler(mem, "svc", core.Debug)

	at := time.Date(2024, 3, 1, 12, 0, 0, 250_000_000, time.UTC)
	record := slog.NewRecord(at, slog.LevelInfo, "stamped", 0)
	require.NoError(t, sh.Handle(context.Background(), record))

	records := mem.Records()
	require.Len(t, records, 1)
	assert.InDelta(t, float64(at.UnixNano())/1e9, records[0].Created, 1e-6)
	assert.InDelta(t, 250.0, records[0].Msecs, 0.001)
}

func TestSlogLevelMapping(t *testing.T) {
	assert.Equal(t, core.Debug, slogLevel(slog.LevelDebug))
	assert.Equal(t, core.Debug, slogLevel(slog.LevelDebug-4))
	assert.Equal(t, core.Info, slogLevel(slog.LevelInfo))
	assert.Equal(t, core.Warning, slogLevel(slog.LevelWarn))
	assert.Equal(t, core.Error, slogLevel(slog.LevelError))
	assert.Equal(t, core.Error, slogLevel(slog.LevelError+4))
}
