package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loghive/loghive/core"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFileHandlerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(path)
	require.NoError(t, err)
	defer h.Close()

	h.Emit(rec("svc", core.Info, "one"))
	h.Emit(rec("svc", core.Info, "two"))
	h.Flush()

	assert.Equal(t, "one\ntwo\n", readFile(t, path))
}

func TestFileHandlerInvalidPathFailsFast(t *testing.T) {
	_, err := NewFileHandler(filepath.Join(t.TempDir(), "missing", "dir", "app.log"))
	assert.Error(t, err)
}

func TestFileHandlerFlushLevelTiering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(path)
	require.NoError(t, err)
	defer h.Close()

	// Below the Error flush level the write may sit in the buffer.
	h.Emit(rec("svc", core.Debug, "buffered"))
	assert.Empty(t, readFile(t, path))

	// An Error record forces the buffer out before Emit returns.
	h.Emit(rec("svc", core.Error, "durable"))
	assert.Equal(t, "buffered\ndurable\n", readFile(t, path))
}

func TestFileHandlerCustomFlushLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(path)
	require.NoError(t, err)
	defer h.Close()

	h.SetFlushLevel(core.Warning)
	h.Emit(rec("svc", core.Warning, "warn flushes now"))

	assert.Equal(t, "warn flushes now\n", readFile(t, path))
}

func TestFileHandlerManualFlushAlwaysFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(path)
	require.NoError(t, err)
	defer h.Close()

	h.Emit(rec("svc", core.Debug, "buffered"))
	h.Flush()

	assert.Equal(t, "buffered\n", readFile(t, path))
}

func TestFileHandlerCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(path)
	require.NoError(t, err)

	h.Emit(rec("svc", core.Info, "last"))
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	assert.Equal(t, "last\n", readFile(t, path))
}

func TestFileHandlerEmitAfterCloseReportsErrClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(path)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	var got error
	h.SetErrorCallback(func(err error) { got = err })
	h.Emit(rec("svc", core.Info, "late"))

	assert.ErrorIs(t, got, ErrClosed)
}
