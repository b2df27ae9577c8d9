package handler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loghive/loghive/core"
	"github.com/loghive/loghive/formatter"
)

func TestMemoryHandlerCapturesInOrder(t *testing.T) {
	h := NewMemoryHandler()
	for i := 0; i < 5; i++ {
		h.Emit(rec("svc.worker", core.Info, fmt.Sprintf("msg-%d", i)))
	}

	tuples := h.RecordTuples()
	require.Len(t, tuples, 5)
	for i, tup := range tuples {
		assert.Equal(t, "svc.worker", tup.Name)
		assert.Equal(t, core.Info, tup.Level)
		assert.Equal(t, fmt.Sprintf("msg-%d", i), tup.Message)
	}
}

func TestMemoryHandlerLevelGate(t *testing.T) {
	h := NewMemoryHandler()
	h.SetLevel(core.Warning)

	h.Emit(rec("svc", core.Debug, "nope"))
	h.Emit(rec("svc", core.Critical, "yep"))

	tuples := h.RecordTuples()
	require.Len(t, tuples, 1)
	assert.Equal(t, "yep", tuples[0].Message)
}

func TestMemoryHandlerText(t *testing.T) {
	h := NewMemoryHandler()
	h.Emit(rec("svc", core.Info, "first"))
	h.Emit(rec("svc", core.Info, "second"))

	assert.Equal(t, "first\nsecond", h.Text())

	h.SetFormatter(formatter.New("%(levelname)s %(message)s"))
	assert.Equal(t, "INFO first\nINFO second", h.Text())
}

func TestMemoryHandlerClear(t *testing.T) {
	h := NewMemoryHandler()
	h.Emit(rec("svc", core.Info, "gone"))
	h.Clear()

	assert.Empty(t, h.Records())
	assert.Empty(t, h.RecordTuples())
	assert.Empty(t, h.Text())
}

func TestMemoryHandlerRecordsIsSnapshot(t *testing.T) {
	h := NewMemoryHandler()
	h.Emit(rec("svc", core.Info, "one"))

	snap := h.Records()
	h.Emit(rec("svc", core.Info, "two"))

	assert.Len(t, snap, 1)
	assert.Len(t, h.Records(), 2)
}
