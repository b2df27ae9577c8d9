package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loghive/loghive/core"
)

func testRecord() *core.Record {
	r := core.NewRecord("app.db.pool", core.Warning, "checkout slow", nil)
	r.Created = 1700000000.5
	r.Msecs = 500
	r.RelativeCreated = 1234.5
	r.Thread = 7
	r.ThreadName = "worker-1"
	r.Process = 4242
	r.ProcessName = "svc"
	return r
}

func TestPatternBasicFields(t *testing.T) {
	f := New("%(levelname)s %(name)s: %(message)s")
	out := f.Format(testRecord())
	assert.Equal(t, "WARNING app.db.pool: checkout slow", out)
}

func TestPatternNumericFields(t *testing.T) {
	f := New("%(levelno)d %(thread)d %(process)d")
	out := f.Format(testRecord())
	assert.Equal(t, "30 7 4242", out)
}

func TestPatternMsecsZeroPadding(t *testing.T) {
	r := testRecord()
	r.Msecs = 7
	out := New("%(msecs)03d").Format(r)
	assert.Equal(t, "007", out)

	r.Msecs = 512
	out = New("%(msecs)03d").Format(r)
	assert.Equal(t, "512", out)
}

func TestPatternThreadNameAlignment(t *testing.T) {
	r := testRecord()
	out := New("[%(threadName)-10s]").Format(r)
	assert.Equal(t, "[worker-1  ]", out)

	out = New("[%(threadName)10s]").Format(r)
	assert.Equal(t, "[  worker-1]", out)
}

func TestPatternLevelnameAlignment(t *testing.T) {
	out := New("%(levelname)-8s|").Format(testRecord())
	assert.Equal(t, "WARNING |", out)
}

func TestPatternUnknownPlaceholderPassesThrough(t *testing.T) {
	out := New("%(nope)s %(message)s").Format(testRecord())
	assert.Equal(t, "%(nope)s checkout slow", out)
}

func TestPatternLiteralPercent(t *testing.T) {
	out := New("cpu at 91%% now %(message)s").Format(testRecord())
	// %% is not a placeholder; it stays as written.
	assert.Equal(t, "cpu at 91%% now checkout slow", out)
}

func TestPatternAsctimeDefaultFormat(t *testing.T) {
	r := testRecord()
	out := New("%(asctime)s").Format(r)

	want := time.Unix(1700000000, 500000000).Format("2006-01-02 15:04:05")
	assert.Equal(t, want, out)
}

func TestPatternAsctimeCustomFormat(t *testing.T) {
	r := testRecord()
	out := NewWithDateFormat("%(asctime)s", "%H:%M:%S").Format(r)
	want := time.Unix(1700000000, 500000000).Format("15:04:05")
	assert.Equal(t, want, out)
}

func TestPatternSourceFields(t *testing.T) {
	r := testRecord().WithCaller("/srv/app/pool.go", 88, "Checkout")
	out := New("%(filename)s:%(lineno)d %(funcName)s %(module)s").Format(r)
	assert.Equal(t, "pool.go:88 Checkout pool", out)
}

func TestStrftimeToLayout(t *testing.T) {
	assert.Equal(t, "2006-01-02 15:04:05", strftimeToLayout("%Y-%m-%d %H:%M:%S"))
	assert.Equal(t, "15:04:05.000000", strftimeToLayout("%H:%M:%S.%f"))
	assert.Equal(t, "02/Jan/2006", strftimeToLayout("%d/%b/%Y"))
	assert.Equal(t, "100%", strftimeToLayout("100%%"))
}

func TestDefaultFormatterLayout(t *testing.T) {
	out := NewDefault().Format(testRecord())
	assert.True(t, strings.HasSuffix(out, "WARNING app.db.pool: checkout slow"), out)
}

func TestJSONFormatter(t *testing.T) {
	r := testRecord()
	r.Extra = map[string]any{"request_id": "r-9", "attempt": 3}

	out := NewJSONFormatter().Format(r)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "app.db.pool", got["name"])
	assert.Equal(t, float64(30), got["levelno"])
	assert.Equal(t, "WARNING", got["levelname"])
	assert.Equal(t, "checkout slow", got["msg"])
	assert.Equal(t, "worker-1", got["threadName"])
	assert.Equal(t, "r-9", got["request_id"])
	assert.Equal(t, float64(3), got["attempt"])
	// No source info captured, so location keys stay absent.
	assert.NotContains(t, got, "pathname")
}

func TestJSONFormatterExtraCannotShadowBuiltins(t *testing.T) {
	r := testRecord()
	r.Extra = map[string]any{"msg": "spoofed"}

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(NewJSONFormatter().Format(r)), &got))
	assert.Equal(t, "checkout slow", got["msg"])
}

func TestFormatterFunc(t *testing.T) {
	f := Func(func(r *core.Record) string { return "<" + r.Message + ">" })
	assert.Equal(t, "<checkout slow>", f.Format(testRecord()))
}
