package formatter

import (
	"encoding/json"
	"strconv"

	"github.com/loghive/loghive/core"
)

// JSONFormatter renders one JSON object per record using the conventional
// field names. Extra keys are flattened into the top-level object; an
// extra key that collides with a built-in field name is skipped rather
// than allowed to shadow it.
type JSONFormatter struct {
	// IncludeSource adds pathname/lineno/funcName even when empty.
	IncludeSource bool
}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format implements Formatter.
func (f *JSONFormatter) Format(r *core.Record) string {
	obj := map[string]any{
		"name":            r.Name,
		"levelno":         int(r.LevelNo),
		"levelname":       r.LevelName,
		"created":         r.Created,
		"msecs":           r.Msecs,
		"relativeCreated": r.RelativeCreated,
		"thread":          r.Thread,
		"threadName":      r.ThreadName,
		"process":         r.Process,
		"processName":     r.ProcessName,
		"msg":             r.Message,
	}
	if f.IncludeSource || r.PathName != "" {
		obj["pathname"] = r.PathName
		obj["filename"] = r.FileName
		obj["module"] = r.Module
		obj["lineno"] = r.LineNo
		obj["funcName"] = r.FuncName
	}
	if r.ExcText != "" {
		obj["exc_text"] = r.ExcText
	}
	if r.StackInfo != "" {
		obj["stack_info"] = r.StackInfo
	}
	if r.TaskName != "" {
		obj["taskName"] = r.TaskName
	}
	for k, v := range r.Extra {
		if _, taken := obj[k]; taken {
			continue
		}
		obj[k] = v
	}

	data, err := json.Marshal(obj)
	if err != nil {
		// Only reachable with a non-serializable extra value; degrade to a
		// minimal object instead of losing the record.
		return `{"name":` + strconv.Quote(r.Name) +
			`,"levelno":` + strconv.Itoa(int(r.LevelNo)) +
			`,"msg":` + strconv.Quote(r.Message) + `}`
	}
	return string(data)
}
