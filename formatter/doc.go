// Package formatter defines how log records are rendered into strings.
//
// The Formatter contract is a pure function from record to string;
// formatters hold configuration only and may be shared freely between
// handlers and goroutines.
//
// PatternFormatter implements the %(field)s template mini-language,
// including width and alignment flags such as %(threadName)-10s and
// %(msecs)03d, with asctime rendered through an strftime-style date
// format. JSONFormatter renders one JSON object per record with the
// conventional field names (levelname, msg, created, ...), flattening any
// structured extra values into the object.
package formatter
