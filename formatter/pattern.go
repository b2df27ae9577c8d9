package formatter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/loghive/loghive/core"
)

// DefaultDateFormat is the strftime-style layout used for %(asctime)s when
// no date format is configured.
const DefaultDateFormat = "%Y-%m-%d %H:%M:%S"

// placeholderRe matches %(field)s style placeholders with optional
// alignment flag, zero-pad flag and width, e.g. %(threadName)-10s or
// %(msecs)03d.
var placeholderRe = regexp.MustCompile(`%\((\w+)\)(-?)(0?)(\d*)([sdf])`)

// PatternFormatter renders records through a %(field)s template. Unknown
// placeholders are left in the output untouched.
type PatternFormatter struct {
	pattern    string
	dateLayout string // Go layout converted from the strftime format
}

// New creates a PatternFormatter with the default date format.
func New(pattern string) *PatternFormatter {
	return NewWithDateFormat(pattern, DefaultDateFormat)
}

// NewWithDateFormat creates a PatternFormatter rendering %(asctime)s
// through the given strftime-style date format.
func NewWithDateFormat(pattern, dateFormat string) *PatternFormatter {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	return &PatternFormatter{
		pattern:    pattern,
		dateLayout: strftimeToLayout(dateFormat),
	}
}

// Format implements Formatter.
func (f *PatternFormatter) Format(r *core.Record) string {
	return placeholderRe.ReplaceAllStringFunc(f.pattern, func(match string) string {
		sub := placeholderRe.FindStringSubmatch(match)
		field, leftAlign, zeroPad, widthStr, verb := sub[1], sub[2] == "-", sub[3] == "0", sub[4], sub[5]

		value, ok := f.fieldValue(r, field, verb)
		if !ok {
			// Unrecognized placeholder: pass through literally.
			return match
		}

		width := 0
		if widthStr != "" {
			width, _ = strconv.Atoi(widthStr)
		}
		return pad(value, width, leftAlign, zeroPad)
	})
}

// fieldValue renders a single record field according to the placeholder
// verb. The bool result is false for unknown field names.
func (f *PatternFormatter) fieldValue(r *core.Record, field, verb string) (string, bool) {
	switch field {
	case "name":
		return r.Name, true
	case "levelname":
		return r.LevelName, true
	case "levelno":
		return strconv.Itoa(int(r.LevelNo)), true
	case "pathname":
		return r.PathName, true
	case "filename":
		return r.FileName, true
	case "module":
		return r.Module, true
	case "lineno":
		return strconv.Itoa(r.LineNo), true
	case "funcName":
		return r.FuncName, true
	case "created":
		return formatFloat(r.Created, verb), true
	case "msecs":
		if verb == "d" {
			return strconv.Itoa(int(r.Msecs)), true
		}
		return formatFloat(r.Msecs, verb), true
	case "relativeCreated":
		return formatFloat(r.RelativeCreated, verb), true
	case "thread":
		return strconv.FormatUint(r.Thread, 10), true
	case "threadName":
		return r.ThreadName, true
	case "processName":
		return r.ProcessName, true
	case "process":
		return strconv.Itoa(r.Process), true
	case "message":
		return r.Message, true
	case "asctime":
		return f.asctime(r), true
	default:
		return "", false
	}
}

func (f *PatternFormatter) asctime(r *core.Record) string {
	sec := int64(r.Created)
	nsec := int64((r.Created - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).Format(f.dateLayout)
}

func formatFloat(v float64, verb string) string {
	if verb == "d" {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func pad(s string, width int, leftAlign, zeroPad bool) string {
	if width <= len(s) {
		return s
	}
	fill := " "
	if zeroPad {
		fill = "0"
	}
	padding := strings.Repeat(fill, width-len(s))
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// strftimeLayouts maps strftime directives onto Go reference-time tokens.
var strftimeLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'f': "000000",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'z': "-0700",
	'Z': "MST",
}

// strftimeToLayout converts an strftime-style format string to a Go time
// layout. Directives without a Go equivalent are dropped.
func strftimeToLayout(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		d := format[i]
		if d == '%' {
			b.WriteByte('%')
			continue
		}
		if layout, ok := strftimeLayouts[d]; ok {
			b.WriteString(layout)
		}
	}
	return b.String()
}
