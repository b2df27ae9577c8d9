package formatter

import (
	"github.com/loghive/loghive/core"
)

// Formatter renders a log record into its output string. Implementations
// must be stateless with respect to records: the same formatter instance
// is shared by concurrent handler emissions.
type Formatter interface {
	Format(r *core.Record) string
}

// Func adapts a plain function to the Formatter interface.
type Func func(r *core.Record) string

// Format implements Formatter.
func (f Func) Format(r *core.Record) string { return f(r) }

// DefaultPattern is the layout handlers get from NewDefault.
const DefaultPattern = "%(asctime)s %(levelname)s %(name)s: %(message)s"

// NewDefault returns a PatternFormatter with the default layout.
func NewDefault() *PatternFormatter {
	return New(DefaultPattern)
}
