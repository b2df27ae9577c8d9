package core

// Filter decides whether a record continues through the pipeline. A false
// return drops the record silently; it is not an error.
type Filter interface {
	Allow(r *Record) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(r *Record) bool

// Allow implements Filter.
func (f FilterFunc) Allow(r *Record) bool { return f(r) }

// NamePrefixFilter allows only records whose logger name equals the prefix
// or sits below it in the dotted hierarchy.
type NamePrefixFilter struct {
	Prefix string
}

// Allow implements Filter.
func (f *NamePrefixFilter) Allow(r *Record) bool {
	if f.Prefix == "" || r.Name == f.Prefix {
		return true
	}
	return len(r.Name) > len(f.Prefix) &&
		r.Name[:len(f.Prefix)] == f.Prefix &&
		r.Name[len(f.Prefix)] == '.'
}
