package document

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Document is an ordered configuration document: a sequence of sections,
// each holding a sequence of entries, in the order they were authored.
type Document struct {
	Sections []Section
}

// Section is a named group of entries.
//
// Sections only group entries for authoring purposes. They do not scope
// names: every entry in a document shares one namespace.
type Section struct {
	Name    string
	Entries []Entry
}

// Entry is a named variable definition.
//
// Value holds the decoded YAML value verbatim: usually a string, a number,
// a boolean, nil, or a []any of those.
type Entry struct {
	Name  string
	Value any
}

// New returns a Document containing the given sections.
func New(sections ...Section) *Document {
	return &Document{Sections: sections}
}

// NewSection returns a Section with the given name and entries.
func NewSection(name string, entries ...Entry) Section {
	return Section{Name: name, Entries: entries}
}

// NewEntry returns an Entry with the given name and value.
func NewEntry(name string, value any) Entry {
	return Entry{Name: name, Value: value}
}

// Entries returns an iterator over every entry of the document in document
// order, paired with the name of the section containing it.
func (d *Document) Entries() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		if d == nil {
			return
		}

		for _, sec := range d.Sections {
			for _, ent := range sec.Entries {
				if !yield(sec.Name, ent) {
					return
				}
			}
		}
	}
}

// Len returns the total number of entries in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}

	n := 0
	for _, sec := range d.Sections {
		n += len(sec.Entries)
	}

	return n
}

// Fragments returns the raw fragments of the entry's value.
//
// A sequence yields one fragment per non-null element. A null value yields no
// fragments. Any other value yields a single fragment. Every fragment is
// coerced to its string form.
func (e Entry) Fragments() []string {
	switch v := e.Value.(type) {
	case nil:
		return []string{}

	case []any:
		frags := make([]string, 0, len(v))
		for _, elem := range v {
			if elem != nil {
				frags = append(frags, stringify(elem))
			}
		}

		return frags

	default:
		return []string{stringify(v)}
	}
}

// stringify coerces a decoded YAML value to a string.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return formatFloat(v)
	case yaml.MapSlice:
		return fmt.Sprint(v.ToMap())
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat writes f with the fewest digits that round-trip. Values of
// magnitude in [1e-4, 1e16) use positional notation and always keep a
// fractional part, so 2.0 stays "2.0". Others use exponent notation.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
