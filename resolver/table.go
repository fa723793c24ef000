package resolver

import (
	"maps"
	"slices"
	"strings"
)

// Table maps variable names to resolved values.
//
// A Table is seeded from a host environment, then updated in place as each
// entry of a document is resolved. Entries read the table to substitute
// placeholders, so every entry sees the result of all entries before it.
type Table map[string]string

// TableFrom returns a Table seeded from a list of "KEY=VALUE" strings, such
// as the result of [os.Environ]. Strings without a separator are ignored.
// Later duplicates of a key win.
func TableFrom(environ []string) Table {
	t := make(Table, len(environ))

	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}

		t[key] = val
	}

	return t
}

// Lookup returns the value of name and whether it is defined.
func (t Table) Lookup(name string) (string, bool) {
	v, ok := t[name]

	return v, ok
}

// Set defines name with the given value, replacing any prior value.
func (t Table) Set(name, value string) { t[name] = value }

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}

	return maps.Clone(t)
}

// Names returns the defined names in lexical order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Environ returns the table as "KEY=VALUE" strings ordered by key.
func (t Table) Environ() []string {
	env := make([]string, 0, len(t))
	for _, name := range t.Names() {
		env = append(env, name+"="+t[name])
	}

	return env
}
