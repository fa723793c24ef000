// Package resolver derives variable values from an ordered document.
//
// Entries are resolved one at a time in document order, across section
// boundaries. For each entry, every fragment of its value is cleaned as a
// filesystem path, then each <NAME> placeholder is replaced by the current
// value of NAME in the [Table], or by the empty string if NAME is undefined.
// Substitution is a single pass: text inserted for a placeholder is never
// scanned for more placeholders. The fragments are joined with the list
// separator and the result is stored in the table before the next entry is
// resolved.
//
// An entry may refer to its own name to extend the value it had before:
//
//	PATH:
//	  - <PATH>
//	  - /opt/tools/bin
//
// [Apply] and [LoadFile] export the results to an [Environment].
package resolver
