package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ardnew/enconf/document"
)

const fmtDoc = `
Zeta: !omap
  Z2: a
  A1:
    - /x
    - /y
Alpha: !omap
  M: c
`

func TestYAMLRun(t *testing.T) {
	src := writeFile(t, t.TempDir(), "env.yaml", fmtDoc)

	var out bytes.Buffer

	y := &YAML{Indent: 2}
	if err := y.Run(testContext(t, &out, src)); err != nil {
		t.Fatalf("YAML.Run() error = %v", err)
	}

	got := out.String()
	for _, pair := range [][2]string{{"Zeta", "Alpha"}, {"Z2", "A1"}} {
		if strings.Index(got, pair[0]) > strings.Index(got, pair[1]) {
			t.Errorf("%s printed after %s:\n%s", pair[0], pair[1], got)
		}
	}

	doc, err := document.ParseString(t.Context(), got)
	if err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, got)
	}

	if doc.Len() != 3 {
		t.Errorf("output has %d entries, want 3", doc.Len())
	}
}

func TestYAMLRunMultipleSources(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.yaml", "A:\n  X: 1\n")
	second := writeFile(t, dir, "second.yaml", "B:\n  Y: 2\n")

	var out bytes.Buffer

	y := &YAML{Indent: 2}
	if err := y.Run(testContext(t, &out, first, second)); err != nil {
		t.Fatalf("YAML.Run() error = %v", err)
	}

	parts := strings.Split(out.String(), "---\n")
	if len(parts) != 2 {
		t.Fatalf("output has %d documents, want 2:\n%s", len(parts), out.String())
	}

	if !strings.Contains(parts[0], "A:") || !strings.Contains(parts[1], "B:") {
		t.Errorf("documents out of order:\n%s", out.String())
	}
}

func TestJSONRun(t *testing.T) {
	src := writeFile(t, t.TempDir(), "env.yaml", fmtDoc)

	for _, indent := range []int{0, 2} {
		var out bytes.Buffer

		j := &JSON{Indent: indent}
		if err := j.Run(testContext(t, &out, src)); err != nil {
			t.Fatalf("JSON.Run() error = %v", err)
		}

		got := out.String()
		if !json.Valid(out.Bytes()) {
			t.Fatalf("indent %d: invalid JSON:\n%s", indent, got)
		}

		if strings.Index(got, `"Zeta"`) > strings.Index(got, `"Alpha"`) {
			t.Errorf("indent %d: sections reordered:\n%s", indent, got)
		}

		if lines := strings.Count(strings.TrimSpace(got), "\n"); (indent == 0) != (lines == 0) {
			t.Errorf("indent %d: unexpected layout:\n%s", indent, got)
		}
	}
}
