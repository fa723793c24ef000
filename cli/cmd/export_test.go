package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

const exportDoc = `
Global: !omap
  ENCONF_EXPORT_Z: /z
  ENCONF_EXPORT_A:
    - <ENCONF_EXPORT_Z>/a
    - /b
Quote: !omap
  ENCONF_EXPORT_Q: it's
  ENCONF_EXPORT_Z: <ENCONF_EXPORT_Z>/again
`

func runExport(t *testing.T, format string) string {
	t.Helper()

	src := writeFile(t, t.TempDir(), "env.yaml", exportDoc)

	var out bytes.Buffer

	e := &Export{Format: format, Indent: 2}
	if err := e.Run(testContext(t, &out, src)); err != nil {
		t.Fatalf("Export.Run() error = %v", err)
	}

	if _, ok := os.LookupEnv("ENCONF_EXPORT_A"); ok {
		t.Error("export modified the process environment")
	}

	return out.String()
}

var sep = string(os.PathListSeparator)

func TestExportSh(t *testing.T) {
	got := runExport(t, "sh")

	want := strings.Join([]string{
		"export ENCONF_EXPORT_Z='/z/again'",
		"export ENCONF_EXPORT_A='/z/a" + sep + "/b'",
		`export ENCONF_EXPORT_Q='it'\''s'`,
	}, "\n") + "\n"

	if got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestExportFish(t *testing.T) {
	got := runExport(t, "fish")

	if !strings.Contains(got, `set -gx ENCONF_EXPORT_Q 'it\'s';`) {
		t.Errorf("output does not quote for fish:\n%s", got)
	}

	if !strings.HasPrefix(got, "set -gx ENCONF_EXPORT_Z '/z/again';\n") {
		t.Errorf("output does not start with the first assigned name:\n%s", got)
	}
}

func TestExportJSON(t *testing.T) {
	got := runExport(t, "json")

	var vars map[string]string
	if err := json.Unmarshal([]byte(got), &vars); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, got)
	}

	if vars["ENCONF_EXPORT_A"] != "/z/a"+sep+"/b" {
		t.Errorf("ENCONF_EXPORT_A = %q", vars["ENCONF_EXPORT_A"])
	}

	if strings.Index(got, "ENCONF_EXPORT_Z") > strings.Index(got, "ENCONF_EXPORT_A") {
		t.Errorf("keys are not in assignment order:\n%s", got)
	}
}

func TestExportYAML(t *testing.T) {
	got := runExport(t, "yaml")

	var vars yaml.MapSlice

	dec := yaml.NewDecoder(strings.NewReader(got), yaml.UseOrderedMap())
	if err := dec.DecodeContext(context.Background(), &vars); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, got)
	}

	var keys []string
	for _, item := range vars {
		keys = append(keys, item.Key.(string))
	}

	want := []string{"ENCONF_EXPORT_Z", "ENCONF_EXPORT_A", "ENCONF_EXPORT_Q"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("keys = %v, want %v", keys, want)
	}

	if vars[0].Value != "/z/again" {
		t.Errorf("ENCONF_EXPORT_Z = %v, want the final value", vars[0].Value)
	}
}

func TestQuoteSh(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "''"},
		{"plain", "'plain'"},
		{"a b", "'a b'"},
		{"$HOME", "'$HOME'"},
		{"it's", `'it'\''s'`},
	}

	for _, tt := range tests {
		if got := quoteSh(tt.in); got != tt.want {
			t.Errorf("quoteSh(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQuoteFish(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "''"},
		{"$HOME", "'$HOME'"},
		{"it's", `'it\'s'`},
		{`a\b`, `'a\\b'`},
	}

	for _, tt := range tests {
		if got := quoteFish(tt.in); got != tt.want {
			t.Errorf("quoteFish(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
