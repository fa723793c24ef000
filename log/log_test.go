package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
	"testing"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func jsonLogger(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{
		WithFormat(FormatJSON),
		WithPretty(false),
	}, opts...)...)
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid record %q: %v", buf.String(), err)
	}

	return rec
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{" TRACE ", LevelTrace},
		{"debug", LevelDebug},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"INFO+2", Level(2)},
		{"", DefaultLevel},
		{"verbose", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelsAndFormats(t *testing.T) {
	if got := slices.Collect(Levels()); !slices.Equal(got,
		[]string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("Levels() = %q", got)
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %q", got)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	logger := jsonLogger(&buf, WithLevel(LevelWarn))

	logger.Info("dropped")

	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %s", buf.String())
	}

	logger.Warn("kept")

	if rec := decode(t, &buf); rec["msg"] != "kept" || rec["level"] != "WARN" {
		t.Errorf("record = %v", rec)
	}
}

func TestLogger_LevelLabels(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{LevelDebug, "DEBUG"},
		{LevelError, "ERROR"},
		{Level(2), "INFO+2"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer

		logger := jsonLogger(&buf, WithLevel(LevelTrace))
		logger.emit(t.Context(), tt.level, "m", nil)

		if got := decode(t, &buf)["level"]; got != tt.want {
			t.Errorf("level %d written as %v, want %s", tt.level, got, tt.want)
		}
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	tests := []struct {
		layout string
		want   *regexp.Regexp
	}{
		{"Kitchen", regexp.MustCompile(`^\d{1,2}:\d{2}(AM|PM)$`)},
		{"rfc-3339", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)},
		{"2006", regexp.MustCompile(`^\d{4}$`)},
		{"none", nil},
		{"  ", nil},
	}

	for _, tt := range tests {
		var buf bytes.Buffer

		jsonLogger(&buf, WithTimeLayout(tt.layout)).Info("m")

		ts, ok := decode(t, &buf)["time"].(string)

		switch {
		case tt.want == nil && ok:
			t.Errorf("layout %q: unexpected time %q", tt.layout, ts)
		case tt.want != nil && !tt.want.MatchString(ts):
			t.Errorf("layout %q: time = %q", tt.layout, ts)
		}
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	jsonLogger(&buf, WithCaller(true)).InfoContext(t.Context(), "m")

	src, _ := decode(t, &buf)["source"].(map[string]any)
	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source = %v, want this file", src)
	}

	buf.Reset()
	jsonLogger(&buf).Info("m")

	if _, ok := decode(t, &buf)["source"]; ok {
		t.Error("source written with caller disabled")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := jsonLogger(&buf).With(slog.String("section", "Global"))
	logger.Info("m", slog.Int("fragments", 2))

	rec := decode(t, &buf)
	if rec["section"] != "Global" || rec["fragments"] != float64(2) {
		t.Errorf("record = %v", rec)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := jsonLogger(&buf)
	strict := base.Wrap(WithLevel(LevelError))

	if base.Level() != LevelInfo || strict.Level() != LevelError {
		t.Fatalf("levels = %v, %v", base.Level(), strict.Level())
	}

	strict.Warn("dropped")

	if buf.Len() != 0 {
		t.Fatalf("wrapped logger ignored its level: %s", buf.String())
	}

	strict.Error("kept")

	if rec := decode(t, &buf); rec["msg"] != "kept" {
		t.Errorf("wrapped logger lost its output: %v", rec)
	}

	if strict.Format() != FormatJSON {
		t.Errorf("Format() = %v, want json", strict.Format())
	}
}

func TestLogger_Zero(t *testing.T) {
	var logger Logger

	logger.Info("ignored")
	logger.With(slog.String("k", "v")).ErrorContext(t.Context(), "ignored")

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Errorf("zero logger reports %v %v", logger.Level(), logger.Format())
	}

	if logger.Wrap(WithLevel(LevelDebug)).Level() != LevelDebug {
		t.Error("Wrap on zero logger ignored options")
	}
}

func TestPretty_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Warn("unresolved placeholder",
		slog.String("name", "NUKE_PATH"),
		slog.Bool("suggested", false),
		slog.Any("nothing", nil),
	)

	want := "level=WARN msg=unresolved placeholder name=NUKE_PATH suggested=false nothing=null\n"
	if got := plain(buf.String()); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if !strings.Contains(buf.String(), ansiYellow+"WARN"+ansiReset) {
		t.Errorf("level not colorized: %q", buf.String())
	}
}

func TestPretty_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))
	logger.Info("loaded", slog.Int("entries", 3))

	want := "{\n  level: INFO,\n  msg: loaded,\n  entries: 3\n}\n"
	if got := plain(buf.String()); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPretty_Groups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	grouped := slog.New(logger.Handler().WithGroup("src").WithAttrs(
		[]slog.Attr{slog.String("path", "env.yaml")}))

	grouped.Info("m", slog.Group("pos", slog.Int("line", 4), slog.Int("col", 2)))

	got := plain(buf.String())
	for _, want := range []string{"src.path=env.yaml", "src.pos.line=4", "src.pos.col=2"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestPretty_ConcurrentRecordsStayWhole(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			logger.With(slog.Int("worker", i)).Info("tick")
		})
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(plain(buf.String()), "\n"), "\n")
	if len(lines) != 32 {
		t.Fatalf("got %d lines, want 32", len(lines))
	}

	for _, line := range lines {
		if !strings.HasPrefix(line, "level=INFO msg=tick worker=") {
			t.Errorf("interleaved record %q", line)
		}
	}
}

func TestDefault_Config(t *testing.T) {
	prev := Default()
	t.Cleanup(func() {
		std.Lock()
		std.log = prev
		std.Unlock()
	})

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithFormat(FormatJSON), WithPretty(false),
		WithLevel(LevelDebug))

	DebugContext(t.Context(), "configured", slog.String("via", "Config"))

	rec := decode(t, &buf)
	if rec["msg"] != "configured" || rec["level"] != "DEBUG" || rec["via"] != "Config" {
		t.Errorf("record = %v", rec)
	}

	if prev.Level() == LevelDebug && prev.conf.output == &buf {
		t.Error("Config modified a previously returned logger")
	}
}
