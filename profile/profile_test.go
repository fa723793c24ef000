package profile

import (
	"slices"
	"testing"
)

func TestStart_NoMode(t *testing.T) {
	p := Start(WithDir(t.TempDir()), WithQuiet(true))
	if _, ok := p.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", p)
	}

	p.Stop()
	p.Stop()
}

func TestStart_UnknownMode(t *testing.T) {
	p := Start(WithMode("no-such-mode"), WithDir(t.TempDir()), WithQuiet(true))
	if _, ok := p.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", p)
	}

	p.Stop()
}

func TestOptions(t *testing.T) {
	var s settings
	for _, opt := range []Option{
		WithMode("cpu"),
		WithDir("/tmp/profiles"),
		WithQuiet(true),
		WithMode("heap"),
	} {
		opt(&s)
	}

	if s != (settings{mode: "heap", dir: "/tmp/profiles", quiet: true}) {
		t.Errorf("settings = %+v", s)
	}
}

func TestModes_Sorted(t *testing.T) {
	if m := Modes(); !slices.IsSorted(m) {
		t.Errorf("Modes() = %q, want sorted", m)
	}
}
