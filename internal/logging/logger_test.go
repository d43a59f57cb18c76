package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/moltopo/internal/topology"
)

var _ topology.Logger = (*Logger)(nil)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Debugf("d %d", 1)
	l.Infof("i %d", 2)
	l.Warnf("w %d", 3)
	l.Errorf("e %d", 4)

	out := buf.String()
	for _, absent := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(out, absent) {
			t.Errorf("output contains %s: %q", absent, out)
		}
	}
	for _, present := range []string{"[WARN] w 3", "[ERROR] e 4"} {
		if !strings.Contains(out, present) {
			t.Errorf("output missing %q: %q", present, out)
		}
	}
}

func TestMoleculeDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	mol := topology.New("logged", topology.WithLogger(New(&buf, "debug")))
	if err := mol.Atoms().Add(topology.NewAtom("X", 1, [3]float64{}, [3]float64{})); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[DEBUG]") || !strings.Contains(buf.String(), topology.OpAddAtoms) {
		t.Errorf("expected debug line for commit, got %q", buf.String())
	}
}
