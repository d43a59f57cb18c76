package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/moltopo/internal/numeric"
	"github.com/san-kum/moltopo/internal/topology"
	"github.com/san-kum/moltopo/internal/viz"
)

func TestCanvasSVG_OneCirclePerDot(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(7, 7)

	var buf bytes.Buffer
	if err := CanvasSVG(&buf, c, 2, "#00ff00"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	if !strings.Contains(out, `width="16" height="16"`) {
		t.Errorf("unexpected size header:\n%s", out)
	}
	if !strings.Contains(out, `cx="1.0" cy="1.0"`) {
		t.Errorf("missing dot at origin:\n%s", out)
	}
	if !strings.Contains(out, `fill="#00ff00"`) {
		t.Error("fill color not applied")
	}
}

func TestCanvasSVG_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := CanvasSVG(&buf, nil, 1, "red"); err == nil {
		t.Error("nil canvas accepted")
	}
	if err := CanvasSVG(&buf, viz.NewCanvas(1, 1), 0, "red"); err == nil {
		t.Error("zero scale accepted")
	}
}

func TestMoleculeSVG(t *testing.T) {
	mol := topology.New("pair")
	atoms := []*topology.Atom{
		topology.NewAtom("A", 1, numeric.Vec3{-1, 0, 0}, numeric.Vec3{}),
		topology.NewAtom("B", 1, numeric.Vec3{1, 0, 0}, numeric.Vec3{}),
	}
	if err := mol.Atoms().AddMany(atoms); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "pair.svg")
	if err := MoleculeSVG(path, mol, viz.GetTheme("ocean")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<circle") {
		t.Error("rendered molecule has no dots")
	}
	if !strings.Contains(string(data), `fill="#0077be"`) {
		t.Error("theme color not applied")
	}
}
