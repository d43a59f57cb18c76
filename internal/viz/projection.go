package viz

import (
	"math"

	"github.com/san-kum/moltopo/internal/numeric"
	"github.com/san-kum/moltopo/internal/topology"
)

// Camera rotates atom positions about their centroid and projects them
// orthographically onto a canvas.
type Camera struct {
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{RotX: 0.4, Zoom: 1}
}

func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p numeric.Vec3) numeric.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p[1], p[2] = p[1]*cx-p[2]*sx, p[1]*sx+p[2]*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p[0], p[2] = p[0]*cy+p[2]*sy, -p[0]*sy+p[2]*cy
	return p
}

// Render draws every atom of mol as a dot and traces each residue by joining
// its atoms in order.
func (c *Camera) Render(mol *topology.Molecule, w, h int) *Canvas {
	canvas := NewCanvas(w, h)
	n := mol.Atoms().Len()
	if n == 0 {
		return canvas
	}

	pos := mol.Positions()
	var centroid numeric.Vec3
	rows := make([]numeric.Vec3, n)
	for i := range rows {
		rows[i], _ = pos.Row(i)
		for d := 0; d < 3; d++ {
			centroid[d] += rows[i][d] / float64(n)
		}
	}
	extent := 0.0
	for i, p := range rows {
		for d := 0; d < 3; d++ {
			p[d] -= centroid[d]
		}
		rows[i] = c.rotate(p)
		extent = math.Max(extent, math.Hypot(rows[i][0], rows[i][1]))
	}
	if extent == 0 {
		extent = 1
	}

	pw, ph := canvas.PixelWidth(), canvas.PixelHeight()
	scale := c.Zoom * float64(max(1, min(pw, ph)-2)) / (2 * extent)
	screen := func(i int) (int, int) {
		x := int(math.Round(rows[i][0]*scale)) + pw/2
		y := int(math.Round(-rows[i][1]*scale)) + ph/2
		return x, y
	}

	for _, r := range mol.Residues().Items() {
		atoms := r.Atoms()
		for k := 1; k < len(atoms); k++ {
			x0, y0 := screen(atoms[k-1].Index())
			x1, y1 := screen(atoms[k].Index())
			canvas.DrawLine(x0, y0, x1, y1)
		}
	}
	for i := range rows {
		canvas.Set(screen(i))
	}
	return canvas
}
