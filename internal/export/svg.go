// Package export writes terminal renderings of a molecule to image formats.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/moltopo/internal/topology"
	"github.com/san-kum/moltopo/internal/viz"
)

// Braille dot bits for a 2×4 cell, indexed [row][col].
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasSVG writes every lit Braille dot of canvas as an SVG circle. scale is
// the size of one dot cell in SVG units; fill is any SVG color.
func CanvasSVG(w io.Writer, canvas *viz.Canvas, scale float64, fill string) error {
	if canvas == nil {
		return fmt.Errorf("export: nil canvas")
	}
	if scale <= 0 {
		return fmt.Errorf("export: scale must be positive, got %g", scale)
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	r := scale * 0.4
	for row, cells := range canvas.Grid {
		for col, cell := range cells {
			bits := cell - 0x2800
			if bits <= 0 {
				continue
			}
			for dy := range dotBits {
				for dx, bit := range dotBits[dy] {
					if bits&bit == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
				}
			}
		}
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// MoleculeSVG renders mol through the default camera and writes it to path.
func MoleculeSVG(path string, mol *topology.Molecule, theme viz.Theme) error {
	canvas := viz.NewCamera().Render(mol, 60, 20)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	if err := CanvasSVG(f, canvas, 4, string(theme.Primary)); err != nil {
		return err
	}
	return f.Close()
}
