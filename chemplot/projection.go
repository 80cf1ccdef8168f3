/*
 * projection.go, part of molmod
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package chemplot draws 2D previews of molecules, with numbered atoms
//colored by element.
package chemplot

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	chem "github.com/rmera/molmod"
	v3 "github.com/rmera/molmod/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Plane is the plane a molecule is projected on.
type Plane int

const (
	//Best is the plane of the two main axes of the molecule, the one
	//that shows it with the least overlap.
	Best Plane = iota
	XY
	XZ
	YZ
)

var planeNames = [...]string{"best", "xy", "xz", "yz"}

func (P Plane) String() string {
	if P < 0 || int(P) >= len(planeNames) {
		return fmt.Sprintf("Plane(%d)", int(P))
	}
	return planeNames[P]
}

//ParsePlane returns the plane named s ("best", "xy", "xz" or "yz").
func ParsePlane(s string) (Plane, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range planeNames {
		if s == n {
			return Plane(i), nil
		}
	}
	return Best, fmt.Errorf("unknown projection plane %q", s)
}

//PNGSize is the side of the images produced by Write.
const PNGSize = 12 * vg.Centimeter

//Project returns the 2D coordinates of the atoms of mol on the given plane.
//The Best projection is centered on the geometric center of the molecule.
func Project(mol *chem.Molecule, plane Plane) (plotter.XYs, error) {
	if err := mol.Corrupted(); err != nil {
		return nil, err
	}
	n := mol.Len()
	if n == 0 {
		return nil, fmt.Errorf("Project: empty molecule")
	}
	ret := make(plotter.XYs, n)
	var cx, cy int
	switch plane {
	case XY:
		cx, cy = 0, 1
	case XZ:
		cx, cy = 0, 2
	case YZ:
		cx, cy = 1, 2
	case Best:
		centered := v3.Zeros(n)
		centered.SubVec(mol.Coords, mol.Coords.Centroid())
		var svd mat.SVD
		if !svd.Factorize(centered, mat.SVDFull) {
			return nil, fmt.Errorf("Project: can't find the main axes of the molecule")
		}
		var axes, proj mat.Dense
		svd.VTo(&axes)
		proj.Mul(centered, axes.Slice(0, 3, 0, 2))
		for i := range ret {
			ret[i].X = proj.At(i, 0)
			ret[i].Y = proj.At(i, 1)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("Project: unknown plane %d", int(plane))
	}
	for i := range ret {
		ret[i].X = mol.Coords.At(i, cx)
		ret[i].Y = mol.Coords.At(i, cy)
	}
	return ret, nil
}

//CPK-like colors.
var elementColors = map[string]color.RGBA{
	"H":  {R: 200, G: 200, B: 200, A: 255},
	"C":  {R: 60, G: 60, B: 60, A: 255},
	"N":  {R: 48, G: 80, B: 248, A: 255},
	"O":  {R: 255, G: 13, B: 13, A: 255},
	"F":  {R: 144, G: 224, B: 80, A: 255},
	"Cl": {R: 31, G: 240, B: 31, A: 255},
	"Br": {R: 166, G: 41, B: 41, A: 255},
	"I":  {R: 148, G: 0, B: 148, A: 255},
	"S":  {R: 255, G: 200, B: 50, A: 255},
	"P":  {R: 255, G: 128, B: 0, A: 255},
}

//ElementColor returns the color used to draw atoms of the given element.
func ElementColor(symbol string) color.RGBA {
	if c, ok := elementColors[symbol]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 20, B: 147, A: 255}
}

//Projection returns a plot of mol projected on plane. Each atom is drawn as
//a circle with a size proportional to its van der Waals radius and labelled
//with its 1-based index, as users refer to atoms.
func Projection(mol *chem.Molecule, plane Plane, title string) (*plot.Plot, error) {
	xys, err := Project(mol, plane)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Å"
	p.Y.Label.Text = "Å"
	p.Add(plotter.NewGrid())
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		sym := mol.Atom(i).Symbol
		return draw.GlyphStyle{
			Color:  ElementColor(sym),
			Radius: vg.Points(3 * chem.VdwRadius(sym)),
			Shape:  draw.CircleGlyph{},
		}
	}
	labels := make([]string, len(xys))
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	l.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}
	p.Add(s, l)
	//Same scale in both axes, so the molecule is not distorted.
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = square(p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
	return p, nil
}

//square widens the shortest of the two ranges so both have the same length,
//plus a margin of 1 A.
func square(xmin, xmax, ymin, ymax float64) (float64, float64, float64, float64) {
	const margin = 1.0
	side := xmax - xmin
	if ymax-ymin > side {
		side = ymax - ymin
	}
	side += 2 * margin
	xc, yc := (xmin+xmax)/2, (ymin+ymax)/2
	return xc - side/2, xc + side/2, yc - side/2, yc + side/2
}

//Write draws the projection of mol as a PNG image to w.
func Write(w io.Writer, mol *chem.Molecule, plane Plane, title string) error {
	p, err := Projection(mol, plane, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PNGSize, PNGSize, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

//Save draws the projection of mol to the file filename. The format is
//given by the extension (png, svg, pdf, ...).
func Save(filename string, mol *chem.Molecule, plane Plane, title string) error {
	p, err := Projection(mol, plane, title)
	if err != nil {
		return err
	}
	return p.Save(PNGSize, PNGSize, filename)
}
