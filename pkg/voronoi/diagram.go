package voronoi

import (
	"github.com/0x0FACED/go-dcel/pkg/dcel"
	"github.com/golang/geo/r2"
)

// BoundingBox is an axis-aligned box. Yt and Yb are only named top and
// bottom; their order does not matter.
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

func (b BoundingBox) Rect() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: b.Xl, Y: b.Yt}, r2.Point{X: b.Xr, Y: b.Yb})
}

// Points returns the corners counter-clockwise from the lower left one.
func (b BoundingBox) Points() []r2.Point {
	v := b.Rect().Vertices()
	return v[:]
}

func (b BoundingBox) Contains(p r2.Point) bool {
	return b.Rect().ContainsPoint(p)
}

// Cell is the region of one site. Polygon is counter-clockwise.
type Cell struct {
	Site    r2.Point
	HasSite bool
	Face    dcel.FaceID
	Polygon []r2.Point
}

// Edge is one side between two cells or between a cell and the bounds.
// LeftCell and RightCell index Diagram.Cells, -1 stands for the outside.
type Edge struct {
	Va, Vb    r2.Point
	LeftCell  int
	RightCell int
}

// IsBorder reports an edge on the bounding polygon.
func (e *Edge) IsBorder() bool { return e.LeftCell < 0 || e.RightCell < 0 }

type Diagram struct {
	Cells []*Cell
	Edges []*Edge
}

// Diagram snapshots the current cells and edges. Cells follow face order;
// every twin pair gives one edge, oriented with its lower handle.
func (v *Voronoi) Diagram() *Diagram {
	m := v.mesh
	d := &Diagram{}
	index := make(map[dcel.FaceID]int)
	for _, f := range m.Faces() {
		if m.IsOuter(f) {
			continue
		}
		site, ok := m.Site(f)
		index[f] = len(d.Cells)
		d.Cells = append(d.Cells, &Cell{
			Site:    site,
			HasSite: ok,
			Face:    f,
			Polygon: m.FacePolygon(f),
		})
	}

	cellOf := func(f dcel.FaceID) int {
		if i, ok := index[f]; ok {
			return i
		}
		return -1
	}
	for _, e := range m.Edges() {
		t := m.Twin(e)
		if t < e {
			continue
		}
		a, b := m.Segment(e)
		d.Edges = append(d.Edges, &Edge{
			Va:        a,
			Vb:        b,
			LeftCell:  cellOf(m.Face(e)),
			RightCell: cellOf(m.Face(t)),
		})
	}
	return d
}
