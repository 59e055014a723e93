package dcel

import (
	"math"

	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
)

// LocateFeature returns the vertex nearest p if it is within eps, else the
// nearest edge within eps (the half-edge with p on its left), else the face
// containing p. Faces are assumed convex.
func (m *Mesh) LocateFeature(p r2.Point, eps float64) Element {
	if v, d := m.nearestVertex(p); v != NoVertex && d <= eps {
		return VertexElement(v)
	}
	if e, d := m.nearestEdge(p); e != NoEdge && d <= eps {
		a, b := m.Segment(e)
		if geom.Orientation(a, b, p) < 0 {
			e = m.edges[e].twin
		}
		return EdgeElement(e)
	}
	return FaceElement(m.FaceAt(p))
}

// FaceAt returns the first bounded face with p on the left of (or on) every
// boundary edge, or the outer face.
func (m *Mesh) FaceAt(p r2.Point) FaceID {
	for _, f := range m.Faces() {
		if f == m.outer || m.faces[f].edge == NoEdge {
			continue
		}
		inside := true
		m.walk(m.faces[f].edge, func(e EdgeID) bool {
			a, b := m.Segment(e)
			inside = geom.Orientation(a, b, p) >= 0
			return inside
		})
		if inside {
			return f
		}
	}
	return m.outer
}

func (m *Mesh) nearestVertex(p r2.Point) (VertexID, float64) {
	best, bestD := NoVertex, math.Inf(1)
	for _, v := range m.Vertices() {
		if d := geom.Distance(p, m.vertices[v].p); d < bestD {
			best, bestD = v, d
		}
	}
	return best, bestD
}

// nearestEdge only looks at the lower handle of every twin pair.
func (m *Mesh) nearestEdge(p r2.Point) (EdgeID, float64) {
	best, bestD := NoEdge, math.Inf(1)
	for _, e := range m.Edges() {
		if m.edges[e].twin < e {
			continue
		}
		a, b := m.Segment(e)
		if d := geom.PointSegmentDistance(p, a, b); d < bestD {
			best, bestD = e, d
		}
	}
	return best, bestD
}
