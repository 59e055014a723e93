package dcel

import (
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// IsInnerComponent reports whether the boundary walk through e encloses a
// finite region on its left.
//
// At the lexicographically least vertex of the walk nothing lies due west,
// so the walk is outer exactly when one of its passes through that vertex
// owns the westward direction. A pass that turns straight back owns the
// full turn.
func (m *Mesh) IsInnerComponent(e EdgeID) bool {
	least := NoVertex
	m.walk(e, func(c EdgeID) bool {
		v := m.edges[c].origin
		if least == NoVertex || geom.LessXY(m.vertices[v].p, m.vertices[least].p) {
			least = v
		}
		return true
	})

	pv := m.vertices[least].p
	west := pv.Add(r2.Point{X: -1})
	inner := true
	m.walk(e, func(c EdgeID) bool {
		if m.edges[c].origin != least {
			return true
		}
		u := m.edges[m.edges[c].prev].origin
		w := m.Dest(c)
		if u == w {
			inner = false
			return false
		}
		pw, pu := m.vertices[w].p, m.vertices[u].p
		if geom.OrientedPseudoAngle(pv, pw, west) < geom.OrientedPseudoAngle(pv, pw, pu) {
			inner = false
			return false
		}
		return true
	})
	return inner
}

// assignFace sets f on every half-edge of the walk through start.
func (m *Mesh) assignFace(start EdgeID, f FaceID) {
	m.walk(start, func(e EdgeID) bool {
		m.edges[e].face = f
		return true
	})
}

// splitFaceAt runs right after an insertion separated e and its twin into
// two boundary walks that both still report the old face. The old face keeps
// e's walk unless that would leave the outer face bounded.
func (m *Mesh) splitFaceAt(e EdgeID) FaceID {
	t := m.edges[e].twin
	old := m.edges[e].face
	nf := m.newFace()

	keep, moved := e, t
	if old == m.outer {
		eInner := m.IsInnerComponent(e)
		tInner := m.IsInnerComponent(t)
		if eInner == tInner {
			fatalf("splitting the outer face at %s leaves inner=%v on both sides", m.ShortID(EdgeElement(e)), eInner)
		}
		if eInner {
			keep, moved = t, e
		}
	}

	m.assignFace(keep, old)
	m.assignFace(moved, nf)
	m.faces[old].edge = keep
	m.faces[nf].edge = moved

	if fc := m.faces[old]; fc.hasSite {
		a, b := m.Segment(e)
		inside := t
		if geom.Orientation(a, b, fc.site) > 0 {
			inside = e
		}
		if m.edges[inside].face == nf {
			m.faces[nf].site, m.faces[nf].hasSite = fc.site, true
			m.faces[old].site, m.faces[old].hasSite = r2.Point{}, false
		}
	}

	m.log.Debug("[dcel] face split",
		zap.String("kept", m.Describe(FaceElement(old))),
		zap.String("new", m.Describe(FaceElement(nf))))
	return nf
}

// mergeFacesAt folds the face across e into e's face and removes it. The
// outer face always survives. Returns the surviving face.
func (m *Mesh) mergeFacesAt(e EdgeID) FaceID {
	t := m.edges[e].twin
	keep := m.edges[e].face
	drop := m.edges[t].face
	if keep == drop {
		if keep == m.outer {
			fatalf("merge at %s: both sides are the outer face", m.ShortID(EdgeElement(e)))
		}
		fatalf("merge at %s: both sides are %s", m.ShortID(EdgeElement(e)), m.ShortID(FaceElement(keep)))
	}
	if drop == m.outer {
		return m.mergeFacesAt(t)
	}

	m.assignFace(t, keep)
	if !m.faces[keep].hasSite && m.faces[drop].hasSite {
		m.faces[keep].site, m.faces[keep].hasSite = m.faces[drop].site, true
	}
	m.log.Debug("[dcel] faces merged",
		zap.String("kept", m.ShortID(FaceElement(keep))),
		zap.String("dropped", m.ShortID(FaceElement(drop))))
	m.killFace(drop)
	return keep
}
