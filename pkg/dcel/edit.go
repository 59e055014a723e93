package dcel

import (
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SplitEdge inserts a vertex at p on e. The returned half-edge is e itself,
// now ending at the new vertex; the new vertex is Dest(e). Faces on both
// sides are unchanged.
func (m *Mesh) SplitEdge(e EdgeID, p r2.Point) (out EdgeID, err error) {
	out = NoEdge
	if err := m.checkWritable(); err != nil {
		return NoEdge, err
	}
	if !m.HasEdge(e) {
		return NoEdge, errors.Wrapf(ErrUnknownElement, "split edge %d", e)
	}
	defer m.guard(&err)
	return m.splitEdge(e, p)
}

func (m *Mesh) splitEdge(e EdgeID, p r2.Point) (EdgeID, error) {
	a, b := m.Segment(e)
	if m.tol.Coincident(p, a) || m.tol.Coincident(p, b) {
		return NoEdge, errors.Wrapf(ErrCoincidentPoint, "split %s at %v", m.ShortID(EdgeElement(e)), p)
	}
	if d := geom.PointSegmentDistance(p, a, b); d > m.tol.Distance {
		if m.tol.NearMissed(d) {
			m.log.Warn("[dcel] near miss splitting edge",
				zap.String("e", m.ShortID(EdgeElement(e))),
				zap.Float64("distance", d),
				zap.Float64("tolerance", m.tol.Distance))
		}
		return NoEdge, errors.Wrapf(ErrOffSegment, "split %s at %v: distance %g", m.ShortID(EdgeElement(e)), p, d)
	}

	t := m.edges[e].twin
	vb := m.edges[t].origin
	v := m.newVertex(p)
	n, nt := m.newEdgePair(v, vb)
	m.edges[n].face = m.edges[e].face
	m.edges[nt].face = m.edges[t].face

	x := m.edges[e].next
	y := m.edges[t].prev
	if x == t {
		m.link(n, nt)
	} else {
		m.link(n, x)
		m.link(y, nt)
	}
	m.link(e, n)
	m.link(nt, t)
	m.edges[t].origin = v

	if m.vertices[vb].away == t {
		m.vertices[vb].away = nt
	}
	m.vertices[v].away = n

	m.log.Debug("[dcel] edge split",
		zap.String("e", m.Describe(EdgeElement(e))),
		zap.String("new", m.Describe(EdgeElement(n))),
		zap.String("v", m.Describe(VertexElement(v))))
	return e, nil
}

// DeleteEdge removes e and its twin. Faces on the two sides are merged first;
// an endpoint left without edges is removed. Returns the remaining face.
func (m *Mesh) DeleteEdge(e EdgeID) (f FaceID, err error) {
	f = NoFace
	if err := m.checkWritable(); err != nil {
		return NoFace, err
	}
	if !m.HasEdge(e) {
		return NoFace, errors.Wrapf(ErrUnknownElement, "delete edge %d", e)
	}
	defer m.guard(&err)
	return m.deleteEdge(e)
}

func (m *Mesh) deleteEdge(e EdgeID) (FaceID, error) {
	t := m.edges[e].twin
	a, b := m.edges[e].origin, m.edges[t].origin
	aLeaf := m.edges[t].next == e
	bLeaf := m.edges[e].next == t

	f := m.edges[e].face
	if f == m.edges[t].face {
		if !aLeaf && !bLeaf {
			return NoFace, errors.Wrap(ErrDisconnects, m.ShortID(EdgeElement(e)))
		}
	} else {
		f = m.mergeFacesAt(e)
	}

	pe, ne := m.edges[e].prev, m.edges[e].next
	pt, nt := m.edges[t].prev, m.edges[t].next
	if !aLeaf {
		m.link(pe, nt)
	}
	if !bLeaf {
		m.link(pt, ne)
	}

	if aLeaf {
		m.killVertex(a)
	} else if m.vertices[a].away == e {
		m.vertices[a].away = nt
	}
	if bLeaf {
		m.killVertex(b)
	} else if m.vertices[b].away == t {
		m.vertices[b].away = ne
	}

	rep := NoEdge
	for _, c := range []EdgeID{pe, ne, pt, nt} {
		if c != e && c != t {
			rep = c
			break
		}
	}
	m.faces[f].edge = rep

	m.log.Debug("[dcel] edge deleted",
		zap.String("e", m.ShortID(EdgeElement(e))),
		zap.String("twin", m.ShortID(EdgeElement(t))),
		zap.String("face", m.Describe(FaceElement(f))))
	m.killEdge(e)
	m.killEdge(t)
	return f, nil
}
