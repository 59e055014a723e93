package dcel

import (
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type crossing struct {
	edge   EdgeID
	vertex VertexID // set when the line passes through an existing vertex
	p      r2.Point
}

// SplitFaceWithLine cuts the bounded face f along the infinite line through
// p1 and p2. The line must cross the boundary exactly twice; crossings inside
// an edge split that edge. The returned half-edge of the new chord runs in
// the direction of p1->p2.
//
// Every vertex is classified against the line once per call, so two edges
// sharing a vertex always agree about which side it is on.
func (m *Mesh) SplitFaceWithLine(f FaceID, p1, p2 r2.Point) (e EdgeID, err error) {
	e = NoEdge
	if err := m.checkWritable(); err != nil {
		return NoEdge, err
	}
	if !m.HasFace(f) {
		return NoEdge, errors.Wrapf(ErrUnknownElement, "split face %d", f)
	}
	defer m.guard(&err)
	return m.splitFaceWithLine(f, p1, p2)
}

func (m *Mesh) splitFaceWithLine(f FaceID, p1, p2 r2.Point) (EdgeID, error) {
	if f == m.outer {
		return NoEdge, errors.Wrap(ErrOuterFace, "split by line")
	}
	if m.tol.Coincident(p1, p2) {
		return NoEdge, errors.Wrap(ErrCoincidentPoint, "line points coincide")
	}

	sides := make(map[VertexID]int)
	side := func(v VertexID) int {
		if s, ok := sides[v]; ok {
			return s
		}
		s, d := m.tol.Side(p1, p2, m.vertices[v].p)
		if s != 0 && m.tol.NearMissed(d) {
			m.log.Warn("[dcel] near miss classifying vertex against line",
				zap.String("v", m.ShortID(VertexElement(v))),
				zap.Float64("distance", d),
				zap.Float64("tolerance", m.tol.Distance))
		}
		sides[v] = s
		return s
	}

	var cs []crossing
	for _, c := range m.FaceEdges(f) {
		a, b := m.edges[c].origin, m.Dest(c)
		sa, sb := side(a), side(b)
		switch {
		case sa == 0 && sb == 0:
			fatalf("line %v->%v runs along %s", p1, p2, m.ShortID(EdgeElement(c)))
		case sa == 0:
			// a counts once, from the edge leaving it, and only if the line
			// actually passes from one side to the other there.
			if side(m.edges[m.edges[c].prev].origin)*sb < 0 {
				cs = append(cs, crossing{edge: c, vertex: a, p: m.vertices[a].p})
			}
		case sa*sb < 0:
			pa, pb := m.Segment(c)
			p, ok := geom.LineSegmentIntersection(p1, p2, pa, pb, m.tol)
			if !ok {
				fatalf("%s changes sides of %v->%v but has no intersection", m.ShortID(EdgeElement(c)), p1, p2)
			}
			cs = append(cs, crossing{edge: c, vertex: NoVertex, p: p})
		}
	}
	if len(cs) != 2 {
		m.log.Warn("[dcel] line split rejected",
			zap.String("face", m.ShortID(FaceElement(f))),
			zap.Int("crossings", len(cs)))
		return NoEdge, errors.Wrapf(ErrLineCrossings, "%s: %d crossings", m.ShortID(FaceElement(f)), len(cs))
	}

	var vs [2]VertexID
	for i, c := range cs {
		if c.vertex != NoVertex {
			vs[i] = c.vertex
			continue
		}
		split, err := m.splitEdge(c.edge, c.p)
		if err != nil {
			fatalf("crossing on %s: %v", m.ShortID(EdgeElement(c.edge)), err)
		}
		vs[i] = m.Dest(split)
	}

	e, err := m.insertEdge(vs[0], vs[1])
	if err != nil {
		return NoEdge, err
	}
	a, b := m.Segment(e)
	if b.Sub(a).Dot(p2.Sub(p1)) < 0 {
		e = m.edges[e].twin
	}
	m.log.Debug("[dcel] face split by line",
		zap.String("face", m.ShortID(FaceElement(f))),
		zap.String("e", m.Describe(EdgeElement(e))))
	return e, nil
}
