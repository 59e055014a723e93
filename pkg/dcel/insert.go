package dcel

import (
	"math"

	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AddVertex adds an isolated vertex. It must be connected with InsertEdge
// before any other vertex is, unless the mesh has no edges yet.
func (m *Mesh) AddVertex(p r2.Point) (VertexID, error) {
	if err := m.checkWritable(); err != nil {
		return NoVertex, err
	}
	for _, v := range m.Vertices() {
		if m.tol.Coincident(p, m.vertices[v].p) {
			return NoVertex, errors.Wrapf(ErrCoincidentPoint, "add vertex at %v: %s", p, m.ShortID(VertexElement(v)))
		}
	}
	v := m.newVertex(p)
	m.log.Debug("[dcel] vertex added", zap.String("v", m.ShortID(VertexElement(v))), zap.Float64("x", p.X), zap.Float64("y", p.Y))
	return v, nil
}

// InitPolygon builds the closed boundary of pts in an empty mesh and returns
// the bounded face. The polygon may be given in either winding.
func (m *Mesh) InitPolygon(pts []r2.Point) (f FaceID, err error) {
	f = NoFace
	if err := m.checkWritable(); err != nil {
		return NoFace, err
	}
	if m.liveVertices > 0 {
		return NoFace, ErrNotEmpty
	}
	if len(pts) < 3 {
		return NoFace, errors.Wrapf(ErrNotPolygon, "got %d points", len(pts))
	}
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if m.tol.Coincident(pts[i], pts[j]) {
				return NoFace, errors.Wrapf(ErrNotPolygon, "points %d and %d coincide", i, j)
			}
		}
	}
	if math.Abs(geom.SignedArea(pts)) <= m.tol.Distance {
		return NoFace, errors.Wrap(ErrNotPolygon, "polygon has no area")
	}

	defer m.guard(&err)

	vs := make([]VertexID, len(pts))
	for i, p := range pts {
		vs[i] = m.newVertex(p)
	}
	var last EdgeID
	for i := range vs {
		last, err = m.insertEdge(vs[i], vs[(i+1)%len(vs)])
		if err != nil {
			fatalf("polygon side %d: %v", i, err)
		}
	}
	f = m.edges[last].face
	if f == m.outer {
		f = m.edges[m.edges[last].twin].face
	}
	m.log.Info("[dcel] polygon initialised", zap.Int("vertices", len(vs)), zap.String("face", m.ShortID(FaceElement(f))))
	return f, nil
}

// InsertEdge connects two existing vertices and returns the half-edge
// running from a to b. If the new edge closes a boundary, the face it cuts
// is split in two.
func (m *Mesh) InsertEdge(a, b VertexID) (e EdgeID, err error) {
	e = NoEdge
	if err := m.checkWritable(); err != nil {
		return NoEdge, err
	}
	if !m.HasVertex(a) || !m.HasVertex(b) {
		return NoEdge, errors.Wrapf(ErrUnknownElement, "insert edge %d-%d", a, b)
	}
	defer m.guard(&err)
	return m.insertEdge(a, b)
}

func (m *Mesh) insertEdge(a, b VertexID) (EdgeID, error) {
	if a == b {
		return NoEdge, errors.Wrap(ErrSameVertex, m.ShortID(VertexElement(a)))
	}
	if m.connected(a, b) {
		return NoEdge, errors.Wrapf(ErrAlreadyConnected, "%s-%s", m.ShortID(VertexElement(a)), m.ShortID(VertexElement(b)))
	}
	if m.tol.Coincident(m.vertices[a].p, m.vertices[b].p) {
		return NoEdge, errors.Wrapf(ErrCoincidentPoint, "%s-%s", m.ShortID(VertexElement(a)), m.ShortID(VertexElement(b)))
	}

	ea := m.locateIncomingEdge(a, b)
	eb := m.locateIncomingEdge(b, a)
	if ea == NoEdge && eb == NoEdge && m.liveEdges > 0 {
		fatalf("edge %s-%s would start a second component", m.ShortID(VertexElement(a)), m.ShortID(VertexElement(b)))
	}

	f := m.outer
	switch {
	case ea != NoEdge && eb != NoEdge:
		f = m.edges[ea].face
		if fb := m.edges[eb].face; fb != f {
			fatalf("edge %s-%s joins %s and %s",
				m.ShortID(VertexElement(a)), m.ShortID(VertexElement(b)),
				m.ShortID(FaceElement(f)), m.ShortID(FaceElement(fb)))
		}
	case ea != NoEdge:
		f = m.edges[ea].face
	case eb != NoEdge:
		f = m.edges[eb].face
	}

	eab, eba := m.newEdgePair(a, b)
	m.edges[eab].face = f
	m.edges[eba].face = f
	m.spliceAt(a, ea, eab, eba)
	m.spliceAt(b, eb, eba, eab)
	if m.faces[f].edge == NoEdge {
		m.faces[f].edge = eab
	}

	m.log.Debug("[dcel] edge inserted",
		zap.String("e", m.Describe(EdgeElement(eab))),
		zap.String("twin", m.Describe(EdgeElement(eba))))

	if ea != NoEdge && eb != NoEdge && !m.reaches(eab, eba) {
		m.splitFaceAt(eab)
	}
	return eab, nil
}

// spliceAt hooks a new edge pair into the cycle around v. away leaves v,
// toward arrives at v, incoming is the existing edge that away must follow.
func (m *Mesh) spliceAt(v VertexID, incoming, away, toward EdgeID) {
	if incoming == NoEdge {
		m.link(toward, away)
		m.vertices[v].away = away
		return
	}
	m.link(toward, m.edges[incoming].next)
	m.link(incoming, away)
}

// locateIncomingEdge returns the edge arriving at a after which an edge
// toward b has to be spliced: the incoming edge whose origin has the
// smallest counter-clockwise turn from the direction a->b. NoEdge if a is
// isolated.
func (m *Mesh) locateIncomingEdge(a, b VertexID) EdgeID {
	away := m.vertices[a].away
	if away == NoEdge {
		return NoEdge
	}
	pa, pb := m.vertices[a].p, m.vertices[b].p

	start := m.edges[away].prev
	best := NoEdge
	bestAngle := 0.0
	e := start
	for i := 0; ; i++ {
		if i > m.walkLimit() {
			fatalf("incoming fan around %s does not close", m.ShortID(VertexElement(a)))
		}
		angle := geom.OrientedPseudoAngle(pa, pb, m.vertices[m.edges[e].origin].p)
		if best == NoEdge || angle <= bestAngle {
			best, bestAngle = e, angle
		}
		e = m.edges[m.edges[e].next].twin
		if e == start {
			return best
		}
	}
}

func (m *Mesh) connected(a, b VertexID) bool {
	found := false
	m.fan(a, func(e EdgeID) bool {
		found = m.Dest(e) == b
		return !found
	})
	return found
}

// reaches reports whether to lies on the boundary walk through from.
func (m *Mesh) reaches(from, to EdgeID) bool {
	found := false
	m.walk(from, func(e EdgeID) bool {
		found = e == to
		return !found
	})
	return found
}
