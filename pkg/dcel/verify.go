package dcel

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Verify checks every invariant of the mesh and returns all violations
// combined, or nil. It never mutates the mesh except to clear the poisoned
// flag when everything holds.
func (m *Mesh) Verify() error {
	var err error
	fail := func(format string, args ...interface{}) {
		err = multierr.Append(err, errors.Errorf(format, args...))
	}

	if !m.HasFace(m.outer) {
		fail("outer face %s is not alive", m.ShortID(FaceElement(m.outer)))
		return err
	}

	linksOK := true
	outgoing := make(map[VertexID]int)
	for _, e := range m.Edges() {
		h := m.edges[e]
		id := m.ShortID(EdgeElement(e))
		if !m.HasVertex(h.origin) || !m.HasEdge(h.twin) || !m.HasEdge(h.next) || !m.HasEdge(h.prev) || !m.HasFace(h.face) {
			fail("%s holds a dead or missing reference: %s", id, m.Describe(EdgeElement(e)))
			linksOK = false
			continue
		}
		outgoing[h.origin]++
		if h.twin == e {
			fail("%s is its own twin", id)
			linksOK = false
		}
		if m.edges[h.twin].twin != e {
			fail("twin(twin(%s)) != %s", id, id)
			linksOK = false
		}
		if m.edges[h.prev].next != e {
			fail("next(prev(%s)) != %s", id, id)
			linksOK = false
		}
		if m.edges[h.next].prev != e {
			fail("prev(next(%s)) != %s", id, id)
			linksOK = false
		}
		if m.edges[h.next].origin != m.edges[h.twin].origin {
			fail("origin(next(%s)) != origin(twin(%s))", id, id)
			linksOK = false
		}
		if m.edges[h.next].face != h.face {
			fail("face(next(%s)) != face(%s)", id, id)
		}
	}

	for _, v := range m.Vertices() {
		id := m.ShortID(VertexElement(v))
		away := m.vertices[v].away
		switch {
		case away == NoEdge:
			if outgoing[v] > 0 {
				fail("%s has %d edges but no edge away", id, outgoing[v])
			}
		case !m.HasEdge(away):
			fail("%s points at dead edge %s", id, m.ShortID(EdgeElement(away)))
		case m.edges[away].origin != v:
			fail("edge away of %s starts at %s", id, m.ShortID(VertexElement(m.edges[away].origin)))
		case linksOK:
			if n, closed := m.fanCount(v); !closed {
				fail("edge fan around %s does not close", id)
			} else if n != outgoing[v] {
				fail("edge fan around %s reaches %d of %d edges", id, n, outgoing[v])
			}
		}
	}

	for _, f := range m.Faces() {
		id := m.ShortID(FaceElement(f))
		rep := m.faces[f].edge
		switch {
		case rep == NoEdge:
			if m.liveEdges > 0 {
				fail("%s has no boundary edge", id)
			}
		case !m.HasEdge(rep):
			fail("%s points at dead edge %s", id, m.ShortID(EdgeElement(rep)))
		case m.edges[rep].face != f:
			fail("boundary edge %s of %s belongs to %s", m.ShortID(EdgeElement(rep)), id, m.ShortID(FaceElement(m.edges[rep].face)))
		}
	}

	if linksOK && err == nil {
		err = multierr.Append(err, m.verifyCycles())
	}
	if err == nil {
		m.poisoned = false
	}
	return err
}

// verifyCycles assumes the link invariants hold. Every face must own exactly
// one boundary walk, and only the outer face's walk may be unbounded.
func (m *Mesh) verifyCycles() error {
	var err error
	seen := make(map[EdgeID]bool, m.liveEdges)
	cycles := make(map[FaceID]int)
	for _, e := range m.Edges() {
		if seen[e] {
			continue
		}
		c, closed := m.cycle(e)
		if !closed {
			err = multierr.Append(err, errors.Errorf("boundary walk from %s does not close", m.ShortID(EdgeElement(e))))
			return err
		}
		for _, x := range c {
			seen[x] = true
		}
		cycles[m.edges[e].face]++
	}
	for _, f := range m.Faces() {
		if m.faces[f].edge == NoEdge {
			continue
		}
		id := m.ShortID(FaceElement(f))
		if n := cycles[f]; n != 1 {
			err = multierr.Append(err, errors.Errorf("%s has %d boundary walks", id, n))
			continue
		}
		inner := m.IsInnerComponent(m.faces[f].edge)
		if f == m.outer && inner {
			err = multierr.Append(err, errors.Errorf("outer face %s has a bounded boundary", id))
		}
		if f != m.outer && !inner {
			err = multierr.Append(err, errors.Errorf("%s has an unbounded boundary", id))
		}
	}
	return err
}

// cycle is a walk that reports a broken cycle instead of panicking.
func (m *Mesh) cycle(start EdgeID) ([]EdgeID, bool) {
	var out []EdgeID
	e := start
	for i := 0; i <= m.walkLimit(); i++ {
		out = append(out, e)
		e = m.edges[e].next
		if e == start {
			return out, true
		}
	}
	return out, false
}

func (m *Mesh) fanCount(v VertexID) (int, bool) {
	start := m.vertices[v].away
	e := start
	for n := 1; n <= m.walkLimit(); n++ {
		e = m.edges[m.edges[e].twin].next
		if e == start {
			return n, true
		}
	}
	return 0, false
}
