// Package dcel implements a doubly-connected edge list: a planar
// subdivision made of vertices, twinned half-edges and faces.
//
// Elements live in slices owned by the Mesh and are addressed by integer
// handles. A deleted element leaves a tombstone, so handles and their short
// identifiers stay valid for the life of the mesh. Faces lie to the left of
// their half-edges; bounded faces are walked counter-clockwise.
package dcel

import (
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/0x0FACED/go-dcel/pkg/logger"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	VertexID int
	EdgeID   int
	FaceID   int
)

const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoFace   FaceID   = -1
)

type vertex struct {
	p     r2.Point
	away  EdgeID
	alive bool
}

type halfEdge struct {
	origin VertexID
	twin   EdgeID
	next   EdgeID
	prev   EdgeID
	face   FaceID
	alive  bool
}

type face struct {
	edge    EdgeID
	site    r2.Point
	hasSite bool
	alive   bool
}

// Mesh is not safe for concurrent use.
type Mesh struct {
	vertices []vertex
	edges    []halfEdge
	faces    []face
	outer    FaceID

	liveVertices int
	liveEdges    int
	liveFaces    int

	tol      geom.Tolerances
	log      *logger.ZapLogger
	poisoned bool
}

type Option func(*Mesh) error

func WithTolerances(t geom.Tolerances) Option {
	return func(m *Mesh) error {
		if err := t.Validate(); err != nil {
			return err
		}
		m.tol = t
		return nil
	}
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(m *Mesh) error {
		if l == nil {
			return errors.New("dcel: nil logger")
		}
		m.log = l
		return nil
	}
}

// New returns an empty mesh holding only the outer face.
func New(opts ...Option) (*Mesh, error) {
	m := &Mesh{
		tol: geom.DefaultTolerances(),
		log: logger.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, errors.Wrap(err, "dcel: bad option")
		}
	}
	m.outer = m.newFace()
	return m, nil
}

func (m *Mesh) Tolerances() geom.Tolerances { return m.tol }

func (m *Mesh) OuterFace() FaceID { return m.outer }

// Poisoned reports whether a structural violation aborted a mutation since
// the last successful Verify.
func (m *Mesh) Poisoned() bool { return m.poisoned }

func (m *Mesh) NumVertices() int { return m.liveVertices }

// NumEdges counts half-edges, so it is always even.
func (m *Mesh) NumEdges() int { return m.liveEdges }

func (m *Mesh) NumFaces() int { return m.liveFaces }

// Vertices returns the live vertices in ascending order.
func (m *Mesh) Vertices() []VertexID {
	out := make([]VertexID, 0, m.liveVertices)
	for i := range m.vertices {
		if m.vertices[i].alive {
			out = append(out, VertexID(i))
		}
	}
	return out
}

// Edges returns the live half-edges in ascending order.
func (m *Mesh) Edges() []EdgeID {
	out := make([]EdgeID, 0, m.liveEdges)
	for i := range m.edges {
		if m.edges[i].alive {
			out = append(out, EdgeID(i))
		}
	}
	return out
}

// Faces returns the live faces in ascending order, the outer face first.
func (m *Mesh) Faces() []FaceID {
	out := make([]FaceID, 0, m.liveFaces)
	for i := range m.faces {
		if m.faces[i].alive {
			out = append(out, FaceID(i))
		}
	}
	return out
}

func (m *Mesh) HasVertex(v VertexID) bool {
	return v >= 0 && int(v) < len(m.vertices) && m.vertices[v].alive
}

func (m *Mesh) HasEdge(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges) && m.edges[e].alive
}

func (m *Mesh) HasFace(f FaceID) bool {
	return f >= 0 && int(f) < len(m.faces) && m.faces[f].alive
}

func (m *Mesh) Point(v VertexID) r2.Point { return m.vertices[v].p }

// EdgeAway returns some half-edge leaving v, or NoEdge for an isolated vertex.
func (m *Mesh) EdgeAway(v VertexID) EdgeID { return m.vertices[v].away }

func (m *Mesh) Origin(e EdgeID) VertexID { return m.edges[e].origin }

func (m *Mesh) Dest(e EdgeID) VertexID { return m.edges[m.edges[e].twin].origin }

func (m *Mesh) Twin(e EdgeID) EdgeID { return m.edges[e].twin }

func (m *Mesh) Next(e EdgeID) EdgeID { return m.edges[e].next }

func (m *Mesh) Prev(e EdgeID) EdgeID { return m.edges[e].prev }

func (m *Mesh) Face(e EdgeID) FaceID { return m.edges[e].face }

// Segment returns the endpoints of e in walk order.
func (m *Mesh) Segment(e EdgeID) (r2.Point, r2.Point) {
	return m.Point(m.Origin(e)), m.Point(m.Dest(e))
}

// FaceEdge returns the representative boundary half-edge of f, or NoEdge
// while the mesh has no edges.
func (m *Mesh) FaceEdge(f FaceID) EdgeID { return m.faces[f].edge }

func (m *Mesh) IsOuter(f FaceID) bool { return f == m.outer }

func (m *Mesh) Site(f FaceID) (r2.Point, bool) {
	return m.faces[f].site, m.faces[f].hasSite
}

// SetSite attaches a site point to a bounded face.
func (m *Mesh) SetSite(f FaceID, p r2.Point) error {
	if err := m.checkWritable(); err != nil {
		return err
	}
	if !m.HasFace(f) {
		return errors.Wrapf(ErrUnknownElement, "face %d", f)
	}
	if f == m.outer {
		return errors.Wrap(ErrOuterFace, "set site")
	}
	m.faces[f].site = p
	m.faces[f].hasSite = true
	m.log.Debug("[dcel] site set", zap.String("face", m.ShortID(FaceElement(f))), zap.Any("site", p))
	return nil
}

func (m *Mesh) ClearSite(f FaceID) {
	if m.HasFace(f) {
		m.faces[f].site = r2.Point{}
		m.faces[f].hasSite = false
	}
}

func (m *Mesh) newVertex(p r2.Point) VertexID {
	m.vertices = append(m.vertices, vertex{p: p, away: NoEdge, alive: true})
	m.liveVertices++
	return VertexID(len(m.vertices) - 1)
}

// newEdgePair allocates two twinned half-edges that are not linked into any
// cycle yet.
func (m *Mesh) newEdgePair(a, b VertexID) (EdgeID, EdgeID) {
	eab := EdgeID(len(m.edges))
	eba := eab + 1
	m.edges = append(m.edges,
		halfEdge{origin: a, twin: eba, next: NoEdge, prev: NoEdge, face: NoFace, alive: true},
		halfEdge{origin: b, twin: eab, next: NoEdge, prev: NoEdge, face: NoFace, alive: true},
	)
	m.liveEdges += 2
	return eab, eba
}

func (m *Mesh) newFace() FaceID {
	m.faces = append(m.faces, face{edge: NoEdge, alive: true})
	m.liveFaces++
	return FaceID(len(m.faces) - 1)
}

func (m *Mesh) killVertex(v VertexID) {
	m.vertices[v] = vertex{p: m.vertices[v].p, away: NoEdge}
	m.liveVertices--
}

func (m *Mesh) killEdge(e EdgeID) {
	m.edges[e] = halfEdge{origin: NoVertex, twin: NoEdge, next: NoEdge, prev: NoEdge, face: NoFace}
	m.liveEdges--
}

func (m *Mesh) killFace(f FaceID) {
	m.faces[f] = face{edge: NoEdge}
	m.liveFaces--
}

// link makes b follow a in a boundary walk.
func (m *Mesh) link(a, b EdgeID) {
	m.edges[a].next = b
	m.edges[b].prev = a
}

// walkLimit bounds every cycle walk. A walk longer than the number of
// half-edges can only be a corrupted cycle.
func (m *Mesh) walkLimit() int {
	return len(m.edges) + 1
}

// walk calls fn for each half-edge of the boundary cycle through start.
// Returning false from fn stops the walk.
func (m *Mesh) walk(start EdgeID, fn func(EdgeID) bool) {
	e := start
	for i := 0; ; i++ {
		if i > m.walkLimit() {
			fatalf("boundary walk from %s does not close", m.ShortID(EdgeElement(start)))
		}
		if !fn(e) {
			return
		}
		e = m.edges[e].next
		if e == start {
			return
		}
	}
}

// fan calls fn for each half-edge leaving v, turning around v.
func (m *Mesh) fan(v VertexID, fn func(EdgeID) bool) {
	start := m.vertices[v].away
	if start == NoEdge {
		return
	}
	e := start
	for i := 0; ; i++ {
		if i > m.walkLimit() {
			fatalf("edge fan around %s does not close", m.ShortID(VertexElement(v)))
		}
		if !fn(e) {
			return
		}
		e = m.edges[m.edges[e].twin].next
		if e == start {
			return
		}
	}
}

// VertexEdges returns the half-edges leaving v.
func (m *Mesh) VertexEdges(v VertexID) []EdgeID {
	var out []EdgeID
	m.fan(v, func(e EdgeID) bool {
		out = append(out, e)
		return true
	})
	return out
}

func (m *Mesh) Degree(v VertexID) int {
	n := 0
	m.fan(v, func(EdgeID) bool {
		n++
		return true
	})
	return n
}

// FaceEdges returns the boundary walk of f starting at its representative
// edge. The outer face of a mesh without edges has none.
func (m *Mesh) FaceEdges(f FaceID) []EdgeID {
	start := m.faces[f].edge
	if start == NoEdge {
		return nil
	}
	var out []EdgeID
	m.walk(start, func(e EdgeID) bool {
		out = append(out, e)
		return true
	})
	return out
}

// FaceVertices returns the origins along the boundary walk of f. A vertex
// appears more than once when the walk passes it more than once.
func (m *Mesh) FaceVertices(f FaceID) []VertexID {
	edges := m.FaceEdges(f)
	out := make([]VertexID, len(edges))
	for i, e := range edges {
		out[i] = m.edges[e].origin
	}
	return out
}

// FacePolygon returns the positions along the boundary walk of f.
func (m *Mesh) FacePolygon(f FaceID) []r2.Point {
	vs := m.FaceVertices(f)
	out := make([]r2.Point, len(vs))
	for i, v := range vs {
		out[i] = m.vertices[v].p
	}
	return out
}
