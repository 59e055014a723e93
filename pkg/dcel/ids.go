package dcel

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindNone Kind = iota
	KindVertex
	KindEdge
	KindFace
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	}
	return "none"
}

// Element refers to one vertex, half-edge or face of a mesh. ID is only
// meaningful together with Kind.
type Element struct {
	Kind Kind
	ID   int
}

var NoElement = Element{Kind: KindNone, ID: -1}

func VertexElement(v VertexID) Element { return Element{Kind: KindVertex, ID: int(v)} }

func EdgeElement(e EdgeID) Element { return Element{Kind: KindEdge, ID: int(e)} }

func FaceElement(f FaceID) Element { return Element{Kind: KindFace, ID: int(f)} }

func (el Element) Vertex() VertexID { return VertexID(el.ID) }

func (el Element) Edge() EdgeID { return EdgeID(el.ID) }

func (el Element) Face() FaceID { return FaceID(el.ID) }

// ShortID returns the type letter followed by the zero padded index, for
// example "v01", "e00" or "f02". Empty references print as "-".
func (m *Mesh) ShortID(el Element) string {
	if el.ID < 0 {
		return "-"
	}
	var prefix string
	switch el.Kind {
	case KindVertex:
		prefix = "v"
	case KindEdge:
		prefix = "e"
	case KindFace:
		prefix = "f"
	default:
		return "-"
	}
	return fmt.Sprintf("%s%02d", prefix, el.ID)
}

// Describe prints every reference held by an element.
func (m *Mesh) Describe(el Element) string {
	switch el.Kind {
	case KindVertex:
		v := el.Vertex()
		if !m.HasVertex(v) {
			break
		}
		p := m.vertices[v].p
		return fmt.Sprintf("[%s: (%.2f,%.2f), e=%s]",
			m.ShortID(el), p.X, p.Y, m.ShortID(EdgeElement(m.vertices[v].away)))
	case KindEdge:
		e := el.Edge()
		if !m.HasEdge(e) {
			break
		}
		h := m.edges[e]
		return fmt.Sprintf("[%s: o=%s, t=%s, n=%s, p=%s, f=%s]",
			m.ShortID(el),
			m.ShortID(VertexElement(h.origin)),
			m.ShortID(EdgeElement(h.twin)),
			m.ShortID(EdgeElement(h.next)),
			m.ShortID(EdgeElement(h.prev)),
			m.ShortID(FaceElement(h.face)))
	case KindFace:
		f := el.Face()
		if !m.HasFace(f) {
			break
		}
		fc := m.faces[f]
		s := fmt.Sprintf("[%s: e=%s", m.ShortID(el), m.ShortID(EdgeElement(fc.edge)))
		if f == m.outer {
			s += ", outer"
		}
		if fc.hasSite {
			s += fmt.Sprintf(", site=(%.2f,%.2f)", fc.site.X, fc.site.Y)
		}
		return s + "]"
	}
	return "[" + m.ShortID(el) + ": dead]"
}

// String dumps every live element, one per line.
func (m *Mesh) String() string {
	var sb strings.Builder
	for _, v := range m.Vertices() {
		sb.WriteString(m.Describe(VertexElement(v)))
		sb.WriteByte('\n')
	}
	for _, e := range m.Edges() {
		sb.WriteString(m.Describe(EdgeElement(e)))
		sb.WriteByte('\n')
	}
	for _, f := range m.Faces() {
		sb.WriteString(m.Describe(FaceElement(f)))
		sb.WriteByte('\n')
	}
	return sb.String()
}
