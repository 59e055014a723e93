package dcel

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func TestLocateFeature(t *testing.T) {
	m, f := ccwSquare(t)
	const eps = 1e-3

	tests := []struct {
		name string
		p    r2.Point
		want Element
	}{
		{"vertex", r2.Point{X: r + 1e-4, Y: r}, VertexElement(2)},
		{"edge from inside", r2.Point{X: 0, Y: -r + 1e-4}, EdgeElement(0)},
		{"edge from outside", r2.Point{X: 0, Y: -r - 1e-4}, EdgeElement(1)},
		{"bounded face", r2.Point{X: 0.1, Y: -0.3}, FaceElement(f)},
		{"outside", r2.Point{X: 5, Y: 5}, FaceElement(m.OuterFace())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.LocateFeature(tt.p, eps)
			assert.Equal(t, tt.want, got, "got %s", m.Describe(got))
		})
	}
}

func TestLocateFeature_Kinds(t *testing.T) {
	m, _ := ccwSquare(t)

	switch el := m.LocateFeature(r2.Point{}, 1e-3); el.Kind {
	case KindFace:
		assert.False(t, m.IsOuter(el.Face()))
	default:
		t.Fatalf("expected a face, got %s", el.Kind)
	}
	assert.Equal(t, "edge", KindEdge.String())
	assert.Equal(t, "none", NoElement.Kind.String())
}

func TestFaceAt_AfterSplit(t *testing.T) {
	m, f := ccwSquare(t)
	e, err := m.SplitFaceWithLine(f, r2.Point{X: -1, Y: 0}, r2.Point{X: 1, Y: 0})
	assert.NoError(t, err)

	assert.Equal(t, m.Face(e), m.FaceAt(r2.Point{X: 0.3, Y: 0.4}))
	assert.Equal(t, m.Face(m.Twin(e)), m.FaceAt(r2.Point{X: 0.3, Y: -0.4}))
	assert.Equal(t, m.OuterFace(), m.FaceAt(r2.Point{X: -3, Y: 0}))
}
