package dcel

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateIncomingEdge(t *testing.T) {
	m, v := almostBox(t)

	tests := []struct {
		name string
		a, b VertexID
		want EdgeID
	}{
		{"no edges", v[4], v[2], NoEdge},
		{"single incoming edge", v[3], v[0], 5},
		{"edge whose next becomes the new edge", v[2], v[0], 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.locateIncomingEdge(tt.a, tt.b))
		})
	}
}

func TestInsertEdge_ClosesBox(t *testing.T) {
	m, v := almostBox(t)

	e := insertEdge(t, m, v[0], v[3])

	assert.Equal(t, v[0], m.Origin(e))
	assert.Equal(t, v[3], m.Origin(m.Next(e)))
	assert.NotEqual(t, e, m.Twin(e))
	assert.Equal(t, e, m.Twin(m.Twin(e)))
	assert.Equal(t, v[3], m.Origin(m.Twin(e)))
	assert.Equal(t, v[0], m.Origin(m.Next(m.Twin(e))))

	inside := m.FaceEdges(m.Face(e))
	outside := m.FaceEdges(m.Face(m.Twin(e)))
	assert.Len(t, inside, 4)
	assert.Len(t, outside, 4)
	assert.NotContains(t, inside, m.Twin(e))
	assert.NotContains(t, outside, e)

	assert.Equal(t, 2, m.NumFaces())
	assert.True(t, m.IsOuter(m.Face(e)), "v0->v3 runs clockwise around the box")
	assert.False(t, m.IsOuter(m.Face(m.Twin(e))))
}

func TestInsertEdge_ToFreeVertex(t *testing.T) {
	t.Run("a to b", func(t *testing.T) {
		m, v := almostBox(t)
		e := insertEdge(t, m, v[2], v[4])

		assert.Equal(t, v[2], m.Origin(e))
		assert.Equal(t, v[4], m.Origin(m.Next(e)))
		assert.Equal(t, v[4], m.Origin(m.Twin(e)))
		assert.Equal(t, v[2], m.Origin(m.Next(m.Twin(e))))
		assert.Equal(t, m.Twin(e), m.EdgeAway(v[4]))
		assert.Equal(t, m.OuterFace(), m.Face(e))
	})

	t.Run("b to a", func(t *testing.T) {
		m, v := almostBox(t)
		e := m.Twin(insertEdge(t, m, v[4], v[2]))

		assert.Equal(t, v[2], m.Origin(e))
		assert.Equal(t, v[4], m.Origin(m.Next(e)))
		assert.Equal(t, v[4], m.Origin(m.Twin(e)))
		assert.Equal(t, v[2], m.Origin(m.Next(m.Twin(e))))
		assert.Equal(t, m.Twin(e), m.EdgeAway(v[4]))
	})
}

func TestInsertEdge_Rejects(t *testing.T) {
	m, v := almostBox(t)
	before := m.String()

	_, err := m.InsertEdge(v[1], v[1])
	assert.ErrorIs(t, err, ErrSameVertex)

	_, err = m.InsertEdge(v[0], v[1])
	assert.ErrorIs(t, err, ErrAlreadyConnected)

	_, err = m.InsertEdge(v[0], VertexID(77))
	assert.ErrorIs(t, err, ErrUnknownElement)

	assert.Equal(t, before, m.String())
	assert.False(t, m.Poisoned())
}

func TestInsertEdge_SecondComponentIsFatal(t *testing.T) {
	m, _ := square(t)
	v := addVertices(t, m, r2.Point{X: 0.1, Y: 0.1}, r2.Point{X: 0.2, Y: 0.3})

	_, err := m.InsertEdge(v[0], v[1])
	require.Error(t, err)
	assert.True(t, IsStructural(err))
	assert.True(t, m.Poisoned())

	_, err = m.AddVertex(r2.Point{X: 0.5, Y: 0.5})
	assert.ErrorIs(t, err, ErrPoisoned)
	_, err = m.InsertEdge(v[0], 0)
	assert.ErrorIs(t, err, ErrPoisoned)

	// nothing was changed before the check fired
	require.NoError(t, m.Verify())
	assert.False(t, m.Poisoned())
	insertEdge(t, m, v[0], 0)
}

func TestIsInnerComponent(t *testing.T) {
	m, v := almostBox(t)

	assert.False(t, m.IsInnerComponent(0), "an open chain bounds nothing")

	insertEdge(t, m, v[0], v[3])
	assert.True(t, m.IsInnerComponent(1), "e1 runs counter-clockwise around the closed box")
	assert.False(t, m.IsInnerComponent(0), "e0 is on the unbounded side")
}

func TestIsInnerComponent_SingleEdge(t *testing.T) {
	m := newMesh(t)
	v := addVertices(t, m, r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
	e := insertEdge(t, m, v[0], v[1])
	assert.False(t, m.IsInnerComponent(e))
	assert.False(t, m.IsInnerComponent(m.Twin(e)))
}

func TestInsertEdge_Wheel(t *testing.T) {
	m := newMesh(t)
	rim, err := m.InitPolygon(hexagon())
	require.NoError(t, err)
	requireValid(t, m)

	hub := addVertices(t, m, r2.Point{X: 0.1, Y: -0.05})[0]
	spokes := make([]EdgeID, 0, 6)
	for i, v := range m.FaceVertices(rim) {
		spokes = append(spokes, insertEdge(t, m, hub, v))
		assert.Equal(t, 2+i, m.NumFaces())
	}

	assert.Equal(t, 6, m.Degree(hub))
	for _, f := range m.Faces() {
		if m.IsOuter(f) {
			assert.Len(t, m.FaceEdges(f), 6)
			continue
		}
		assert.Len(t, m.FaceEdges(f), 3)
		assert.Greater(t, signedArea(m.FacePolygon(f)), 0.0)
	}

	for i, e := range spokes {
		_, err := m.DeleteEdge(e)
		require.NoError(t, err)
		requireValid(t, m)
		if i < len(spokes)-1 {
			assert.Equal(t, 7-i-1, m.NumFaces())
		}
	}
	assert.Equal(t, 2, m.NumFaces())
	assert.Equal(t, 6, m.NumVertices())
	assert.False(t, m.HasVertex(hub))
}
