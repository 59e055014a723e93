package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/0x0FACED/go-dcel/pkg/dcel"
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var world = r2.RectFromPoints(r2.Point{X: -1, Y: -1}, r2.Point{X: 1, Y: 1})

func TestViewport(t *testing.T) {
	vp := NewViewport(220, 120, world)
	assert.Equal(t, 50.0, vp.Scale())

	tests := []struct {
		name string
		p    r2.Point
		x, y float64
	}{
		{"centre", r2.Point{}, 110, 60},
		{"lower left", r2.Point{X: -1, Y: -1}, 60, 110},
		{"upper right", r2.Point{X: 1, Y: 1}, 160, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := vp.WorldToScreen(tt.p)
			assert.InDelta(t, tt.x, x, 1e-9)
			assert.InDelta(t, tt.y, y, 1e-9)

			back := vp.ScreenToWorld(x, y)
			assert.InDelta(t, tt.p.X, back.X, 1e-9)
			assert.InDelta(t, tt.p.Y, back.Y, 1e-9)
		})
	}
}

func box(t *testing.T) *dcel.Mesh {
	t.Helper()
	m, err := dcel.New()
	require.NoError(t, err)
	f, err := m.InitPolygon([]r2.Point{{X: -0.8, Y: -0.8}, {X: 0.8, Y: -0.8}, {X: 0.8, Y: 0.8}, {X: -0.8, Y: 0.8}})
	require.NoError(t, err)
	_, err = m.SplitFaceWithLine(f, r2.Point{X: 0, Y: -1}, r2.Point{X: 0, Y: 1})
	require.NoError(t, err)
	for _, g := range m.Faces() {
		if !m.IsOuter(g) {
			require.NoError(t, m.SetSite(g, geom.Centroid(m.FacePolygon(g))))
			break
		}
	}
	return m
}

func TestSVG(t *testing.T) {
	m := box(t)
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, m, NewViewport(200, 200, world)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, 2, strings.Count(out, "<polygon"))
	assert.Equal(t, 1, strings.Count(out, cellStyle))
	assert.Equal(t, 1, strings.Count(out, emptyCellStyle))
	assert.Equal(t, m.NumVertices()+1, strings.Count(out, "<circle"))
	assert.Contains(t, out, "</svg>")
}

func TestPNG(t *testing.T) {
	m := box(t)
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, m, NewViewport(160, 90, world)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}
