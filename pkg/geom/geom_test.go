package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func TestOrientation(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 1, Y: 0}

	tests := []struct {
		name string
		c    r2.Point
		sign int
	}{
		{"collinear", r2.Point{X: 2, Y: 0}, 0},
		{"left", r2.Point{X: 2, Y: 1}, 1},
		{"right", r2.Point{X: 2, Y: -1}, -1},
		{"behind", r2.Point{X: -3, Y: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Orientation(a, b, tt.c)
			switch tt.sign {
			case 0:
				assert.Equal(t, 0.0, got)
			case 1:
				assert.Greater(t, got, 0.0)
			default:
				assert.Less(t, got, 0.0)
			}
		})
	}
}

func TestPseudoAngle_Axes(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"+x", 1, 0, 0},
		{"+y", 0, 1, 1},
		{"-x", -1, 0, 2},
		{"-y", 0, -1, 3},
		{"diagonal", 2, 2, 0.5},
		{"scaled", 0, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PseudoAngle(tt.x, tt.y), eps)
		})
	}
}

func TestPseudoAngle_MonotonicInTrueAngle(t *testing.T) {
	prev := -1.0
	for i := 0; i < 360; i++ {
		theta := float64(i) * math.Pi / 180
		got := PseudoAngle(math.Cos(theta), math.Sin(theta))
		require.GreaterOrEqual(t, got, 0.0)
		require.Less(t, got, 4.0)
		require.Greater(t, got, prev, "angle %d degrees", i)
		prev = got
	}
}

func TestOrientedPseudoAngle(t *testing.T) {
	a := r2.Point{X: 1, Y: 1}
	b := r2.Point{X: 1, Y: 3} // pointing +y

	assert.InDelta(t, 0, OrientedPseudoAngle(a, b, r2.Point{X: 1, Y: 10}), eps)
	assert.InDelta(t, 1, OrientedPseudoAngle(a, b, r2.Point{X: -4, Y: 1}), eps)
	assert.InDelta(t, 2, OrientedPseudoAngle(a, b, r2.Point{X: 1, Y: 0}), eps)
	assert.InDelta(t, 3, OrientedPseudoAngle(a, b, r2.Point{X: 5, Y: 1}), eps)

	left := OrientedPseudoAngle(a, b, r2.Point{X: 0, Y: 2})
	right := OrientedPseudoAngle(a, b, r2.Point{X: 2, Y: 2})
	assert.Less(t, left, 2.0)
	assert.Greater(t, right, 2.0)
}

func TestFrame_RoundTrip(t *testing.T) {
	a := r2.Point{X: -0.3, Y: 0.7}
	b := r2.Point{X: 0.4, Y: -0.2}
	p := r2.Point{X: 0.25, Y: 0.5}

	f, l := ToFrame(a, b, p)
	got := PointRelativeToVector(a, b, f, l)
	assert.InDelta(t, p.X, got.X, eps)
	assert.InDelta(t, p.Y, got.Y, eps)
}

func TestPointRelativeToVector(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 2, Y: 0}
	got := PointRelativeToVector(a, b, 0.5, 1)
	assert.Equal(t, r2.Point{X: 1, Y: 2}, got)
	assert.Greater(t, Orientation(a, b, got), 0.0)
}

func TestDistances(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 4, Y: 0}

	assert.InDelta(t, 3, PointLineDistance(r2.Point{X: 10, Y: 3}, a, b), eps)
	assert.InDelta(t, -3, SignedLineDistance(r2.Point{X: 1, Y: -3}, a, b), eps)

	assert.InDelta(t, 2, PointSegmentDistance(r2.Point{X: 2, Y: 2}, a, b), eps)
	assert.InDelta(t, 5, PointSegmentDistance(r2.Point{X: 7, Y: 4}, a, b), eps)
	assert.InDelta(t, 1, PointSegmentDistance(r2.Point{X: -1, Y: 0}, a, b), eps)
	assert.InDelta(t, math.Sqrt2, PointSegmentDistance(r2.Point{X: 1, Y: 1}, a, a), eps)
}

func TestLineSegmentIntersection(t *testing.T) {
	tol := DefaultTolerances()
	p1 := r2.Point{X: 0, Y: 0}
	p2 := r2.Point{X: 1, Y: 1}

	tests := []struct {
		name string
		a, b r2.Point
		want r2.Point
		ok   bool
	}{
		{"crossing", r2.Point{X: 2, Y: 0}, r2.Point{X: 0, Y: 2}, r2.Point{X: 1, Y: 1}, true},
		{"same side", r2.Point{X: 2, Y: 0}, r2.Point{X: 3, Y: 1}, r2.Point{}, false},
		{"endpoint on line", r2.Point{X: 5, Y: 5}, r2.Point{X: 7, Y: 0}, r2.Point{X: 5, Y: 5}, true},
		{"far endpoint on line", r2.Point{X: 7, Y: 0}, r2.Point{X: -2, Y: -2}, r2.Point{X: -2, Y: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineSegmentIntersection(p1, p2, tt.a, tt.b, tol)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.want.X, got.X, 1e-9)
				assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			}
		})
	}
}

func TestBisector(t *testing.T) {
	site := r2.Point{X: -0.3, Y: -0.1}
	other := r2.Point{X: 0.1, Y: 0.2}

	p1, p2 := Bisector(site, other)
	assert.InDelta(t, Distance(p1, site), Distance(p1, other), eps)
	assert.InDelta(t, Distance(p2, site), Distance(p2, other), eps)
	assert.Greater(t, Orientation(p1, p2, site), 0.0)
	assert.Less(t, Orientation(p1, p2, other), 0.0)

	d := BisectorDirection(site, other)
	assert.InDelta(t, 0, d.Cross(p2.Sub(p1)), eps)
	assert.Greater(t, d.Dot(p2.Sub(p1)), 0.0)
}

func TestSignedArea(t *testing.T) {
	ccw := []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}}
	assert.InDelta(t, 2, SignedArea(ccw), eps)

	cw := []r2.Point{ccw[3], ccw[2], ccw[1], ccw[0]}
	assert.InDelta(t, -2, SignedArea(cw), eps)

	assert.Equal(t, r2.Point{X: 1, Y: 0.5}, Centroid(ccw))
}

func TestTolerances(t *testing.T) {
	tol := DefaultTolerances()
	require.NoError(t, tol.Validate())

	bad := tol
	bad.Distance = 0
	assert.Error(t, bad.Validate())
	bad = tol
	bad.NearMiss = 0.5
	assert.Error(t, bad.Validate())

	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 1, Y: 0}

	side, _ := tol.Side(a, b, r2.Point{X: 3, Y: tol.Distance / 2})
	assert.Equal(t, 0, side)
	side, _ = tol.Side(a, b, r2.Point{X: 3, Y: 1})
	assert.Equal(t, 1, side)
	side, d := tol.Side(a, b, r2.Point{X: 3, Y: -5 * tol.Distance})
	assert.Equal(t, -1, side)
	assert.True(t, tol.NearMissed(d))
	assert.False(t, tol.NearMissed(1))

	assert.True(t, tol.Coincident(a, r2.Point{X: tol.Distance / 2}))
	assert.False(t, tol.Coincident(a, b))
}
