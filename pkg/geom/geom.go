package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Orientation returns (b-a) x (c-a). It is positive when c lies to the left
// of the directed line a->b (counter-clockwise turn), negative to the right
// and zero when the three points are collinear.
//
// Every orientation-dependent rule in the mesh is derived from this sign:
// faces lie to the left of their half-edges and bounded faces are walked
// counter-clockwise.
func Orientation(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// PseudoAngle maps the direction of (x, y) onto [0, 4). It grows
// monotonically with the true angle measured counter-clockwise from +x,
// without any trigonometry. Undefined at (0, 0).
func PseudoAngle(x, y float64) float64 {
	p := x / (math.Abs(x) + math.Abs(y))
	if y >= 0 {
		return 1 - p
	}
	return p + 3
}

// OrientedPseudoAngle is the pseudo-angle of c-a measured counter-clockwise
// from the direction b-a. Collinear-forward is 0, left of a->b falls in
// (0, 2), right of a->b in (2, 4).
func OrientedPseudoAngle(a, b, c r2.Point) float64 {
	v := ToFrameUnscaled(a, b, c)
	return PseudoAngle(v.X, v.Y)
}

// ToFrameUnscaled rotates c-a into the frame where b-a is the +x axis. The
// result is scaled by |b-a|^2, which does not matter for angles or signs.
func ToFrameUnscaled(a, b, c r2.Point) r2.Point {
	v := b.Sub(a)
	w := c.Sub(a)
	return r2.Point{X: w.Dot(v), Y: v.Cross(w)}
}

// ToFrame expresses p as (forward, left) multiples of the vector a->b. It is
// the inverse of PointRelativeToVector.
func ToFrame(a, b, p r2.Point) (forward, left float64) {
	v := b.Sub(a)
	n := v.Dot(v)
	f := ToFrameUnscaled(a, b, p)
	return f.X / n, f.Y / n
}

// PointRelativeToVector returns a + forward*(b-a) + left*perp(b-a), where
// perp rotates counter-clockwise. Used to build bisectors and arrow heads.
func PointRelativeToVector(a, b r2.Point, forward, left float64) r2.Point {
	v := b.Sub(a)
	return a.Add(v.Mul(forward)).Add(v.Ortho().Mul(left))
}

// SignedLineDistance is the perpendicular distance from p to the infinite
// line a->b, positive on the left.
func SignedLineDistance(p, a, b r2.Point) float64 {
	return Orientation(a, b, p) / b.Sub(a).Norm()
}

// PointLineDistance is the unsigned perpendicular distance from p to the
// infinite line through a and b.
func PointLineDistance(p, a, b r2.Point) float64 {
	return math.Abs(SignedLineDistance(p, a, b))
}

// PointSegmentDistance is the distance from p to the closed segment ab.
func PointSegmentDistance(p, a, b r2.Point) float64 {
	v := b.Sub(a)
	n := v.Dot(v)
	if n == 0 {
		return p.Sub(a).Norm()
	}
	t := p.Sub(a).Dot(v) / n
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(v.Mul(t))).Norm()
}

// LineSegmentIntersection intersects the infinite line p1->p2 with the
// segment ab. An endpoint within tol.Distance of the line is returned as is;
// otherwise the segment must have its endpoints strictly on opposite sides.
func LineSegmentIntersection(p1, p2, a, b r2.Point, tol Tolerances) (r2.Point, bool) {
	da := SignedLineDistance(a, p1, p2)
	db := SignedLineDistance(b, p1, p2)
	switch {
	case math.Abs(da) <= tol.Distance:
		return a, true
	case math.Abs(db) <= tol.Distance:
		return b, true
	case da*db > 0:
		return r2.Point{}, false
	}
	den := da - db
	if math.Abs(den) < tol.Calc {
		return r2.Point{}, false
	}
	return a.Add(b.Sub(a).Mul(da / den)), true
}

// Bisector returns two points on the perpendicular bisector of site and
// other. The line p1->p2 keeps site on its left, so it runs
// counter-clockwise around site.
func Bisector(site, other r2.Point) (p1, p2 r2.Point) {
	return PointRelativeToVector(other, site, 0.5, 0.5),
		PointRelativeToVector(other, site, 0.5, -0.5)
}

// BisectorDirection is the direction of the bisector returned by Bisector.
func BisectorDirection(site, other r2.Point) r2.Point {
	return site.Sub(other).Ortho().Mul(-1)
}

// LessXY orders points by x, then by y.
func LessXY(a, b r2.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// Distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// Centroid is the vertex average of pts.
func Centroid(pts []r2.Point) r2.Point {
	var c r2.Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(pts)))
}

// SignedArea of a closed polygon, positive for counter-clockwise winding.
func SignedArea(pts []r2.Point) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.Cross(q)
	}
	return a / 2
}
