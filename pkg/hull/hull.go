// Package hull computes planar convex hulls by gift wrapping.
package hull

import (
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
)

// GiftWrap returns the convex hull of points counter-clockwise, starting at
// the lexicographically least point and without repeating it. Points on a
// hull side between two corners are dropped. With fewer than three distinct
// points the distinct points are returned in input order.
func GiftWrap(points []r2.Point) []r2.Point {
	pts := distinct(points)
	if len(pts) < 3 {
		return pts
	}

	start := 0
	for i, p := range pts {
		if geom.LessXY(p, pts[start]) {
			start = i
		}
	}

	hull := []r2.Point{pts[start]}
	cur := pts[start]
	ref := cur.Add(r2.Point{Y: -1})
	for len(hull) <= len(pts) {
		next := -1
		var bestAngle, bestDist float64
		for i, p := range pts {
			if p == cur {
				continue
			}
			angle := geom.OrientedPseudoAngle(cur, ref, p)
			dist := geom.Distance(cur, p)
			if next == -1 || angle < bestAngle || (angle == bestAngle && dist > bestDist) {
				next, bestAngle, bestDist = i, angle, dist
			}
		}
		if pts[next] == hull[0] {
			break
		}
		ref = pts[next].Add(pts[next].Sub(cur))
		cur = pts[next]
		hull = append(hull, cur)
	}
	return hull
}

// IsConvex reports whether pts, in either winding, is a strictly convex
// polygon: every point is a hull corner and the order follows the hull.
func IsConvex(pts []r2.Point) bool {
	if len(pts) < 3 || len(distinct(pts)) != len(pts) {
		return false
	}
	h := GiftWrap(pts)
	if len(h) != len(pts) {
		return false
	}
	off := -1
	for i, p := range pts {
		if p == h[0] {
			off = i
			break
		}
	}
	n := len(pts)
	forward, backward := true, true
	for i := range h {
		if pts[(off+i)%n] != h[i] {
			forward = false
		}
		if pts[(off-i+n)%n] != h[i] {
			backward = false
		}
	}
	return forward || backward
}

func distinct(points []r2.Point) []r2.Point {
	seen := make(map[r2.Point]bool, len(points))
	out := make([]r2.Point, 0, len(points))
	for _, p := range points {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
