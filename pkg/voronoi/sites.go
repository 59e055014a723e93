package voronoi

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// RandomSites draws n points uniformly from the open disc of the given
// radius around the origin. The same seed gives the same points.
func RandomSites(n int, seed int64, radius float64) []r2.Point {
	rnd := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, 0, n)
	for len(sites) < n {
		p := r2.Point{X: rnd.Float64()*2 - 1, Y: rnd.Float64()*2 - 1}
		// rejection sampling from the enclosing square
		if p.Norm() >= 1 {
			continue
		}
		sites = append(sites, p.Mul(radius))
	}
	return sites
}

// GridSites puts n points on the centres of a near-square grid covering
// bbox, row by row from the bottom.
func GridSites(n int, bbox BoundingBox) []r2.Point {
	if n <= 0 {
		return nil
	}
	sites := make([]r2.Point, 0, n)

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	r := bbox.Rect()
	xStep := r.X.Length() / float64(cols)
	yStep := r.Y.Length() / float64(rows)

	for i := 0; i < rows && len(sites) < n; i++ {
		for j := 0; j < cols && len(sites) < n; j++ {
			sites = append(sites, r2.Point{
				X: r.X.Lo + xStep/2 + float64(j)*xStep,
				Y: r.Y.Lo + yStep/2 + float64(i)*yStep,
			})
		}
	}
	return sites
}
