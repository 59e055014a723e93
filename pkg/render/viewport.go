// Package render draws a mesh and its sites as SVG or PNG.
package render

import (
	"math"

	"github.com/golang/geo/r2"
)

const defaultPadding = 10

// Viewport maps world coordinates, y up, onto a screen of Width x Height
// pixels, y down. World bounds are scaled uniformly and centred.
type Viewport struct {
	Width, Height int
	Padding       float64

	world  r2.Rect
	scale  float64
	offset r2.Point
}

func NewViewport(width, height int, world r2.Rect) Viewport {
	vp := Viewport{Width: width, Height: height, Padding: defaultPadding, world: world}
	vp.fit()
	return vp
}

func (vp *Viewport) fit() {
	w := float64(vp.Width) - 2*vp.Padding
	h := float64(vp.Height) - 2*vp.Padding
	size := vp.world.Size()
	vp.scale = 1
	if size.X > 0 && size.Y > 0 {
		vp.scale = math.Min(w/size.X, h/size.Y)
	}
	if vp.scale <= 0 {
		vp.scale = 1
	}
	// centre the scaled bounds on screen
	vp.offset = r2.Point{
		X: (float64(vp.Width) - size.X*vp.scale) / 2,
		Y: (float64(vp.Height) - size.Y*vp.scale) / 2,
	}
}

// Scale is the number of pixels per world unit.
func (vp Viewport) Scale() float64 { return vp.scale }

func (vp Viewport) WorldToScreen(p r2.Point) (x, y float64) {
	x = vp.offset.X + (p.X-vp.world.X.Lo)*vp.scale
	y = float64(vp.Height) - vp.offset.Y - (p.Y-vp.world.Y.Lo)*vp.scale
	return x, y
}

func (vp Viewport) ScreenToWorld(x, y float64) r2.Point {
	return r2.Point{
		X: vp.world.X.Lo + (x-vp.offset.X)/vp.scale,
		Y: vp.world.Y.Lo + (float64(vp.Height)-vp.offset.Y-y)/vp.scale,
	}
}

func (vp Viewport) pixel(p r2.Point) (int, int) {
	x, y := vp.WorldToScreen(p)
	return int(math.Round(x)), int(math.Round(y))
}
