package render

import (
	"io"

	"github.com/0x0FACED/go-dcel/pkg/dcel"
	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

const (
	backgroundStyle = "fill:rgb(255,255,255)"
	cellStyle       = "fill:rgb(235,242,250);stroke:rgb(90,110,140);stroke-width:1;stroke-opacity:1.0"
	emptyCellStyle  = "fill:rgb(250,250,250);stroke:rgb(170,170,170);stroke-width:1"
	siteStyle       = "fill:rgb(220,40,40)"
	vertexStyle     = "fill:rgb(40,40,40)"

	siteRadius   = 3
	vertexRadius = 2
)

// SVG writes every bounded face of m as a polygon, then vertices and sites
// on top.
func SVG(w io.Writer, m *dcel.Mesh, vp Viewport) error {
	canvas := svg.New(w)
	canvas.Start(vp.Width, vp.Height)
	canvas.Rect(0, 0, vp.Width, vp.Height, backgroundStyle)

	var xs, ys []int
	for _, f := range m.Faces() {
		if m.IsOuter(f) {
			continue
		}
		xs, ys = xs[:0], ys[:0]
		for _, p := range m.FacePolygon(f) {
			x, y := vp.pixel(p)
			xs = append(xs, x)
			ys = append(ys, y)
		}
		style := emptyCellStyle
		if _, ok := m.Site(f); ok {
			style = cellStyle
		}
		canvas.Polygon(xs, ys, style)
	}

	for _, v := range m.Vertices() {
		x, y := vp.pixel(m.Point(v))
		canvas.Circle(x, y, vertexRadius, vertexStyle)
	}
	for _, f := range m.Faces() {
		if s, ok := m.Site(f); ok {
			x, y := vp.pixel(s)
			canvas.Circle(x, y, siteRadius, siteStyle)
		}
	}
	canvas.End()
	return nil
}

// PNG rasterises the same picture as SVG.
func PNG(w io.Writer, m *dcel.Mesh, vp Viewport) error {
	c := gg.NewContext(vp.Width, vp.Height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	c.SetLineWidth(1)
	for _, f := range m.Faces() {
		if m.IsOuter(f) {
			continue
		}
		pts := m.FacePolygon(f)
		if len(pts) == 0 {
			continue
		}
		for i, p := range pts {
			x, y := vp.WorldToScreen(p)
			if i == 0 {
				c.MoveTo(x, y)
			} else {
				c.LineTo(x, y)
			}
		}
		c.ClosePath()
		if _, ok := m.Site(f); ok {
			c.SetRGB255(235, 242, 250)
		} else {
			c.SetRGB255(250, 250, 250)
		}
		c.FillPreserve()
		c.SetRGB255(90, 110, 140)
		c.Stroke()
	}

	c.SetRGB255(40, 40, 40)
	for _, v := range m.Vertices() {
		x, y := vp.WorldToScreen(m.Point(v))
		c.DrawCircle(x, y, vertexRadius)
		c.Fill()
	}
	c.SetRGB255(220, 40, 40)
	for _, f := range m.Faces() {
		if s, ok := m.Site(f); ok {
			x, y := vp.WorldToScreen(s)
			c.DrawCircle(x, y, siteRadius)
			c.Fill()
		}
	}

	if err := c.EncodePNG(w); err != nil {
		return errors.Wrap(err, "render: encode png")
	}
	return nil
}
