package voronoi

import (
	"github.com/0x0FACED/go-dcel/pkg/dcel"
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Direction of a propagation pass around the new cell.
type Direction int

const (
	CounterClockwise Direction = iota
	Clockwise
)

func (d Direction) String() string {
	if d == Clockwise {
		return "cw"
	}
	return "ccw"
}

// Step describes one neighbour absorbed while a site was inserted. Edge is
// the new bisector edge on the boundary of the site's cell.
type Step struct {
	Site      r2.Point
	Direction Direction
	Neighbor  dcel.FaceID
	Edge      dcel.EdgeID
	Deleted   int
}

// InsertSiteAt inserts p into the cell that contains it. Points outside the
// bounds are rejected with ErrOutside.
func (v *Voronoi) InsertSiteAt(p r2.Point) (dcel.FaceID, error) {
	if !v.inBounds(p) {
		return dcel.NoFace, errors.Wrapf(ErrOutside, "site %v", p)
	}
	f := v.mesh.FaceAt(p)
	if v.mesh.IsOuter(f) {
		return dcel.NoFace, errors.Wrapf(ErrNoCell, "site %v", p)
	}
	return v.InsertSite(f, p)
}

// inBounds uses the same closed test as Mesh.FaceAt.
func (v *Voronoi) inBounds(p r2.Point) bool {
	for i, a := range v.bounds {
		b := v.bounds[(i+1)%len(v.bounds)]
		if geom.Orientation(a, b, p) < 0 {
			return false
		}
	}
	return true
}

// InsertSite adds site p, which must lie in face f, and returns the face of
// its cell. The first site takes the whole bounded face. A site coinciding
// with the site of f is rejected with ErrDuplicateSite and changes nothing.
func (v *Voronoi) InsertSite(f dcel.FaceID, p r2.Point) (dcel.FaceID, error) {
	if v.busy {
		return dcel.NoFace, ErrBusy
	}
	v.busy = true
	defer func() { v.busy = false }()

	m := v.mesh
	if !m.HasFace(f) {
		return dcel.NoFace, errors.Wrapf(dcel.ErrUnknownElement, "insert site into face %d", f)
	}
	if m.IsOuter(f) {
		return dcel.NoFace, errors.Wrapf(dcel.ErrOuterFace, "insert site %v", p)
	}

	s, ok := m.Site(f)
	if !ok {
		if err := m.SetSite(f, p); err != nil {
			return dcel.NoFace, err
		}
		v.sites = append(v.sites, p)
		v.Logger.Info("[v] first site", zap.Any("site", p), zap.String("face", m.ShortID(dcel.FaceElement(f))))
		return f, nil
	}
	if v.tol.Coincident(s, p) {
		v.Logger.Warn("[v] duplicate site", zap.Any("site", p), zap.Any("existing", s))
		return dcel.NoFace, errors.Wrapf(ErrDuplicateSite, "site %v", p)
	}

	p1, p2 := geom.Bisector(p, s)
	h0, err := m.SplitFaceWithLine(f, p1, p2)
	if err != nil {
		return dcel.NoFace, errors.Wrapf(err, "split %s for site %v", m.ShortID(dcel.FaceElement(f)), p)
	}
	h0, err = v.unsitedSide(h0)
	if err != nil {
		return dcel.NoFace, err
	}
	cell := m.Face(h0)
	if err := m.SetSite(cell, p); err != nil {
		return dcel.NoFace, err
	}
	v.sites = append(v.sites, p)
	v.Logger.Info("[v] site split its cell",
		zap.Any("site", p),
		zap.Any("neighbor", s),
		zap.String("edge", m.ShortID(dcel.EdgeElement(h0))))

	if err := v.propagate(p, h0); err != nil {
		return dcel.NoFace, err
	}
	cell = m.Face(h0)
	v.Logger.Info("[v] cell closed", zap.Any("site", p), zap.Any("polygon", m.FacePolygon(cell)))
	return cell, nil
}

// unsitedSide returns whichever of e and its twin bounds the face without a
// site.
func (v *Voronoi) unsitedSide(e dcel.EdgeID) (dcel.EdgeID, error) {
	m := v.mesh
	if _, ok := m.Site(m.Face(e)); !ok {
		return e, nil
	}
	t := m.Twin(e)
	if _, ok := m.Site(m.Face(t)); !ok {
		return t, nil
	}
	return dcel.NoEdge, errors.Wrapf(ErrPropagation, "both sides of %s hold a site", m.ShortID(dcel.EdgeElement(e)))
}

// propagate grows the cell of p, bounded on the left of h0, into its
// neighbours. The counter-clockwise pass walks forward from h0 until the cell
// closes or the bounds are reached. The clockwise pass then walks backward
// from h0, along the bounds as well, up to where the first pass stopped, so
// every edge of the cell is seen by one of the two.
func (v *Voronoi) propagate(p r2.Point, h0 dcel.EdgeID) error {
	m := v.mesh
	limit := func() int { return 2*(m.NumEdges()+m.NumFaces()) + 8 }

	stop := dcel.NoEdge
	cur := h0
	for steps := 0; ; steps++ {
		if steps > limit() {
			return errors.Wrapf(ErrPropagation, "counter-clockwise pass did not close after %d steps", steps)
		}
		nxt := m.Next(cur)
		if nxt == h0 {
			return nil
		}
		if m.IsOuter(m.Face(m.Twin(nxt))) {
			stop = nxt
			break
		}
		absorbed, err := v.absorb(p, nxt, CounterClockwise)
		if err != nil {
			return err
		}
		// the boundary after cur has changed, look at it again
		if !absorbed {
			cur = nxt
		}
	}

	cur = h0
	for steps := 0; ; steps++ {
		if steps > limit() {
			return errors.Wrapf(ErrPropagation, "clockwise pass did not end after %d steps", steps)
		}
		prv := m.Prev(cur)
		if prv == stop || prv == h0 {
			return nil
		}
		if !m.IsOuter(m.Face(m.Twin(prv))) {
			absorbed, err := v.absorb(p, prv, Clockwise)
			if err != nil {
				return err
			}
			if absorbed {
				continue
			}
		}
		cur = prv
	}
}

// absorb moves the part of the neighbour across e that is closer to p into
// the cell of p, which lies on the left of e. The neighbour is split by the
// whole bisector line of p and its site; every edge the cell shares with the
// split-off part is then deleted, along with anything left dangling. It
// reports false when no part of the neighbour is closer to p.
func (v *Voronoi) absorb(p r2.Point, e dcel.EdgeID, dir Direction) (bool, error) {
	m := v.mesh
	n := m.Face(m.Twin(e))
	q, ok := m.Site(n)
	if !ok {
		return false, errors.Wrapf(ErrPropagation, "neighbor %s has no site", m.ShortID(dcel.FaceElement(n)))
	}
	p1, p2 := geom.Bisector(p, q)
	if !v.reaches(n, p1, p2) {
		return false, nil
	}

	cell := m.Face(e)
	h, err := m.SplitFaceWithLine(n, p1, p2)
	if err != nil {
		return false, errors.Wrapf(err, "split neighbor %s of site %v", m.ShortID(dcel.FaceElement(n)), p)
	}
	if h, err = v.unsitedSide(h); err != nil {
		return false, err
	}
	deleted, err := v.dissolve(cell, m.Face(h))
	if err != nil {
		return false, errors.Wrapf(err, "absorb %s", m.ShortID(dcel.FaceElement(n)))
	}
	if deleted == 0 {
		return false, errors.Wrapf(ErrPropagation, "cell of %v does not touch the split of %s", p, m.ShortID(dcel.FaceElement(n)))
	}

	v.Logger.Debug("[v-"+dir.String()+"] neighbor absorbed",
		zap.Any("site", p),
		zap.Any("neighbor", q),
		zap.String("edge", m.ShortID(dcel.EdgeElement(h))),
		zap.Int("deleted", deleted))
	v.step(Step{Site: p, Direction: dir, Neighbor: n, Edge: h, Deleted: deleted})
	return true, nil
}

// reaches reports whether face f has a vertex strictly on the left of the
// line p1->p2.
func (v *Voronoi) reaches(f dcel.FaceID, p1, p2 r2.Point) bool {
	for _, x := range v.mesh.FacePolygon(f) {
		if side, _ := v.tol.Side(p1, p2, x); side > 0 {
			return true
		}
	}
	return false
}

// dissolve deletes the edges between cell and part, which merges part into
// cell, then the edges left dangling inside the cell. Returns the number of
// edges deleted.
func (v *Voronoi) dissolve(cell, part dcel.FaceID) (int, error) {
	m := v.mesh
	deleted := 0
	for {
		e := v.redundantEdge(cell, part)
		if e == dcel.NoEdge {
			return deleted, nil
		}
		f, err := m.DeleteEdge(e)
		if err != nil {
			return deleted, err
		}
		cell = f
		deleted++
	}
}

func (v *Voronoi) redundantEdge(cell, part dcel.FaceID) dcel.EdgeID {
	m := v.mesh
	for _, e := range m.FaceEdges(cell) {
		switch m.Face(m.Twin(e)) {
		case part:
			return e
		case cell:
			if m.Degree(m.Origin(e)) == 1 || m.Degree(m.Dest(e)) == 1 {
				return e
			}
		}
	}
	return dcel.NoEdge
}

func (v *Voronoi) step(s Step) {
	if v.hook != nil {
		v.hook(s)
	}
}
