package voronoi

import (
	"github.com/0x0FACED/go-dcel/pkg/dcel"
	"github.com/0x0FACED/go-dcel/pkg/geom"
	"github.com/0x0FACED/go-dcel/pkg/hull"
	"github.com/0x0FACED/go-dcel/pkg/logger"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrBusy          = errors.New("voronoi: a site insertion is already running")
	ErrDuplicateSite = errors.New("voronoi: site coincides with an existing site")
	ErrOutside       = errors.New("voronoi: site is outside the bounds")
	ErrBounds        = errors.New("voronoi: bounds must be a strictly convex polygon")
	ErrPropagation   = errors.New("voronoi: bisector propagation failed")
	ErrNoCell        = errors.New("voronoi: no cell contains a point inside the bounds")
)

const defaultHalfWidth = 0.8

// Voronoi builds a Voronoi diagram one site at a time on top of a half-edge
// mesh bootstrapped with a convex bounding polygon. Every bounded face of
// the mesh is the cell of one site.
type Voronoi struct {
	mesh   *dcel.Mesh
	bounds []r2.Point
	sites  []r2.Point
	tol    geom.Tolerances

	hook func(Step)
	busy bool

	Logger *logger.ZapLogger
}

type options struct {
	tol  geom.Tolerances
	log  *logger.ZapLogger
	hook func(Step)
}

type Option func(*options) error

func WithTolerances(t geom.Tolerances) Option {
	return func(o *options) error {
		if err := t.Validate(); err != nil {
			return err
		}
		o.tol = t
		return nil
	}
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) error {
		if l == nil {
			return errors.New("voronoi: nil logger")
		}
		o.log = l
		return nil
	}
}

// WithStepHook registers fn to be called after every propagation step. The
// mesh is consistent whenever fn runs; fn must not insert sites itself.
func WithStepHook(fn func(Step)) Option {
	return func(o *options) error {
		o.hook = fn
		return nil
	}
}

// New bootstraps a builder with the convex polygon bounds, given in either
// winding.
func New(bounds []r2.Point, opts ...Option) (*Voronoi, error) {
	o := options{tol: geom.DefaultTolerances(), log: logger.NewNop()}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errors.Wrap(err, "voronoi: bad option")
		}
	}
	if !hull.IsConvex(bounds) {
		return nil, errors.Wrapf(ErrBounds, "%d points", len(bounds))
	}
	pts := hull.GiftWrap(bounds)

	mesh, err := dcel.New(dcel.WithTolerances(o.tol), dcel.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	if _, err := mesh.InitPolygon(pts); err != nil {
		return nil, errors.Wrap(err, "voronoi: bounds")
	}
	o.log.Info("[v] builder ready", zap.Int("bounds", len(pts)), zap.Any("polygon", pts))

	return &Voronoi{
		mesh:   mesh,
		bounds: pts,
		tol:    o.tol,
		hook:   o.hook,
		Logger: o.log,
	}, nil
}

func NewBox(bbox BoundingBox, opts ...Option) (*Voronoi, error) {
	return New(bbox.Points(), opts...)
}

// DefaultBox is a builder over the square of half width 0.8.
func DefaultBox(opts ...Option) (*Voronoi, error) {
	w := defaultHalfWidth
	return NewBox(NewBoundingBox(-w, w, w, -w), opts...)
}

// Mesh gives read access to the underlying mesh. Mutating it directly
// invalidates the builder.
func (v *Voronoi) Mesh() *dcel.Mesh { return v.mesh }

// Bounds returns the bounding polygon counter-clockwise.
func (v *Voronoi) Bounds() []r2.Point { return append([]r2.Point(nil), v.bounds...) }

// Sites returns the accepted sites in insertion order.
func (v *Voronoi) Sites() []r2.Point { return append([]r2.Point(nil), v.sites...) }

// CellOf returns the face holding site p, or dcel.NoFace.
func (v *Voronoi) CellOf(p r2.Point) dcel.FaceID {
	for _, f := range v.mesh.Faces() {
		if s, ok := v.mesh.Site(f); ok && s == p {
			return f
		}
	}
	return dcel.NoFace
}

// Verify checks the mesh invariants, that every bounded face is the cell of
// exactly one accepted site and that every edge between two cells lies on
// the bisector of their sites.
func (v *Voronoi) Verify() error {
	meshErr := v.mesh.Verify()
	err := meshErr
	seen := make(map[r2.Point]bool, len(v.sites))
	bounded := 0
	for _, f := range v.mesh.Faces() {
		if v.mesh.IsOuter(f) {
			if _, ok := v.mesh.Site(f); ok {
				err = multierr.Append(err, errors.New("voronoi: outer face holds a site"))
			}
			continue
		}
		bounded++
		s, ok := v.mesh.Site(f)
		if !ok {
			if len(v.sites) > 0 {
				err = multierr.Append(err, errors.Errorf("voronoi: %s has no site", v.mesh.ShortID(dcel.FaceElement(f))))
			}
			continue
		}
		if seen[s] {
			err = multierr.Append(err, errors.Errorf("voronoi: site %v is held by two faces", s))
		}
		seen[s] = true
	}
	if len(v.sites) > 0 && bounded != len(v.sites) {
		err = multierr.Append(err, errors.Errorf("voronoi: %d cells for %d sites", bounded, len(v.sites)))
	}
	for _, s := range v.sites {
		if !seen[s] {
			err = multierr.Append(err, errors.Errorf("voronoi: site %v has no cell", s))
		}
	}
	// geometry is only read off a consistent mesh
	if meshErr != nil {
		return err
	}
	return multierr.Append(err, v.verifyBisectors())
}

// verifyBisectors checks both endpoints of every edge between two sited
// faces against the bisector of the sites. Vertices snapped onto a line can
// sit up to Distance off it, so the check allows the near-miss band.
func (v *Voronoi) verifyBisectors() error {
	m := v.mesh
	slack := v.tol.Distance * v.tol.NearMiss
	var err error
	for _, e := range m.Edges() {
		p, ok := m.Site(m.Face(e))
		if !ok {
			continue
		}
		q, ok := m.Site(m.Face(m.Twin(e)))
		if !ok || e > m.Twin(e) {
			continue
		}
		p1, p2 := geom.Bisector(p, q)
		a, b := m.Segment(e)
		for _, x := range []r2.Point{a, b} {
			if d := geom.PointLineDistance(x, p1, p2); d > slack {
				err = multierr.Append(err, errors.Errorf("voronoi: %s between sites %v and %v is %g off their bisector",
					m.ShortID(dcel.EdgeElement(e)), p, q, d))
				break
			}
		}
	}
	return err
}
