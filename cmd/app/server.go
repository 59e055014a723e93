package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/0x0FACED/go-dcel/pkg/config"
	"github.com/0x0FACED/go-dcel/pkg/logger"
	"github.com/0x0FACED/go-dcel/pkg/render"
	"github.com/0x0FACED/go-dcel/pkg/voronoi"
	"github.com/0x0FACED/go-dcel/static"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultImageSize = 800
	maxImageSize     = 4000
	maxSites         = 2000
)

type server struct {
	cfg   *config.Config
	level zapcore.Level
}

// newServer validates cfg once, so handlers can rely on it.
func newServer(cfg *config.Config) (*server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return &server{cfg: cfg, level: lvl}, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.diagramHandler)
	mux.HandleFunc("/svg", s.svgHandler)
	mux.HandleFunc("/png", s.pngHandler)
	return mux
}

// params is what the form (or the query of an image URL) asks for.
type params struct {
	Sites  int
	Seed   int64
	Random bool
}

func (s *server) params(r *http.Request) (params, error) {
	p := params{Sites: s.cfg.Sites.Count, Seed: s.cfg.Sites.Seed, Random: s.cfg.Sites.Random}
	if err := r.ParseForm(); err != nil {
		return p, errors.Wrap(err, "parse form")
	}
	if v := r.FormValue("sites"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxSites {
			return p, errors.Errorf("sites must be a number in [0, %d], got %q", maxSites, v)
		}
		p.Sites = n
	}
	if v := r.FormValue("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return p, errors.Wrapf(err, "seed %q", v)
		}
		p.Seed = seed
	}
	// an unchecked box is missing from a posted form
	if v := r.FormValue("random"); v != "" || r.Method == http.MethodPost {
		p.Random = v == "true" || v == "on"
	}
	return p, nil
}

// sites generates the input inside the bounding rectangle of the bounds.
func (p params) sites(rect r2.Rect) []r2.Point {
	if !p.Random {
		return voronoi.GridSites(p.Sites, voronoi.NewBoundingBox(rect.X.Lo, rect.X.Hi, rect.Y.Hi, rect.Y.Lo))
	}
	size := rect.Size()
	radius := 0.5 * size.X
	if size.Y < size.X {
		radius = 0.5 * size.Y
	}
	pts := voronoi.RandomSites(p.Sites, p.Seed, radius)
	for i := range pts {
		pts[i] = pts[i].Add(rect.Center())
	}
	return pts
}

// build runs the incremental construction. Duplicates and sites outside the
// bounds are skipped; on any other failure the partially built diagram is
// returned with the error.
func (s *server) build(p params, log *logger.ZapLogger) (*voronoi.Voronoi, []r2.Point, error) {
	bounds, err := s.cfg.Bounds.Points()
	if err != nil {
		return nil, nil, err
	}
	v, err := voronoi.New(bounds, voronoi.WithTolerances(s.cfg.Tolerances), voronoi.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}

	sites := p.sites(r2.RectFromPoints(bounds...))
	for _, site := range sites {
		_, err := v.InsertSiteAt(site)
		switch {
		case err == nil:
		case errors.Is(err, voronoi.ErrDuplicateSite), errors.Is(err, voronoi.ErrOutside):
			log.Warn("[app] site skipped", zap.Any("site", site), zap.Error(err))
		default:
			return v, sites, err
		}
	}
	return v, sites, nil
}

// diagramHandler serves the page with the form, the chart and the build log.
func (s *server) diagramHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	p, err := s.params(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log := logger.New(s.level)
	defer log.ClearLogs()

	v, sites, err := s.build(p, log)
	if v == nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err != nil {
		log.Error("[app] build stopped", zap.Error(err))
	}
	if err := v.Verify(); err != nil {
		log.Error("[app] diagram failed verification", zap.Error(err))
	}

	scatter := voronoiToEcharts(sites, v.Diagram())

	fmt.Fprintln(w, static.Page(p.Sites, p.Seed, p.Random))

	if err := scatter.Render(w); err != nil {
		log.Error("[app] chart rendering", zap.Error(err))
	}

	fmt.Fprintln(w, static.Part2)

	log.UpdateLogs()
	for _, l := range log.Logs {
		fmt.Fprintln(w, l)
	}

	fmt.Fprintln(w, static.Part3)
}

func (s *server) image(w http.ResponseWriter, r *http.Request, contentType string,
	draw func(http.ResponseWriter, *voronoi.Voronoi, render.Viewport) error) {
	p, err := s.params(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	width, height, err := imageSize(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, _, err := s.build(p, logger.NewNop())
	if v == nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	vp := render.NewViewport(width, height, r2.RectFromPoints(v.Bounds()...))
	w.Header().Set("Content-Type", contentType)
	if err := draw(w, v, vp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *server) svgHandler(w http.ResponseWriter, r *http.Request) {
	s.image(w, r, "image/svg+xml", func(w http.ResponseWriter, v *voronoi.Voronoi, vp render.Viewport) error {
		return render.SVG(w, v.Mesh(), vp)
	})
}

func (s *server) pngHandler(w http.ResponseWriter, r *http.Request) {
	s.image(w, r, "image/png", func(w http.ResponseWriter, v *voronoi.Voronoi, vp render.Viewport) error {
		return render.PNG(w, v.Mesh(), vp)
	})
}

func imageSize(r *http.Request) (int, int, error) {
	size := func(key string) (int, error) {
		v := r.FormValue(key)
		if v == "" {
			return defaultImageSize, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 16 || n > maxImageSize {
			return 0, errors.Errorf("%s must be a number in [16, %d], got %q", key, maxImageSize, v)
		}
		return n, nil
	}
	w, err := size("width")
	if err != nil {
		return 0, 0, err
	}
	h, err := size("height")
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
