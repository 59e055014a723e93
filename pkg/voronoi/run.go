package voronoi

import (
	"github.com/0x0FACED/go-dcel/pkg/logger"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CreateDiagram inserts sites one by one into bbox and returns the
// finished diagram. Duplicates and sites outside the box are logged and
// skipped; any other failure stops the run.
func CreateDiagram(sites []r2.Point, bbox BoundingBox, logger *logger.ZapLogger) (*Diagram, error) {
	v, err := NewBox(bbox, WithLogger(logger))
	if err != nil {
		return nil, err
	}

	logger.Info("[v] incremental build started", zap.Int("sites", len(sites)))

	pop := func() (r2.Point, bool) {
		if len(sites) == 0 {
			return r2.Point{}, false
		}
		site := sites[0]
		sites = sites[1:]
		return site, true
	}

	var counter int
	for site, ok := pop(); ok; site, ok = pop() {
		logger.Debug("[v-for] iteration", zap.Int("c", counter), zap.Int("left", len(sites)))
		counter++

		if !bbox.Contains(site) {
			logger.Warn("[v-for-site] site outside the box", zap.Any("site", site))
			continue
		}
		if _, err := v.InsertSiteAt(site); err != nil {
			if errors.Is(err, ErrDuplicateSite) {
				continue
			}
			return nil, errors.Wrapf(err, "site %d", counter-1)
		}
	}

	if err := v.Verify(); err != nil {
		return nil, errors.Wrap(err, "voronoi: diagram failed verification")
	}
	logger.Info("[v] build finished", zap.Int("cells", len(v.Sites())))
	return v.Diagram(), nil
}
