package geom

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	defaultDistanceTolerance = 1e-9
	defaultCalcTolerance     = 1e-12
	defaultNearMissFactor    = 10
)

// Tolerances groups the fixed epsilons used by the predicates.
//
// Distance decides vertex coincidence and point-on-line tests. Calc guards
// divisions in intersection computations. NearMiss is a factor: a distance
// above Distance but below NearMiss*Distance is reported as a near miss.
type Tolerances struct {
	Distance float64 `yaml:"distance"`
	Calc     float64 `yaml:"calc"`
	NearMiss float64 `yaml:"near_miss"`
}

func DefaultTolerances() Tolerances {
	return Tolerances{
		Distance: defaultDistanceTolerance,
		Calc:     defaultCalcTolerance,
		NearMiss: defaultNearMissFactor,
	}
}

func (t Tolerances) Validate() error {
	if !(t.Distance > 0) {
		return errors.Errorf("geom: distance tolerance must be positive, got %v", t.Distance)
	}
	if !(t.Calc > 0) {
		return errors.Errorf("geom: calc tolerance must be positive, got %v", t.Calc)
	}
	if t.NearMiss < 1 {
		return errors.Errorf("geom: near miss factor must be >= 1, got %v", t.NearMiss)
	}
	return nil
}

// Coincident reports whether a and b are the same point within Distance.
func (t Tolerances) Coincident(a, b r2.Point) bool {
	return Distance(a, b) <= t.Distance
}

// NearMissed reports a distance that failed the Distance test only barely.
func (t Tolerances) NearMissed(d float64) bool {
	d = math.Abs(d)
	return d > t.Distance && d <= t.Distance*t.NearMiss
}

// Side classifies p against the directed line a->b: +1 left, -1 right, 0 on
// the line within Distance. The signed distance is returned alongside so the
// caller can report near misses.
func (t Tolerances) Side(a, b, p r2.Point) (int, float64) {
	d := SignedLineDistance(p, a, b)
	switch {
	case math.Abs(d) <= t.Distance:
		return 0, d
	case d > 0:
		return 1, d
	}
	return -1, d
}
