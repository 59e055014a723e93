package dcel

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Degenerate input. The mesh is left untouched when one of these is returned.
var (
	ErrSameVertex       = errors.New("dcel: edge endpoints are the same vertex")
	ErrAlreadyConnected = errors.New("dcel: vertices are already connected")
	ErrCoincidentPoint  = errors.New("dcel: point coincides with an existing vertex")
	ErrOffSegment       = errors.New("dcel: point is not on the edge")
	ErrLineCrossings    = errors.New("dcel: line does not cross the face boundary exactly twice")
	ErrDisconnects      = errors.New("dcel: deleting the edge would disconnect the mesh")
	ErrOuterFace        = errors.New("dcel: operation not allowed on the outer face")
	ErrNotPolygon       = errors.New("dcel: polygon needs at least three distinct points")
	ErrNotEmpty         = errors.New("dcel: mesh already has vertices")
	ErrUnknownElement   = errors.New("dcel: element does not exist")
	ErrPoisoned         = errors.New("dcel: mesh failed a structural check and must be verified before further mutation")
)

// StructuralError reports a broken mesh invariant. It means a bug in the
// mesh or in the caller, never bad geometry.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return "dcel: structural violation: " + e.Msg
}

// IsStructural reports whether err, or anything it wraps, is a
// *StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// Internal operations recurse and walk cycles several levels deep, so a broken
// invariant panics and the exported entry point converts it back.
func fatalf(format string, args ...interface{}) {
	panic(&StructuralError{Msg: fmt.Sprintf(format, args...)})
}

// guard is deferred by every exported mutator. It turns a fatalf panic into
// an error and poisons the mesh. Any other panic is re-raised.
func (m *Mesh) guard(err *error) {
	r := recover()
	if r == nil {
		return
	}
	se, ok := r.(*StructuralError)
	if !ok {
		panic(r)
	}
	m.poisoned = true
	m.log.Error("[dcel] structural violation, mesh poisoned", zap.String("reason", se.Msg))
	*err = errors.WithStack(se)
}

func (m *Mesh) checkWritable() error {
	if m.poisoned {
		return ErrPoisoned
	}
	return nil
}
