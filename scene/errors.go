package scene

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSceneParameters rejects a scene before any body is created.
	ErrInvalidSceneParameters = errors.New("scene: invalid scene parameters")
	// ErrEngineUnavailable means the physics collaborator could not be set up.
	ErrEngineUnavailable = errors.New("scene: physics engine unavailable")
)

// ValidateParameters checks viewport dimensions and body count.
func ValidateParameters(width, height float64, bodyCount int) error {
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"width", width},
		{"height", height},
	} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return fmt.Errorf("%w: viewport %s is not finite", ErrInvalidSceneParameters, d.name)
		}
		if d.v <= 0 {
			return fmt.Errorf("%w: viewport %s must be positive, got %v", ErrInvalidSceneParameters, d.name, d.v)
		}
	}
	if bodyCount < 0 {
		return fmt.Errorf("%w: body count must be >= 0, got %d", ErrInvalidSceneParameters, bodyCount)
	}
	return nil
}
