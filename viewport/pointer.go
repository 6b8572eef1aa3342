package viewport

import "github.com/jakecoffman/cp"

// PointerTracker turns raw cursor readings into a pointer sample that stays
// absent until the cursor first moves. Hosts report the origin before any
// movement, and that must not be mistaken for a real position.
type PointerTracker struct {
	initial cp.Vector
	seeded  bool
	present bool
	pos     cp.Vector
}

// Observe feeds the latest raw reading in surface coordinates.
func (p *PointerTracker) Observe(x, y float64) {
	v := cp.Vector{X: x, Y: y}
	if !p.seeded {
		p.initial = v
		p.seeded = true
		return
	}
	if !p.present && v == p.initial {
		return
	}
	p.present = true
	p.pos = v
}

// Pointer returns the latest position, or false while absent.
func (p *PointerTracker) Pointer() (cp.Vector, bool) {
	if p == nil || !p.present {
		return cp.Vector{}, false
	}
	return p.pos, true
}
