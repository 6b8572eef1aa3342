package viewport

import (
	"time"

	"go.uber.org/zap"
)

// DefaultResizeDelay is the quiet period that ends a resize burst.
const DefaultResizeDelay = 250 * time.Millisecond

// Surface is the drawing surface whose dimensions follow the viewport.
type Surface interface {
	SetSize(width, height int)
}

type resizeState uint8

const (
	resizeIdle resizeState = iota
	resizePending
)

func (s resizeState) String() string {
	if s == resizePending {
		return "pending"
	}
	return "idle"
}

// ResizeAdapter collapses a burst of resize events into one surface update,
// applied once no event has arrived for the delay. It is polled from the
// game loop, so it needs no timer goroutine and no locking.
//
// States: idle -> OnResize -> pending(deadline); pending -> OnResize ->
// pending(new deadline); pending -> Poll past deadline -> apply -> idle.
type ResizeAdapter struct {
	surface Surface
	delay   time.Duration
	logger  *zap.Logger

	state    resizeState
	deadline time.Time
	width    int
	height   int
	detached bool
}

func NewResizeAdapter(surface Surface, delay time.Duration, logger *zap.Logger) *ResizeAdapter {
	if delay <= 0 {
		delay = DefaultResizeDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResizeAdapter{surface: surface, delay: delay, logger: logger}
}

// OnResize records the newest viewport size and restarts the quiet period.
// Non-positive sizes, as reported for minimised windows, are ignored.
func (r *ResizeAdapter) OnResize(width, height int, now time.Time) {
	if r == nil || r.detached {
		return
	}
	if width <= 0 || height <= 0 {
		r.logger.Debug("ignoring empty viewport", zap.Int("width", width), zap.Int("height", height))
		return
	}
	r.width = width
	r.height = height
	r.deadline = now.Add(r.delay)
	r.state = resizePending
}

// Poll applies the pending size if the quiet period has elapsed and reports
// whether it did.
func (r *ResizeAdapter) Poll(now time.Time) bool {
	if r == nil || r.detached || r.state != resizePending {
		return false
	}
	if now.Before(r.deadline) {
		return false
	}
	r.state = resizeIdle
	if r.surface == nil {
		r.logger.Debug("no surface attached, dropping resize")
		return false
	}
	r.surface.SetSize(r.width, r.height)
	r.logger.Debug("surface resized", zap.Int("width", r.width), zap.Int("height", r.height))
	return true
}

// Pending reports whether a resize is waiting for its quiet period.
func (r *ResizeAdapter) Pending() bool {
	return r != nil && !r.detached && r.state == resizePending
}

// Detach drops any pending resize; later calls are no-ops.
func (r *ResizeAdapter) Detach() {
	if r == nil {
		return
	}
	r.detached = true
	r.state = resizeIdle
}
