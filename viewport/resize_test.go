package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type size struct{ w, h int }

type recordingSurface struct {
	calls []size
}

func (s *recordingSurface) SetSize(width, height int) {
	s.calls = append(s.calls, size{width, height})
}

func TestResizeBurstCollapsesToOneUpdate(t *testing.T) {
	surface := &recordingSurface{}
	r := NewResizeAdapter(surface, DefaultResizeDelay, nil)
	start := time.Unix(0, 0)

	// Ten events 50ms apart, then quiet.
	var last time.Time
	for i := 0; i < 10; i++ {
		last = start.Add(time.Duration(i) * 50 * time.Millisecond)
		r.OnResize(800+i*10, 600+i*5, last)
		r.Poll(last)
	}
	require.Empty(t, surface.calls)
	assert.True(t, r.Pending())

	assert.False(t, r.Poll(last.Add(DefaultResizeDelay-time.Millisecond)))
	assert.True(t, r.Poll(last.Add(DefaultResizeDelay)))
	assert.False(t, r.Poll(last.Add(time.Second)))

	require.Len(t, surface.calls, 1)
	assert.Equal(t, size{890, 645}, surface.calls[0])
	assert.False(t, r.Pending())
}

func TestResizeSeparateBursts(t *testing.T) {
	surface := &recordingSurface{}
	r := NewResizeAdapter(surface, 100*time.Millisecond, nil)
	now := time.Unix(0, 0)

	r.OnResize(640, 480, now)
	now = now.Add(150 * time.Millisecond)
	r.Poll(now)

	r.OnResize(1024, 768, now)
	now = now.Add(150 * time.Millisecond)
	r.Poll(now)

	assert.Equal(t, []size{{640, 480}, {1024, 768}}, surface.calls)
}

func TestResizeIgnoresEmptyViewport(t *testing.T) {
	surface := &recordingSurface{}
	r := NewResizeAdapter(surface, 0, nil)
	now := time.Unix(0, 0)

	r.OnResize(0, 600, now)
	r.OnResize(800, -1, now)
	assert.False(t, r.Pending())
	assert.False(t, r.Poll(now.Add(time.Second)))
	assert.Empty(t, surface.calls)
}

func TestResizeDetach(t *testing.T) {
	surface := &recordingSurface{}
	r := NewResizeAdapter(surface, DefaultResizeDelay, nil)
	now := time.Unix(0, 0)

	r.OnResize(800, 600, now)
	r.Detach()
	assert.False(t, r.Poll(now.Add(time.Second)))

	r.OnResize(1024, 768, now)
	assert.False(t, r.Pending())
	assert.False(t, r.Poll(now.Add(time.Second)))
	assert.Empty(t, surface.calls)
}

func TestResizeWithoutSurface(t *testing.T) {
	r := NewResizeAdapter(nil, DefaultResizeDelay, nil)
	now := time.Unix(0, 0)
	r.OnResize(800, 600, now)
	assert.False(t, r.Poll(now.Add(time.Second)))
	assert.False(t, r.Pending())
}
