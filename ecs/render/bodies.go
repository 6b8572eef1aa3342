package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/attractors/common"
	"github.com/milk9111/attractors/ecs"
	"github.com/milk9111/attractors/ecs/component"
)

// Background is the page color behind the transparent scene.
var Background = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

// BodyRenderer draws every body with a Transform, Body and Style in entity
// order, so the attractor created first sits underneath its group members.
type BodyRenderer struct {
	path  vector.Path
	verts []cp.Vector
}

func NewBodyRenderer() *BodyRenderer {
	return &BodyRenderer{}
}

func (r *BodyRenderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	for _, e := range ecs.Query(w, component.TransformComponent.Kind(), component.BodyComponent.Kind(), component.StyleComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		b, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		s, _ := ecs.Get(w, e, component.StyleComponent.Kind())

		if b.Kind.IsCircle() {
			r.drawCircle(screen, t, b, s)
			continue
		}
		r.drawPolygon(screen, t, b, s)
	}
}

func (r *BodyRenderer) drawCircle(screen *ebiten.Image, t *component.Transform, b *component.Body, s *component.Style) {
	cx, cy, radius := float32(t.X), float32(t.Y), float32(b.Radius)
	if s.Fill.A > 0 {
		vector.FillCircle(screen, cx, cy, radius, s.Fill, true)
	}
	if s.StrokeWidth > 0 && s.Stroke.A > 0 {
		vector.StrokeCircle(screen, cx, cy, radius, float32(s.StrokeWidth), s.Stroke, true)
	}
}

func (r *BodyRenderer) drawPolygon(screen *ebiten.Image, t *component.Transform, b *component.Body, s *component.Style) {
	r.verts = common.RegularPolygon(b.Sides, b.Size)
	if len(r.verts) == 0 {
		return
	}

	sin, cos := math.Sincos(t.Rotation)
	r.path = vector.Path{}
	for i, v := range r.verts {
		x := float32(t.X + v.X*cos - v.Y*sin)
		y := float32(t.Y + v.X*sin + v.Y*cos)
		if i == 0 {
			r.path.MoveTo(x, y)
			continue
		}
		r.path.LineTo(x, y)
	}
	r.path.Close()

	if s.Fill.A > 0 {
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(s.Fill)
		vector.FillPath(screen, &r.path, nil, op)
	}
	if s.StrokeWidth > 0 && s.Stroke.A > 0 {
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(s.Stroke)
		vector.StrokePath(screen, &r.path, &vector.StrokeOptions{
			Width:    float32(s.StrokeWidth),
			LineJoin: vector.LineJoinMiter,
		}, op)
	}
}
