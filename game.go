package main

import (
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/attractors/config"
	"github.com/milk9111/attractors/ecs"
	"github.com/milk9111/attractors/ecs/render"
	"github.com/milk9111/attractors/force"
	"github.com/milk9111/attractors/prefabs"
	"github.com/milk9111/attractors/scene"
	"github.com/milk9111/attractors/viewport"
	"go.uber.org/zap"
)

// Game hosts one scene at a time. Its logical screen is the drawing
// surface; the window's outer size reaches the scene only through the
// debounced resize adapter.
type Game struct {
	cfg    *config.Config
	logger *zap.Logger
	rng    *rand.Rand

	scene    *scene.Scene
	pointer  viewport.PointerTracker
	renderer *render.BodyRenderer
	reloads  <-chan string

	surfaceW, surfaceH int
	outsideW, outsideH int
}

func NewGame(cfg *config.Config, spec *prefabs.SceneSpec, width, height int, reloads <-chan string, logger *zap.Logger) (*Game, error) {
	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g := &Game{
		cfg:      cfg,
		logger:   logger,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		renderer: render.NewBodyRenderer(),
		reloads:  reloads,
		surfaceW: width,
		surfaceH: height,
		outsideW: width,
		outsideH: height,
	}
	s, err := g.newScene(spec)
	if err != nil {
		return nil, err
	}
	g.scene = s
	logger.Info("game ready", zap.Uint64("seed", seed), zap.Int("width", width), zap.Int("height", height))
	return g, nil
}

// newScene sizes the scene to the surface and hands it the window size, so
// a resize still settling when the old scene was replaced is not lost.
func (g *Game) newScene(spec *prefabs.SceneSpec) (*scene.Scene, error) {
	return scene.New(scene.Options{
		Width:          float64(g.surfaceW),
		Height:         float64(g.surfaceH),
		BodyCount:      g.cfg.Scene.BodyCount,
		StepMillis:     g.cfg.Physics.StepMillis,
		ViewportWidth:  g.outsideW,
		ViewportHeight: g.outsideH,
		Now:            time.Now(),
		Spec:           spec,
		Force:          force.Default,
		Rand:           g.rng,
		Pointer:        &g.pointer,
		Surface:        g,
		Logger:         g.logger.Named("scene"),
	})
}

// SetSize is called by the resize adapter once a resize burst settles.
func (g *Game) SetSize(width, height int) {
	g.surfaceW = width
	g.surfaceH = height
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.scene.Teardown()
		return ebiten.Termination
	}

	g.drainReloads()

	x, y := ebiten.CursorPosition()
	g.pointer.Observe(float64(x), float64(y))

	g.scene.Tick(time.Now())
	return nil
}

func (g *Game) drainReloads() {
	for {
		select {
		case name, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			g.reload(name)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	if g.cfg.Scene.File != "" && filepath.Base(name) != filepath.Base(g.cfg.Scene.File) {
		return
	}
	logger := g.logger.With(zap.String("file", name))

	spec, err := prefabs.LoadSceneSpec(g.cfg.Scene.File)
	if err != nil {
		logger.Warn("scene reload rejected", zap.Error(err))
		return
	}
	next, err := g.newScene(spec)
	if err != nil {
		logger.Warn("scene reload failed", zap.Error(err))
		return
	}
	g.scene.Teardown()
	g.scene = next
	logger.Info("scene reloaded", zap.Stringer("scene_id", next.ID()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	g.scene.Render(func(w *ecs.World) {
		g.renderer.Draw(w, screen)
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH {
		g.outsideW = outsideWidth
		g.outsideH = outsideHeight
		g.scene.OnResize(outsideWidth, outsideHeight, time.Now())
	}
	return g.surfaceW, g.surfaceH
}
