package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/attractors/config"
	"github.com/milk9111/attractors/logging"
	"github.com/milk9111/attractors/prefabs"
	"github.com/milk9111/attractors/scene"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "attractors",
		Short:        "Bodies drawn toward an attractor that follows the pointer",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default ./attractors.yaml)")
	flags.Int("bodies", scene.DefaultBodyCount, "number of spawn groups")
	flags.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	flags.String("scene", "", "scene spec file (default prefabs/scene.yaml)")
	flags.Bool("watch", false, "reload the scene when its spec file changes")
	flags.String("log-level", "info", "log level")
	flags.BoolP("base-monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")

	for key, name := range map[string]string{
		"scene.body_count": "bodies",
		"scene.seed":       "seed",
		"scene.file":       "scene",
		"scene.watch":      "watch",
		"logger.level":     "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		if base, _ := cmd.Flags().GetBool("base-monitor"); base {
			ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
		}
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.NewStdout(cfg.Logger)
	defer logging.Sync(logger)
	zap.ReplaceGlobals(logger)

	spec, err := prefabs.LoadSceneSpec(cfg.Scene.File)
	if err != nil {
		logger.Error("load scene spec", zap.Error(err))
		return err
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if width == 0 || height == 0 {
		width, height = ebiten.Monitor().Size()
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowClosingHandled(true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)

	reloads := make(chan string, 1)
	if cfg.Scene.Watch {
		if err := startWatcher(ctx, group, cfg.Scene.File, reloads, logger.Named("prefabs")); err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		}
	}

	game, err := NewGame(cfg, spec, width, height, reloads, logger)
	if err != nil {
		cancel()
		_ = group.Wait()
		return fmt.Errorf("start scene: %w", err)
	}

	runErr := ebiten.RunGame(game)
	cancel()
	if err := group.Wait(); err != nil {
		logger.Warn("watcher stopped", zap.Error(err))
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		logger.Error("game loop", zap.Error(runErr))
		return runErr
	}
	logger.Info("bye")
	return nil
}

// startWatcher forwards spec file changes to reloads until ctx is done. A
// reload already queued absorbs newer ones.
func startWatcher(ctx context.Context, group *errgroup.Group, file string, reloads chan<- string, logger *zap.Logger) error {
	dir := prefabs.DiskDir
	if file != "" {
		dir = filepath.Dir(file)
	}
	watcher, err := prefabs.NewWatcher(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching scene specs", zap.String("dir", dir))

	group.Go(func() error {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return nil
			case name, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				select {
				case reloads <- name:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", zap.Error(err))
			}
		}
	})
	return nil
}
