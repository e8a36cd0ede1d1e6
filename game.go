package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/config"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/entity"
	"github.com/milk9111/hookshot/ecs/system"
	"github.com/milk9111/hookshot/levels"
	"github.com/milk9111/hookshot/prefabs"
	"github.com/rs/zerolog/log"
)

type scene int

const (
	sceneMenu scene = iota
	sceneLevel
)

const maxFixedStepsPerFrame = 8

type Game struct {
	cfg   config.Config
	scene scene

	menu      *ebitenui.UI
	playLevel bool
	quit      bool

	world   *ecs.World
	frame   *ecs.Scheduler
	fixed   *ecs.Scheduler
	stepper *ecs.FixedStepper

	physics *system.PhysicsSystem
	chasers *system.ChaserMoveSystem
	camera  *system.CameraSystem
	render  *system.RenderSystem

	watcher *prefabs.Watcher
}

func NewGame(cfg config.Config) (*Game, error) {
	frameDT := 1.0 / float64(common.TPS)
	fixedDT := cfg.FixedStep()

	g := &Game{
		cfg:     cfg,
		stepper: ecs.NewFixedStepper(fixedDT, maxFixedStepsPerFrame),
		physics: system.NewPhysicsSystem(fixedDT),
		chasers: system.NewChaserMoveSystem(),
		camera:  system.NewCameraSystem(common.BaseWidth, common.BaseHeight),
		render:  system.NewRenderSystem(cfg.Debug),
	}

	g.frame = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewWallSensorSystem(g.physics),
		system.NewChaserSenseSystem(),
		system.NewGrappleSystem(g.physics, entity.NewGrappleAnchor, frameDT),
		system.NewPlayerControllerSystem(frameDT),
		system.NewAnimationSystem(frameDT),
		g.camera,
	)
	g.fixed = ecs.NewScheduler(
		system.NewPlayerMotionSystem(fixedDT),
		g.chasers,
		g.physics,
		system.NewGravityZoneSystem(),
		system.NewRopeSystem(fixedDT),
	)

	g.menu = NewMenuUI(g)

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Warn().Err(err).Msg("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	if cfg.SkipMenu {
		if err := g.loadLevel(cfg.Level); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadLevel(name string) error {
	lvl, err := levels.LoadLevel(name)
	if err != nil {
		return fmt.Errorf("game: load level %q: %w", name, err)
	}

	world := ecs.NewWorld()
	g.physics.Reset()
	if err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return fmt.Errorf("game: build level %q: %w", name, err)
	}
	g.world = world
	g.stepper = ecs.NewFixedStepper(g.cfg.FixedStep(), maxFixedStepsPerFrame)
	g.camera.SnapCamera(world)
	g.scene = sceneLevel
	return nil
}

func (g *Game) Update() (err error) {
	defer func() {
		if r := recover(); r != nil {
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("level", g.cfg.Level)
			})
			hub.Recover(r)
			hub.Flush(2 * time.Second)
			panic(r)
		}
	}()

	switch g.scene {
	case sceneMenu:
		g.menu.Update()
		if g.quit {
			return ebiten.Termination
		}
		if g.playLevel {
			g.playLevel = false
			if err := g.loadLevel(g.cfg.Level); err != nil {
				log.Error().Err(err).Msg("failed to start level")
			}
		}
		return nil
	case sceneLevel:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.scene = sceneMenu
			g.world = nil
			g.physics.Reset()
			return nil
		}
		g.pollWatcher()
		g.frame.Update(g.world)
		for n := g.stepper.Advance(1.0 / float64(common.TPS)); n > 0; n-- {
			g.fixed.Update(g.world)
		}
	}
	return nil
}

// pollWatcher applies prefab edits picked up since the last frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil || g.world == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Warn().Err(err).Msg("prefab watcher")
	default:
	}
	for _, name := range g.watcher.Poll() {
		switch {
		case name == "player.yaml":
			n, err := entity.ReloadPlayerTuning(g.world)
			if err != nil {
				log.Warn().Err(err).Msg("player tuning reload failed")
				continue
			}
			log.Info().Int("players", n).Msg("player tuning reloaded")
		case strings.HasPrefix(name, "scripts/"):
			g.chasers.InvalidateScripts()
			log.Info().Str("script", name).Msg("scripts reloaded")
		default:
			log.Debug().Str("prefab", name).Msg("prefab changed; applies to new spawns")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.scene {
	case sceneMenu:
		g.menu.Draw(screen)
	case sceneLevel:
		g.render.Draw(g.world, screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
