package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tether/audio"
	"github.com/lixenwraith/tether/config"
	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/input"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/render"
	"github.com/lixenwraith/tether/scene"
	"github.com/lixenwraith/tether/stream"
	"github.com/lixenwraith/tether/system"
)

var (
	configFlag = flag.String("config", "", "Path to TOML config file")
	envFlag    = flag.String("env", ".env", "Path to dotenv overrides")
	sceneFlag  = flag.String("scene", "", "Preset name or path to a .toml scene")
	debugFlag  = flag.Bool("debug", false, "Write logs to the log directory")
	muteFlag   = flag.Bool("mute", false, "Disable impact audio")
	serveFlag  = flag.String("serve", "", "Also serve the snapshot stream on this address")
	keysFlag   = flag.String("keys", "", "Path to TOML keymap overrides")
)

const (
	panCells = 4
	zoomStep = 1.25
)

// sandbox owns the terminal, the simulation and its presenters
type sandbox struct {
	cfg    *config.Config
	screen tcell.Screen

	world      *engine.World
	systems    *system.Set
	scheduler  *engine.ClockScheduler
	updateDone <-chan struct{}

	renderer *render.TerminalRenderer
	keys     *input.KeyTable
	player   *audio.Player
	session  *stream.Session
	current  *scene.Scene

	rng    *rand.Rand
	floats int
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag, *envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *sceneFlag != "" {
		cfg.Scene = *sceneFlag
	}

	if logFile := setupLogging(cfg.Log.Dir, cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	keys, err := loadKeys(*keysFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid keymap: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Restore the terminal before any crash report
	core.SetCrashHook(screen.Fini)

	sb, err := newSandbox(cfg, screen, keys)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer sb.player.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *serveFlag != "" {
		srv := sb.serve(ctx, *serveFlag)
		defer srv.Shutdown(context.Background())
	}

	sb.scheduler.Start()
	defer sb.scheduler.Stop()

	sb.run()
}

func newSandbox(cfg *config.Config, screen tcell.Screen, keys *input.KeyTable) (*sandbox, error) {
	world := engine.NewWorld()
	cfg.Simulation.ApplyTo(world.Resource.Simulation)

	pipeline := engine.NewPipeline(world)
	set := system.Register(pipeline, world)
	pipeline.Init()

	fixed := engine.ForPipeline(pipeline, cfg.Simulation.TickRate, cfg.Simulation.MaxStepsPerFrame)
	scheduler, updateDone := engine.NewClockScheduler(world, fixed, engine.NewPausableClock(), fixed.Interval())

	player := audio.NewPlayer(cfg.Audio.Enabled, cfg.Audio.Volume, cfg.Simulation.ImpactThreshold)
	if cfg.Audio.Enabled {
		if err := player.Initialize(); err != nil {
			// Non-fatal, the sandbox runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	scheduler.RegisterEventHandler(player)

	sb := &sandbox{
		cfg:        cfg,
		screen:     screen,
		world:      world,
		systems:    set,
		scheduler:  scheduler,
		updateDone: updateDone,
		renderer:   render.NewTerminalRenderer(screen, cfg.Render.Scale, [2]float64{cfg.Render.Center[0], cfg.Render.Center[1]}),
		keys:       keys,
		player:     player,
		session:    stream.NewSession(world, cfg.Simulation.SceneOptions()),
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}

	sb.session.OnLoad(pipeline.Init)

	sc, err := resolveScene(cfg.Scene)
	if err != nil {
		return nil, err
	}
	if err := sb.load(sc); err != nil {
		return nil, err
	}
	return sb, nil
}

// loadKeys merges an optional keymap file over the defaults
func loadKeys(path string) (*input.KeyTable, error) {
	base := input.DefaultKeyTable()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(base, override), nil
}

// resolveScene treats names ending in .toml as files, anything else as a preset
func resolveScene(name string) (*scene.Scene, error) {
	if strings.HasSuffix(name, ".toml") {
		return scene.Load(name)
	}
	return scene.Preset(name)
}

func (sb *sandbox) load(sc *scene.Scene) error {
	if err := sb.session.Load(sc); err != nil {
		return err
	}
	sb.current = sc
	sb.floats = 0
	log.Printf("loaded scene %s", sc.Name)
	return nil
}

// serve starts the snapshot stream alongside the terminal view
func (sb *sandbox) serve(ctx context.Context, addr string) *http.Server {
	hub := stream.NewHub()
	sb.scheduler.RegisterEventHandler(hub)

	srv := &http.Server{
		Addr:    addr,
		Handler: stream.NewRouter(sb.session, hub),
	}
	core.Go(func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("stream server: %v", err)
		}
	})
	core.Go(func() {
		hub.Run(ctx, sb.cfg.Server.BroadcastInterval(), sb.session.Snapshot)
	})
	core.Go(func() {
		<-ctx.Done()
		hub.Close()
	})
	log.Printf("stream server listening on %s", addr)
	return srv
}

func (sb *sandbox) run() {
	ticker := time.NewTicker(sb.cfg.Render.FrameInterval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	sb.draw()
	dirty := false
	for {
		select {
		case ev := <-eventChan:
			if !sb.handleInput(ev) {
				return
			}
			sb.draw()
			dirty = false

		case <-sb.updateDone:
			dirty = true

		case <-ticker.C:
			// Redraw only when a tick landed since the last frame
			if dirty {
				sb.draw()
				dirty = false
			}
		}
	}
}

func (sb *sandbox) draw() {
	hud := render.HUD{
		Scene:   sb.session.Scene(),
		Paused:  sb.scheduler.IsPaused(),
		Density: sb.systems.Buoyancy.Density(),
		Muted:   sb.player.IsMuted(),
	}
	sb.world.RunSafe(func() {
		sb.renderer.RenderFrame(sb.world, hud)
	})
}

func (sb *sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return sb.apply(sb.keys.Lookup(ev))

	case *tcell.EventResize:
		sb.screen.Sync()
		sb.renderer.UpdateDimensions()
	}
	return true
}

// apply executes one intent; returns false to quit
func (sb *sandbox) apply(in input.Intent) bool {
	proj := sb.renderer.Projection()
	pan := panCells / proj.Scale

	switch in {
	case input.IntentQuit:
		return false
	case input.IntentTogglePause:
		sb.scheduler.TogglePause()
	case input.IntentStep:
		if sb.scheduler.IsPaused() {
			sb.scheduler.StepOnce()
		}
	case input.IntentToggleMute:
		sb.player.ToggleMute()
	case input.IntentReload:
		sb.reload(sb.current)
	case input.IntentNextScene:
		next, err := scene.Preset(scene.NextPreset(sb.session.Scene()))
		if err == nil {
			sb.reload(next)
		}
	case input.IntentSpawnFloat:
		sb.spawnFloat()
	case input.IntentDensityUp:
		sb.systems.Buoyancy.AdjustDensity(parameter.LiquidDensityStep)
	case input.IntentDensityDown:
		sb.systems.Buoyancy.AdjustDensity(-parameter.LiquidDensityStep)
	case input.IntentPanLeft:
		proj.Pan(-pan, 0)
	case input.IntentPanRight:
		proj.Pan(pan, 0)
	case input.IntentPanUp:
		proj.Pan(0, pan)
	case input.IntentPanDown:
		proj.Pan(0, -pan)
	case input.IntentZoomIn:
		proj.Zoom(zoomStep)
	case input.IntentZoomOut:
		proj.Zoom(1 / zoomStep)
	}
	return true
}

func (sb *sandbox) reload(sc *scene.Scene) {
	if err := sb.load(sc); err != nil {
		log.Printf("reload %s: %v", sc.Name, err)
	}
}

// spawnFloat drops a buoyant particle at a random spot above the water line
func (sb *sandbox) spawnFloat() {
	sb.floats++
	name := fmt.Sprintf("float%d", sb.floats)
	pos := [3]float64{-15 + 30*sb.rng.Float64(), 20 + 10*sb.rng.Float64(), 0}

	density := 100.0
	sb.world.RunSafe(func() {
		if sb.world.Component.Buoyancy.Count() > 0 {
			density = sb.systems.Buoyancy.Density()
		}
	})

	sc := &scene.Scene{
		Name:      name,
		Particles: []scene.Particle{{Name: name, Position: pos, Mass: 1}},
		Buoyancy: []scene.Buoyancy{{
			Target:      name,
			Position:    pos,
			MaxDepth:    10,
			Volume:      20,
			WaterHeight: 30,
			Density:     density,
		}},
	}

	var err error
	sb.world.RunSafe(func() {
		_, err = scene.Build(sb.world, sc, sb.cfg.Simulation.SceneOptions())
	})
	if err != nil {
		log.Printf("spawn %s: %v", name, err)
	}
}
