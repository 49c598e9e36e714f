package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/tether/config"
	"github.com/lixenwraith/tether/core"
	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/scene"
	"github.com/lixenwraith/tether/stream"
	"github.com/lixenwraith/tether/system"
)

var (
	configFlag  = flag.String("config", "", "Path to TOML config file")
	envFlag     = flag.String("env", ".env", "Path to dotenv overrides")
	sceneFlag   = flag.String("scene", "", "Preset to load on start")
	addrFlag    = flag.String("addr", "", "Listen address, overrides config")
	releaseFlag = flag.Bool("release", false, "Run gin in release mode")
)

const shutdownTimeout = 5 * time.Second

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load(*configFlag, *envFlag)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *sceneFlag != "" {
		cfg.Scene = *sceneFlag
	}
	if *addrFlag != "" {
		cfg.Server.ListenAddr = *addrFlag
	}
	if *releaseFlag {
		gin.SetMode(gin.ReleaseMode)
	}

	world := engine.NewWorld()
	cfg.Simulation.ApplyTo(world.Resource.Simulation)

	pipeline := engine.NewPipeline(world)
	system.Register(pipeline, world)
	pipeline.Init()

	fixed := engine.ForPipeline(pipeline, cfg.Simulation.TickRate, cfg.Simulation.MaxStepsPerFrame)
	scheduler, _ := engine.NewClockScheduler(world, fixed, engine.NewPausableClock(), fixed.Interval())

	hub := stream.NewHub()
	scheduler.RegisterEventHandler(hub)

	session := stream.NewSession(world, cfg.Simulation.SceneOptions())
	session.OnLoad(pipeline.Init)
	if err := session.LoadScene(cfg.Scene); err != nil {
		if errors.Is(err, scene.ErrUnknownPreset) {
			log.Fatalf("Unknown scene %q, available: %v", cfg.Scene, scene.PresetNames())
		}
		log.Fatalf("Failed to load scene: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start()
	defer scheduler.Stop()

	core.Go(func() {
		hub.Run(ctx, cfg.Server.BroadcastInterval(), session.Snapshot)
	})

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: stream.NewRouter(session, hub),
	}

	serveErr := make(chan error, 1)
	core.Go(func() {
		log.Printf("Starting tether server on %s with scene %s", cfg.Server.ListenAddr, cfg.Scene)
		serveErr <- srv.ListenAndServe()
	})

	select {
	case <-ctx.Done():
		log.Println("Shutting down")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server stopped: %v", err)
		}
	}

	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}
