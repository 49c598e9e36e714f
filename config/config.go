package config

import (
	"bytes"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/engine"
	"github.com/lixenwraith/tether/parameter"
	"github.com/lixenwraith/tether/scene"
)

// ErrInvalidConfig is the cause of every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full runtime configuration, loaded from TOML then overridden by environment
type Config struct {
	Scene      string           `toml:"scene"`
	Simulation SimulationConfig `toml:"simulation"`
	Render     RenderConfig     `toml:"render"`
	Server     ServerConfig     `toml:"server"`
	Audio      AudioConfig      `toml:"audio"`
	Log        LogConfig        `toml:"log"`
}

// SimulationConfig mirrors engine.SimulationResource plus tick scheduling
type SimulationConfig struct {
	TickRate           int       `toml:"tick_rate"`
	MaxStepsPerFrame   int       `toml:"max_steps_per_frame"`
	Gravity            []float64 `toml:"gravity"`
	GravityEnabled     bool      `toml:"gravity_enabled"`
	Damping            float64   `toml:"damping"`
	Iterations         int       `toml:"iterations"`
	VelocityEpsilon    float64   `toml:"velocity_epsilon"`
	PenetrationEpsilon float64   `toml:"penetration_epsilon"`
	SphereRestitution  float64   `toml:"sphere_restitution"`
	CableRestitution   float64   `toml:"cable_restitution"`
	ImpactThreshold    float64   `toml:"impact_threshold"`
}

// RenderConfig controls the terminal view
type RenderConfig struct {
	FrameRate int       `toml:"frame_rate"`
	Scale     float64   `toml:"scale"`  // Cells per world unit horizontally
	Center    []float64 `toml:"center"` // World XY at screen centre
}

// ServerConfig controls the snapshot stream
type ServerConfig struct {
	ListenAddr    string `toml:"listen_addr"`
	BroadcastRate int    `toml:"broadcast_rate"` // Snapshots per second
}

// AudioConfig controls the impact cue
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // Linear gain in [0, 1]
}

// LogConfig controls log routing
type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Scene: "chain",
		Simulation: SimulationConfig{
			TickRate:           parameter.TickRate,
			MaxStepsPerFrame:   parameter.MaxStepsPerFrame,
			Gravity:            []float64{0, -parameter.GravityFloat, 0},
			GravityEnabled:     true,
			Damping:            parameter.DefaultDamping,
			Iterations:         parameter.ResolverIterations,
			VelocityEpsilon:    parameter.VelocityEpsilon,
			PenetrationEpsilon: parameter.PenetrationEpsilon,
			SphereRestitution:  parameter.SphereRestitution,
			CableRestitution:   parameter.CableRestitution,
			ImpactThreshold:    parameter.ImpactEventThreshold,
		},
		Render: RenderConfig{
			FrameRate: int(time.Second / parameter.FrameUpdateInterval),
			Scale:     2,
			Center:    []float64{0, 0},
		},
		Server: ServerConfig{
			ListenAddr:    ":8080",
			BroadcastRate: int(time.Second / parameter.BroadcastInterval),
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Log: LogConfig{
			Debug: false,
			Dir:   "logs",
		},
	}
}

// Load reads path (optional), applies envFile and process environment overrides, then validates
// An empty path uses defaults; a missing envFile is ignored
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := cfg.decode(data); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	env, err := ReadEnv(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return errors.Wrap(err, "decode toml")
	}
	return nil
}

// Marshal encodes the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "encode toml")
	}
	return data, nil
}

// Validate checks ranges; every failure has ErrInvalidConfig as its cause
func (c *Config) Validate() error {
	s := c.Simulation
	switch {
	case s.TickRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "simulation.tick_rate %d must be positive", s.TickRate)
	case s.MaxStepsPerFrame <= 0:
		return errors.Wrapf(ErrInvalidConfig, "simulation.max_steps_per_frame %d must be positive", s.MaxStepsPerFrame)
	case len(s.Gravity) != 3:
		return errors.Wrapf(ErrInvalidConfig, "simulation.gravity needs 3 components, got %d", len(s.Gravity))
	case !(s.Damping > 0 && s.Damping <= 1):
		return errors.Wrapf(ErrInvalidConfig, "simulation.damping %g outside (0, 1]", s.Damping)
	case s.Iterations < 0:
		return errors.Wrapf(ErrInvalidConfig, "simulation.iterations %d must be non-negative", s.Iterations)
	case s.VelocityEpsilon < 0 || s.PenetrationEpsilon < 0:
		return errors.Wrap(ErrInvalidConfig, "simulation epsilons must be non-negative")
	case s.SphereRestitution < 0 || s.SphereRestitution > 1:
		return errors.Wrapf(ErrInvalidConfig, "simulation.sphere_restitution %g outside [0, 1]", s.SphereRestitution)
	case s.CableRestitution < 0 || s.CableRestitution > 1:
		return errors.Wrapf(ErrInvalidConfig, "simulation.cable_restitution %g outside [0, 1]", s.CableRestitution)
	case s.ImpactThreshold < 0:
		return errors.Wrapf(ErrInvalidConfig, "simulation.impact_threshold %g must be non-negative", s.ImpactThreshold)
	}

	r := c.Render
	switch {
	case r.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "render.frame_rate %d must be positive", r.FrameRate)
	case r.Scale <= 0:
		return errors.Wrapf(ErrInvalidConfig, "render.scale %g must be positive", r.Scale)
	case len(r.Center) != 2:
		return errors.Wrapf(ErrInvalidConfig, "render.center needs 2 components, got %d", len(r.Center))
	}

	if c.Server.BroadcastRate <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "server.broadcast_rate %d must be positive", c.Server.BroadcastRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Wrapf(ErrInvalidConfig, "audio.volume %g outside [0, 1]", c.Audio.Volume)
	}
	return nil
}

// GravityVec returns the configured gravity as a vector
func (s SimulationConfig) GravityVec() mgl64.Vec3 {
	var g mgl64.Vec3
	copy(g[:], s.Gravity)
	return g
}

// ApplyTo copies simulation settings into the world resource
func (s SimulationConfig) ApplyTo(sim *engine.SimulationResource) {
	sim.Gravity = s.GravityVec()
	sim.GravityEnabled = s.GravityEnabled
	sim.Iterations = s.Iterations
	sim.VelocityEpsilon = s.VelocityEpsilon
	sim.PenetrationEpsilon = s.PenetrationEpsilon
	sim.SphereRestitution = s.SphereRestitution
	sim.ImpactThreshold = s.ImpactThreshold
}

// FrameInterval returns the presentation frame period
func (r RenderConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FrameRate)
}

// BroadcastInterval returns the snapshot period
func (s ServerConfig) BroadcastInterval() time.Duration {
	return time.Second / time.Duration(s.BroadcastRate)
}

// SceneOptions returns the defaults scenes fall back to
func (s SimulationConfig) SceneOptions() scene.Options {
	return scene.Options{
		Damping:          s.Damping,
		CableRestitution: s.CableRestitution,
	}
}
