package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment override keys
const (
	EnvTickRate       = "TETHER_TICK_RATE"
	EnvGravityEnabled = "TETHER_GRAVITY_ENABLED"
	EnvIterations     = "TETHER_ITERATIONS"
	EnvListenAddr     = "TETHER_LISTEN_ADDR"
	EnvDebug          = "TETHER_DEBUG"
	EnvMute           = "TETHER_MUTE"
	EnvScene          = "TETHER_SCENE"
)

// Env resolves override keys; process environment wins over file values
type Env struct {
	file map[string]string
}

// ReadEnv loads key/value pairs from a dotenv file without touching the process environment
// Empty or missing path yields an Env backed by the process environment only
func ReadEnv(path string) (Env, error) {
	if path == "" {
		return Env{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Env{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return Env{}, errors.Wrapf(err, "read env file %s", path)
	}
	return Env{file: values}, nil
}

// Lookup returns the value for key from the process environment, then the file
func (e Env) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, true
	}
	v, ok := e.file[key]
	return v, ok && v != ""
}

// ApplyEnv overrides configuration fields from env
func (c *Config) ApplyEnv(env Env) error {
	if v, ok := env.Lookup(EnvTickRate); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", EnvTickRate, v, err)
		}
		c.Simulation.TickRate = n
	}
	if v, ok := env.Lookup(EnvIterations); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", EnvIterations, v, err)
		}
		c.Simulation.Iterations = n
	}
	if v, ok := env.Lookup(EnvGravityEnabled); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", EnvGravityEnabled, v, err)
		}
		c.Simulation.GravityEnabled = b
	}
	if v, ok := env.Lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", EnvDebug, v, err)
		}
		c.Log.Debug = b
	}
	if v, ok := env.Lookup(EnvMute); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", EnvMute, v, err)
		}
		c.Audio.Enabled = !b
	}
	if v, ok := env.Lookup(EnvListenAddr); ok {
		c.Server.ListenAddr = v
	}
	if v, ok := env.Lookup(EnvScene); ok {
		c.Scene = v
	}
	return nil
}
