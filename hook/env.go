package hook

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the part of the configuration Cordova hands to hooks through the
// process environment. It is read once, at startup.
type Env struct {
	Platform string `env:"CORDOVA_PLATFORMS"`
	WorkDir  string `env:"PWD"`
	Filter   string `env:"ICONGEN_FILTER"`
	Jobs     int    `env:"ICONGEN_JOBS"`
}

func ParseEnv() (Env, error) {
	e := Env{}
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
