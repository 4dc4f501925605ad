package hook

import (
	"context"
	"fmt"

	"github.com/adnsv/icongen/generator"
	"github.com/adnsv/icongen/manifest"
	"github.com/adnsv/icongen/project"
	"github.com/adnsv/icongen/raster"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Platform   string
	WorkDir    string
	ManifestFN string // bundled manifest when empty
	ConfigFN   string
	SourceFN   string
	Filter     raster.Filter
	Jobs       int
}

type State int

const (
	Start = State(iota)
	Skipped
	Running
	Done
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Skipped:
		return "skipped"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return "<invalid>"
	}
}

type Outcome struct {
	State   State
	Skipped bool
	Report  *generator.Report // nil unless generation ran
	GenErr  error             // generation-phase failure
}

func (o *Outcome) enter(s State) {
	log.Debug().Msgf("hook: %s -> %s", o.State, s)
	o.State = s
}

// Run executes the hook. The returned error covers the synchronous setup
// phase only (manifest, config.xml) and is fatal. Failures while generating
// icons are reported in Outcome.GenErr instead; the caller decides whether
// they affect the exit status.
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	out := &Outcome{State: Start}

	m, err := LoadManifest(cfg.ManifestFN)
	if err != nil {
		return out, err
	}

	spec, ok := m.Lookup(cfg.Platform)
	if !ok {
		log.Info().Msgf("no icons defined for platform '%s', skipping", cfg.Platform)
		out.Skipped = true
		out.enter(Skipped)
		out.enter(Done)
		return out, nil
	}

	out.enter(Running)
	name, err := project.LoadName(cfg.ConfigFN)
	if err != nil {
		return out, err
	}
	log.Info().Msgf("project name: %s", name)

	out.Report, out.GenErr = generate(ctx, cfg, spec, name)
	out.enter(Done)
	return out, nil
}

// LoadManifest loads fn, or the bundled manifest when fn is empty.
func LoadManifest(fn string) (manifest.Manifest, error) {
	if fn == "" {
		log.Debug().Msg("using bundled manifest")
		return manifest.Default(), nil
	}
	m, err := manifest.Load(fn)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return m, nil
}

func generate(ctx context.Context, cfg Config, spec *manifest.PlatformSpec, name string) (*generator.Report, error) {
	src, err := raster.Open(cfg.SourceFN, cfg.Filter)
	if err != nil {
		log.Error().Err(err).Msg("could not load source icon")
		return nil, fmt.Errorf("source icon: %w", err)
	}
	return generator.Generate(ctx, generator.Job{
		Platform:    cfg.Platform,
		Spec:        spec,
		ProjectName: name,
		WorkDir:     cfg.WorkDir,
		Source:      src,
		Jobs:        cfg.Jobs,
	})
}
