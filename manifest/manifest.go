package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed platforms.json
var defaultManifest []byte

// Manifest maps a platform identifier to the icon layout it requires.
type Manifest map[string]*PlatformSpec

type PlatformSpec struct {
	Root  string     `yaml:"root"`  // output root, may contain {appName}
	Icons []IconSpec `yaml:"icons"` // ordered
}

type IconSpec struct {
	File      string `yaml:"file"`
	Dimension int    `yaml:"dimension"`
}

// Default returns the manifest bundled with the binary.
func Default() Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("bundled platforms.json: %v", err))
	}
	return m
}

func Load(fn string) (Manifest, error) {
	log.Debug().Msgf("loading manifest from %s", fn)
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	m, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return m, nil
}

// Parse decodes a JSON (or YAML) manifest and validates every entry.
func Parse(buf []byte) (Manifest, error) {
	m := Manifest{}
	err := yaml.Unmarshal(buf, &m)
	if err != nil {
		return nil, err
	}
	for id, p := range m {
		if p == nil {
			return nil, fmt.Errorf("platform '%s' has no definition", id)
		}
		err = ForAllPlaceholders(p.Root, func(name string) error {
			if name != VarAppName && name != VarPlatform {
				return fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, name)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("platform '%s' root: %w", id, err)
		}
		for i, ic := range p.Icons {
			if err := ic.validate(); err != nil {
				return nil, fmt.Errorf("platform '%s', icon #%d: %w", id, i, err)
			}
		}
	}
	return m, nil
}

func (ic IconSpec) validate() error {
	if ic.File == "" {
		return fmt.Errorf("missing file")
	}
	if filepath.IsAbs(ic.File) {
		return fmt.Errorf("file '%s' must be a relative path", ic.File)
	}
	if ic.Dimension <= 0 {
		return fmt.Errorf("file '%s' has invalid dimension %d", ic.File, ic.Dimension)
	}
	return nil
}

// Lookup returns the spec for the given platform. A missing platform is not
// an error: not every platform needs icons.
func (m Manifest) Lookup(id string) (*PlatformSpec, bool) {
	p, ok := m[id]
	return p, ok && p != nil
}

func (m Manifest) Platforms() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
