package manifest

import (
	"errors"
	"fmt"
	"regexp"
)

// placeholders are fragments in a root template conforming to `{name}`

var rePlaceholder = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

const (
	VarAppName  = "appName"
	VarPlatform = "platform"
)

var ErrUnknownPlaceholder = errors.New("unknown placeholder")

type replaceCallback = func(name string) (string, error)

func ForAllPlaceholders(s string, handler func(name string) error) error {
	for _, v := range rePlaceholder.FindAllStringSubmatchIndex(s, -1) {
		if err := handler(s[v[2]:v[3]]); err != nil {
			return fmt.Errorf("[offset %d] invalid placeholder: %w", v[0], err)
		}
	}
	return nil
}

func ReplacePlaceholders(s string, handler replaceCallback) (string, error) {
	var firstErr error
	out := rePlaceholder.ReplaceAllStringFunc(s, func(v string) string {
		if firstErr != nil {
			return v
		}
		r, err := handler(v[1 : len(v)-1])
		if err != nil {
			firstErr = err
			return v
		}
		return r
	})
	return out, firstErr
}

// ResolveRoot substitutes vars into the root template.
func (p *PlatformSpec) ResolveRoot(vars map[string]string) (string, error) {
	return ReplacePlaceholders(p.Root, func(name string) (string, error) {
		r, ok := vars[name]
		if !ok {
			return "", fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, name)
		}
		return r, nil
	})
}

// Placeholders lists the placeholder names used by the root template.
func (p *PlatformSpec) Placeholders() []string {
	ret := []string{}
	ForAllPlaceholders(p.Root, func(name string) error {
		ret = append(ret, name)
		return nil
	})
	return ret
}
