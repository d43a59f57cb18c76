package assemble

import (
	"fmt"

	"github.com/san-kum/moltopo/internal/config"
)

// Registry resolves the molecule description a command should build: a
// YAML file when a path is given, otherwise a named preset.
type Registry struct {
	presets map[string]func() *config.Config
	load    func(path string) (*config.Config, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		presets: make(map[string]func() *config.Config),
		load:    config.Load,
	}
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		r.presets[name] = func() *config.Config { return cfg }
	}
	return r
}

func (r *Registry) Resolve(preset, path string) (*config.Config, error) {
	if path != "" {
		cfg, err := r.load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	if preset == "" {
		preset = config.DefaultPreset
	}
	fn, ok := r.presets[preset]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s", preset)
	}
	return fn(), nil
}

func (r *Registry) ListPresets() []string {
	return config.ListPresets()
}
