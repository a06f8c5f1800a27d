package config

import "sort"

// Presets holds named overrides applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"quasar": func(c *Config) {
		// defaults: 100k particles around (400, 300)
	},
	"small": func(c *Config) {
		c.Count = 2000
	},
	"tight": func(c *Config) {
		c.Count = 20000
		c.Jitter = 60
		c.Spin = 0.1
	},
	"wide": func(c *Config) {
		c.Count = 50000
		c.Jitter = 250
		c.Spin = 0.35
		c.Mass = 400
	},
	"collapse": func(c *Config) {
		c.Count = 20000
		c.Spin = 0
	},
	"original": func(c *Config) {
		c.Dt = 0.016
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
