// Package config reads restgen.yaml, the project-level description of what
// to generate. Each target names an interface in a package and the
// generators to run for it; the defaults block supplies options a target
// does not set itself.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/copystructure"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up when none is given.
const DefaultFileName = "restgen.yaml"

// Options are per-target generation settings.
type Options struct {
	// Output is the directory generated files are written to, relative to
	// the config file. Empty means the target package directory.
	Output string `yaml:"output"`
	// Package overrides the package name of generated files. The key is
	// out_package so it cannot collide with the target's package pattern
	// when Options is inlined into Target.
	Package string `yaml:"out_package"`
	// ClientName overrides the generated client type name.
	ClientName string `yaml:"client_name"`
	// StubName overrides the generated stub type name.
	StubName string `yaml:"stub_name"`
}

// Target selects one interface to generate code for.
type Target struct {
	// Package is the package pattern the interface lives in, e.g.
	// "./internal/store".
	Package string `yaml:"package"`
	// Interface is the interface type name.
	Interface string `yaml:"interface"`
	// Generators lists the subtools to run: client, server, stub.
	Generators []string `yaml:"generators"`

	Options `yaml:",inline"`
}

// Config is the parsed restgen.yaml.
type Config struct {
	Defaults Options  `yaml:"defaults"`
	Targets  []Target `yaml:"targets"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, t := range cfg.Targets {
		if t.Package == "" {
			return nil, fmt.Errorf("%s: target %d: package is required", path, i)
		}
		if t.Interface == "" {
			return nil, fmt.Errorf("%s: target %d: interface is required", path, i)
		}
		if len(t.Generators) == 0 {
			return nil, fmt.Errorf("%s: target %d: generators is required", path, i)
		}
	}
	return &cfg, nil
}

// Resolve returns the effective options for a target: a deep copy of the
// defaults with the target's explicit settings overlaid.
func (c *Config) Resolve(t Target) (Options, error) {
	copied, err := copystructure.Copy(c.Defaults)
	if err != nil {
		return Options{}, fmt.Errorf("copying defaults: %w", err)
	}
	opts := copied.(Options)
	if t.Output != "" {
		opts.Output = t.Output
	}
	if t.Options.Package != "" {
		opts.Package = t.Options.Package
	}
	if t.ClientName != "" {
		opts.ClientName = t.ClientName
	}
	if t.StubName != "" {
		opts.StubName = t.StubName
	}
	return opts, nil
}
