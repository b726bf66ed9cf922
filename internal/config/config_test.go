package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
defaults:
  output: gen
targets:
  - package: ./internal/store
    interface: Store
    generators: [client, server]
  - package: ./internal/billing
    interface: Invoicer
    generators: [stub]
    stub_name: FakeInvoicer
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gen", cfg.Defaults.Output)
	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "./internal/store", cfg.Targets[0].Package)
	assert.Equal(t, []string{"client", "server"}, cfg.Targets[0].Generators)
	assert.Equal(t, "FakeInvoicer", cfg.Targets[1].StubName)
}

// A target mixes its own keys with every inlined option; decoding must not
// trip over the inline embedding.
func TestLoadTargetWithInlineOptions(t *testing.T) {
	path := writeConfig(t, `
defaults:
  out_package: genpkg
targets:
  - package: ./internal/store
    interface: Store
    generators: [client]
    output: gen
    out_package: storegen
    client_name: StoreAPI
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "genpkg", cfg.Defaults.Package)
	require.Len(t, cfg.Targets, 1)
	target := cfg.Targets[0]
	assert.Equal(t, "./internal/store", target.Package)
	assert.Equal(t, "gen", target.Output)
	assert.Equal(t, "storegen", target.Options.Package)
	assert.Equal(t, "StoreAPI", target.ClientName)

	opts, err := cfg.Resolve(target)
	require.NoError(t, err)
	assert.Equal(t, "storegen", opts.Package)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing package",
			content: "targets:\n  - interface: Store\n    generators: [client]\n",
			wantErr: "target 0: package is required",
		},
		{
			name:    "missing interface",
			content: "targets:\n  - package: ./store\n    generators: [client]\n",
			wantErr: "target 0: interface is required",
		},
		{
			name:    "missing generators",
			content: "targets:\n  - package: ./store\n    interface: Store\n",
			wantErr: "target 0: generators is required",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "targets: [not: {valid"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestResolveOverlaysDefaults(t *testing.T) {
	cfg := &Config{
		Defaults: Options{Output: "gen", Package: "genpkg"},
	}

	// Target sets nothing: defaults come through.
	opts, err := cfg.Resolve(Target{})
	require.NoError(t, err)
	assert.Equal(t, "gen", opts.Output)
	assert.Equal(t, "genpkg", opts.Package)

	// Explicit target settings win.
	opts, err = cfg.Resolve(Target{Options: Options{Output: "other", ClientName: "API"}})
	require.NoError(t, err)
	assert.Equal(t, "other", opts.Output)
	assert.Equal(t, "genpkg", opts.Package)
	assert.Equal(t, "API", opts.ClientName)

	// The defaults themselves are never mutated.
	assert.Equal(t, "gen", cfg.Defaults.Output)
}
