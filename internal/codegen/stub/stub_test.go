package stub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restgen/internal/codegen"
)

func TestStubTemplateRendersFormattedFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "store_stub.go")

	data := struct {
		Package   string
		Interface string
		Type      string
		Imports   []string
		Methods   []string
	}{
		Package:   "store",
		Interface: "Store",
		Type:      "StoreStub",
		Imports:   []string{`"context"`},
		Methods: []string{
			"func (StoreStub) Get(ctx context.Context, id string) (string, error) {\npanic(\"restgen: Get not implemented\")\n}\n",
		},
	}
	gen := codegen.NewTemplateGenerator(nil)
	require.NoError(t, gen.GenerateFile(out, stubTemplate, data))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	src := string(got)
	assert.Contains(t, src, "// Code generated by restgen. DO NOT EDIT.")
	assert.Contains(t, src, "package store")
	assert.Contains(t, src, "type StoreStub struct{}")
	assert.Contains(t, src, "var _ Store = StoreStub{}")
	assert.Contains(t, src, "func (StoreStub) Get(ctx context.Context, id string) (string, error) {")
	// format.Source indents the panic body.
	assert.Contains(t, src, "\tpanic(\"restgen: Get not implemented\")")
}

func TestStubTemplateOmitsEmptyImportBlock(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pinger_stub.go")

	data := struct {
		Package   string
		Interface string
		Type      string
		Imports   []string
		Methods   []string
	}{
		Package:   "api",
		Interface: "Pinger",
		Type:      "PingerStub",
		Methods: []string{
			"func (PingerStub) Ping() error {\npanic(\"restgen: Ping not implemented\")\n}\n",
		},
	}
	gen := codegen.NewTemplateGenerator(nil)
	require.NoError(t, gen.GenerateFile(out, stubTemplate, data))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(got), "import")
}
