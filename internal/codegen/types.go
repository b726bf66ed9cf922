// Package codegen provides shared types and utilities for the restgen code
// generators.
package codegen

import (
	"restgen/internal/introspect"
)

// GeneratorConfig holds common configuration for generators.
type GeneratorConfig struct {
	InterfaceName string
	SourcePattern string // package pattern passed to the loader
	SourceDir     string // directory the loader is rooted at
	OutputDir     string // directory generated files are written to
	OutputPkg     string // package name for generated files; defaults to the source package
	Loader        *introspect.Loader
}

// Subtool defines the interface for code generation subtools.
type Subtool interface {
	Name() string
	Description() string
	Run(cfg GeneratorConfig) error
}
