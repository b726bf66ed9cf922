package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"restgen/internal/codegen"
	"restgen/internal/introspect"
)

// resolveConfig assembles a GeneratorConfig for the one-shot commands from
// flags and the environment go generate provides (GOFILE, GOPACKAGE,
// GOLINE).
func resolveConfig(subcommand, typeName, outputDir, pkgName string) (codegen.GeneratorConfig, error) {
	sourceDir, err := os.Getwd()
	if err != nil {
		return codegen.GeneratorConfig{}, fmt.Errorf("getting working directory: %w", err)
	}
	if typeName == "" {
		sourceFile := os.Getenv("GOFILE")
		if sourceFile == "" {
			return codegen.GeneratorConfig{}, fmt.Errorf("no -type given and GOFILE is not set (are you running via go generate?)")
		}
		typeName, err = detectInterfaceName(subcommand, sourceDir, sourceFile)
		if err != nil {
			return codegen.GeneratorConfig{}, fmt.Errorf("%w\nhint: use -type=Name or place the directive directly above the interface", err)
		}
	}
	if outputDir == "" {
		outputDir = sourceDir
	}
	if pkgName == "" {
		pkgName = os.Getenv("GOPACKAGE")
	}
	return codegen.GeneratorConfig{
		InterfaceName: typeName,
		SourcePattern: ".",
		SourceDir:     sourceDir,
		OutputDir:     outputDir,
		OutputPkg:     pkgName,
		Loader:        introspect.NewLoader(sourceDir),
	}, nil
}

// detectInterfaceName infers the target interface from the go:generate
// directive position: first by scanning for the directive comment above an
// interface declaration, then by the GOLINE environment variable.
func detectInterfaceName(subcommand, sourceDir, sourceFile string) (string, error) {
	generatorName := "restgen " + subcommand
	typeName, err := introspect.FindInterfaceAfterGenerateDirective(sourceDir, sourceFile, generatorName)
	if err == nil {
		return typeName, nil
	}
	if goLine := os.Getenv("GOLINE"); goLine != "" {
		if lineNum, lineErr := strconv.Atoi(goLine); lineErr == nil {
			return introspect.FindInterfaceAfterLine(filepath.Join(sourceDir, sourceFile), lineNum)
		}
	}
	return "", err
}
