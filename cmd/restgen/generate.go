package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"restgen/internal/codegen"
	"restgen/internal/codegen/client"
	"restgen/internal/codegen/server"
	"restgen/internal/codegen/stub"
	"restgen/internal/config"
	"restgen/internal/introspect"
	"restgen/internal/logging"
)

var generateConfigPath string

func init() {
	generateCmd.Flags().StringVarP(&generateConfigPath, "config", "c", config.DefaultFileName, "path to the restgen config file")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run every target listed in restgen.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(generateConfigPath)
	},
}

func runGenerate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	baseDir := filepath.Dir(configPath)
	loader := introspect.NewLoader(baseDir)
	for _, target := range cfg.Targets {
		opts, err := cfg.Resolve(target)
		if err != nil {
			return err
		}
		outDir := opts.Output
		switch {
		case outDir != "" && !filepath.IsAbs(outDir):
			outDir = filepath.Join(baseDir, outDir)
		case outDir == "" && strings.HasPrefix(target.Package, "."):
			outDir = filepath.Join(baseDir, target.Package)
		case outDir == "":
			outDir = baseDir
		}
		gcfg := codegen.GeneratorConfig{
			InterfaceName: target.Interface,
			SourcePattern: target.Package,
			SourceDir:     baseDir,
			OutputDir:     outDir,
			OutputPkg:     opts.Package,
			Loader:        loader,
		}
		for _, name := range target.Generators {
			var subtool codegen.Subtool
			switch name {
			case "client":
				subtool = &client.Subtool{TypeName: opts.ClientName}
			case "server":
				subtool = &server.Subtool{}
			case "stub":
				subtool = &stub.Subtool{TypeName: opts.StubName}
			default:
				return fmt.Errorf("target %s: unknown generator %q", target.Interface, name)
			}
			logging.L().Debug("running generator", "target", target.Interface, "generator", name)
			if err := subtool.Run(gcfg); err != nil {
				return fmt.Errorf("target %s: %s: %w", target.Interface, name, err)
			}
		}
	}
	logging.L().Info("generation complete", "targets", len(cfg.Targets))
	return nil
}
