// restgen is a code generation tool for Go interfaces.
//
// Usage:
//
//	//go:generate restgen client
//	type Store interface { ... }
//
// Or with an explicit type:
//
//	//go:generate restgen client -type=Store
//	//go:generate restgen stub -type=Store -name=FakeStore
//
// Subcommands:
//
//	client    Generate an HTTP client implementing an interface
//	server    Generate http.ServeMux handler bindings for an interface
//	stub      Generate a panicking stub implementation of an interface
//	imports   Print the import paths an interface's signatures require
//	generate  Run every target listed in restgen.yaml
package main

import (
	"os"

	"github.com/spf13/cobra"

	"restgen/internal/logging"
	"restgen/internal/version"
)

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "restgen",
	Short: "REST code generator for Go interfaces",
	Long: `restgen introspects Go interfaces and generates REST-style bindings:
HTTP clients, server handler registrations and stub implementations.

Designed for go:generate: place a //go:generate restgen <command> directive
above an interface declaration and the interface name is inferred.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logLevel, logJSON)
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log in JSON format")
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(stubCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
	if err := rootCmd.Execute(); err != nil {
		logging.L().Error(err.Error())
		os.Exit(1)
	}
}
