package main

import (
	"github.com/spf13/cobra"

	"restgen/internal/codegen/server"
)

var (
	serverType    string
	serverOutput  string
	serverPackage string
)

func init() {
	serverCmd.Flags().StringVar(&serverType, "type", "", "interface name (inferred from the go:generate directive when omitted)")
	serverCmd.Flags().StringVar(&serverOutput, "output", "", "output directory for generated files (default: same as source)")
	serverCmd.Flags().StringVar(&serverPackage, "package", "", "package name for generated files (default: same as source)")
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Generate http.ServeMux handler bindings for an interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig("server", serverType, serverOutput, serverPackage)
		if err != nil {
			return err
		}
		subtool := &server.Subtool{}
		return subtool.Run(cfg)
	},
}
