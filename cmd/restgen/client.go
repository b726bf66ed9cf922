package main

import (
	"github.com/spf13/cobra"

	"restgen/internal/codegen/client"
)

var (
	clientType    string
	clientOutput  string
	clientPackage string
	clientName    string
)

func init() {
	clientCmd.Flags().StringVar(&clientType, "type", "", "interface name (inferred from the go:generate directive when omitted)")
	clientCmd.Flags().StringVar(&clientOutput, "output", "", "output directory for generated files (default: same as source)")
	clientCmd.Flags().StringVar(&clientPackage, "package", "", "package name for generated files (default: same as source)")
	clientCmd.Flags().StringVar(&clientName, "name", "", "generated client type name (default: <Interface>Client)")
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Generate an HTTP client implementing an interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig("client", clientType, clientOutput, clientPackage)
		if err != nil {
			return err
		}
		subtool := &client.Subtool{TypeName: clientName}
		return subtool.Run(cfg)
	},
}
