package main

import (
	"github.com/spf13/cobra"

	"restgen/internal/codegen/stub"
)

var (
	stubType    string
	stubOutput  string
	stubPackage string
	stubName    string
)

func init() {
	stubCmd.Flags().StringVar(&stubType, "type", "", "interface name (inferred from the go:generate directive when omitted)")
	stubCmd.Flags().StringVar(&stubOutput, "output", "", "output directory for generated files (default: same as source)")
	stubCmd.Flags().StringVar(&stubPackage, "package", "", "package name for generated files (default: same as source)")
	stubCmd.Flags().StringVar(&stubName, "name", "", "generated stub type name (default: <Interface>Stub)")
}

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Generate a panicking stub implementation of an interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig("stub", stubType, stubOutput, stubPackage)
		if err != nil {
			return err
		}
		subtool := &stub.Subtool{TypeName: stubName}
		return subtool.Run(cfg)
	},
}
