package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restgen/internal/introspect"
	"restgen/internal/logging"
)

var importsType string

func init() {
	importsCmd.Flags().StringVar(&importsType, "type", "", "interface name (inferred from the go:generate directive when omitted)")
}

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "Print the import paths an interface's signatures require",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig("imports", importsType, "", "")
		if err != nil {
			return err
		}
		iface, err := cfg.Loader.LoadInterface(cfg.SourcePattern, cfg.InterfaceName)
		if err != nil {
			return err
		}
		set, err := introspect.ResolveImports(iface.Named)
		if err != nil {
			return err
		}
		logging.L().Debug("resolved imports", "interface", iface.Name, "count", set.Len())
		for _, path := range set.Paths() {
			fmt.Println(path)
		}
		return nil
	},
}
