package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"restgen/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the restgen version",
	Run: func(cmd *cobra.Command, args []string) {
		if version.GitCommit != "" {
			fmt.Printf("restgen %s (%s)\n", version.Version, version.GitCommit)
			return
		}
		fmt.Printf("restgen %s\n", version.Version)
	},
}
