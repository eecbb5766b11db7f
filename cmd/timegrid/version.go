package main

import (
	"github.com/spf13/cobra"

	"github.com/calweir/timegrid/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output(map[string]string{
			"release": version.GitRelease,
			"commit":  version.GitCommit,
		})
	},
}
