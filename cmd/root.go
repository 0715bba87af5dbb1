package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the base command for the argus service.
var RootCmd = &cobra.Command{
	Use:   "argus",
	Short: "Amazon market research agent",
	Long:  `Argus scrapes live Amazon listings and reviews and synthesizes a structured market research report.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
