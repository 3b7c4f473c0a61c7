package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version build version, overridable via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("financeiro %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
