package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of attackpath",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("attackpath version 1.0.0")
	},
}
