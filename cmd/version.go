/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/docsbuilder/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of Docsbuilder",
	Long:  `Displays the version of Docsbuilder.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Docsbuilder %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
