/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/tristendillon/docsbuilder/core/config"
)

var (
	force bool
)

var starterConfig = strings.TrimLeft(dedent.Dedent(`
	# docsbuilder configuration
	watchDir: front
	debounce: 500ms
	parallel: false

	builds:
	  - input: front/**/*.vue
	    output: docs/README.md
	    title: Components
	    inModule: true
	    tree: true
	    modulesFolderName: Modules
	    excludeTypes: []
	    extractors:
	      .vue: vuedoc.md "$FILE"
`), "\n")

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Writes a starter docsbuilder.yaml",
	Long:  `Writes a starter docsbuilder.yaml to dir, or to the working directory when dir is omitted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closeLog, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer closeLog()
		log.Debug("init called")

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path := filepath.Join(dir, config.FileNames[0])

		if _, err := os.Stat(path); err == nil {
			if !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", path)
			}
			log.Debug("%s already exists. Overwriting.", path)
		}

		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Successfully wrote %s\n", path)
		fmt.Fprintf(out, "Next Steps:\n")
		if dir != "." {
			fmt.Fprintf(out, "  - cd %s\n", dir)
		}
		fmt.Fprintf(out, "  - docsbuilder tree\n")
		fmt.Fprintf(out, "  - docsbuilder build --watch\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}
