package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/docsbuilder/core/generator"
	"github.com/tristendillon/docsbuilder/core/tree"
)

var treeBuild int

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Prints the module tree of each build",
	Long:  `Prints the modules, types and files each build would document, without running any extractor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		builds, err := s.pick(treeBuild)
		if err != nil {
			return err
		}

		gen := generator.NewDocGenerator(s.log, s.wd)
		for _, b := range builds {
			files, err := gen.Collect(cmd.Context(), b)
			if err != nil {
				return err
			}
			if err := tree.Print(cmd.OutOrStdout(), fmt.Sprintf("%s -> %s", b.Input, b.Output), tree.Build(files)); err != nil {
				return fmt.Errorf("failed to print tree: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().IntVarP(&treeBuild, "build", "b", -1, "Only print build N (0-based)")
}
