package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/tristendillon/docsbuilder/core/generator"
)

var (
	previewBuild int
	previewRaw   bool
	previewWidth int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Renders one build to the terminal without writing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		builds, err := s.pick(previewBuild)
		if err != nil {
			return err
		}

		doc, err := generator.NewDocGenerator(s.log, s.wd).Render(cmd.Context(), builds[0])
		if err != nil {
			return err
		}
		if doc == "" {
			return fmt.Errorf("build %d: %w", previewBuild, generator.ErrNoDocument)
		}

		if previewRaw {
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		}

		opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
		if previewWidth > 0 {
			opts = append(opts, glamour.WithWordWrap(previewWidth))
		}
		r, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		out, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVarP(&previewBuild, "build", "b", 0, "Build to preview (0-based)")
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "Print the markdown without styling")
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "Word wrap width, 0 disables wrapping")
}
