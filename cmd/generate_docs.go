package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:    "generate-docs",
		Short:  "Generate CLI documentation",
		Hidden: true,
		Long: `Generate markdown documentation for all meetpresence commands.
The documentation is derived from the command definitions, so it is
always in sync with the actual flags and help texts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
				return fmt.Errorf("failed to generate documentation: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "./docs", "Output directory for generated markdown")

	return cmd
}
