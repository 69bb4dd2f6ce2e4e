package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/bigo/internal/domain"
)

// examplesCmd represents the examples command.
var examplesCmd = newExamplesCmd()

func newExamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples [name]",
		Short: "Browse the built-in example snippets",
		Long: `List the curated example snippets with their complexity, or print one
example's code together with its explanation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			return workflow.Examples(domain.ExamplesArgs{Name: name})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
