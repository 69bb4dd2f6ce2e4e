package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/bigo/internal/domain"
	m "github.com/mouse-blink/bigo/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved analysis reports",
		Long:  "View previously saved analysis reports from the directory given with --reports.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(domain.ViewArgs{Reports: m.Path(settings.Reports)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
