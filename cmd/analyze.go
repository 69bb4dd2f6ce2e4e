package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/bigo/internal/controller"
	"github.com/mouse-blink/bigo/internal/domain"
	m "github.com/mouse-blink/bigo/internal/model"
)

const analyzeLongDescription = `Classify the time complexity of source files or a single snippet.

Paths may be files, directories or Go-style recursive patterns such as
./... and ./src/.... Directory walks keep files matching --include globs and
drop files matching any --exclude regex. Use - to read a snippet from
standard input, or --code to pass one inline. Without paths or --code a
snippet piped on standard input is classified.`

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "analyze [paths...]",
		Short:       "Classify files or a snippet",
		Long:        analyzeLongDescription,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{classifiesAnnotation: "true"},
		RunE:        runAnalyze,
	}

	addAnalyzeFlags(cmd.Flags())

	return cmd
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	paths := parsePaths(args)

	stdin := cmd.InOrStdin()
	if len(paths) == 0 && codeFlag == "" && !controller.IsTTY(stdin) {
		paths = []m.Path{domain.StdinArg}
	}

	return workflow.Analyze(cmd.Context(), domain.AnalyzeArgs{
		Paths:   paths,
		Code:    codeFlag,
		Stdin:   stdin,
		Include: settings.Include,
		Exclude: settings.Exclude,
		Reports: m.Path(settings.Reports),
		Threads: settings.Parallel,
	})
}
