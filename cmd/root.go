// Package cmd provides the root command and CLI setup for bigo.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mouse-blink/bigo/internal/adapter"
	"github.com/mouse-blink/bigo/internal/config"
	"github.com/mouse-blink/bigo/internal/controller"
	"github.com/mouse-blink/bigo/internal/domain"
	"github.com/mouse-blink/bigo/internal/logging"
	m "github.com/mouse-blink/bigo/internal/model"
)

// classifiesAnnotation marks commands that need the configured analysis
// engine. Other commands get the heuristic engine, which needs no credentials.
const classifiesAnnotation = "bigo/classifies"

// WorkflowFactory builds the workflow for a resolved configuration.
type WorkflowFactory func(cmd *cobra.Command, cfg config.Config) (domain.Workflow, error)

var cfgFile string
var codeFlag string
var llmModelFlag string

var settings config.Config
var workflow domain.Workflow
var newWorkflow WorkflowFactory = defaultWorkflow

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bigo [paths...]",
		Short: "Estimate the time complexity of source code",
		Long: `Bigo estimates the Big-O time complexity of code snippets without running
them. It reads loop nesting, self-recursion and halving patterns from the
source text and reports one of O(1), O(log n), O(n), O(n log n), O(n²),
O(n³) or O(2ⁿ) with a step-by-step explanation.

Without a subcommand bigo behaves like "bigo analyze".

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - -              read one snippet from standard input`,
		Args:              cobra.ArbitraryArgs,
		Annotations:       map[string]string{classifiesAnnotation: "true"},
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runAnalyze,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bigo.yaml)")
	flags.StringP(config.KeyLogLevel, "l", "warn", "log level: debug, info, warn or error")
	flags.StringP(config.KeyOutput, "o", config.OutputText, "output format: text, json or yaml")
	flags.StringP(config.KeyReports, "r", "", "directory to save YAML reports in (empty disables saving)")
	flags.IntP(config.KeyParallel, "p", 1, "number of files classified in parallel")
	flags.StringP(config.KeyEngine, "e", config.EngineHeuristic, "analysis engine: heuristic or llm")
	flags.StringVar(&llmModelFlag, "llm-model", config.DefaultLLMModel, "model used by the llm engine")

	addAnalyzeFlags(cmd.Flags())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// setup resolves the configuration and builds the workflow before any
// command runs. Flags win over the environment, which wins over the file.
func setup(cmd *cobra.Command, _ []string) error {
	v := config.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if flag := cmd.Flags().Lookup("llm-model"); flag != nil {
		if err := v.BindPFlag(config.KeyLLMModel, flag); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := config.Load(v, cfgFile); err != nil {
		return err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	wf, err := newWorkflow(cmd, cfg)
	if err != nil {
		return err
	}

	settings = cfg
	workflow = wf

	return nil
}

func defaultWorkflow(cmd *cobra.Command, cfg config.Config) (domain.Workflow, error) {
	format, err := controller.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	engine := cfg.Engine
	if cmd.Annotations[classifiesAnnotation] == "" {
		engine = config.EngineHeuristic
	}

	analyzer, err := domain.NewAnalyzer(cmd.Context(), domain.EngineConfig{
		Name:     engine,
		LLMModel: cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
	})
	if err != nil {
		return nil, err
	}

	ui := controller.NewUI(cmd,
		controller.WithFormat(format),
		controller.WithTTY(controller.IsTTY(cmd.OutOrStdout())),
	)

	return domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewReportStore(),
		ui,
		analyzer,
		domain.WithCacheSize(cfg.CacheSize),
	), nil
}

// addAnalyzeFlags registers the flags shared by the root and analyze commands.
func addAnalyzeFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&codeFlag, "code", "c", "", "classify this snippet instead of reading files")
	flags.StringArrayP(config.KeyInclude, "i", nil, "glob of files to analyze when walking directories (can be repeated)")
	flags.StringArrayP(config.KeyExclude, "x", nil, "exclude files matching regex (can be repeated)")
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
