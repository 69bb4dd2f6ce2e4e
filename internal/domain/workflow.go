package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/bigo/internal/adapter"
	"github.com/mouse-blink/bigo/internal/controller"
	"github.com/mouse-blink/bigo/internal/logging"
	m "github.com/mouse-blink/bigo/internal/model"
)

// StdinArg is the path argument that reads a snippet from standard input.
const StdinArg = "-"

// AnalyzeArgs contains the arguments for classifying snippets.
type AnalyzeArgs struct {
	Paths   []m.Path
	Code    string
	Stdin   io.Reader
	Include []string
	Exclude []string
	Reports m.Path
	Threads int
}

// ExamplesArgs contains the arguments for browsing the known snippets.
type ExamplesArgs struct {
	Name string
}

// ViewArgs contains the arguments for viewing stored reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the operations behind the CLI commands.
type Workflow interface {
	Analyze(ctx context.Context, args AnalyzeArgs) error
	Examples(args ExamplesArgs) error
	View(args ViewArgs) error
}

// WorkflowOption configures a workflow.
type WorkflowOption func(*workflow)

// WithCatalog sets the catalog used by the examples command.
func WithCatalog(catalog *Catalog) WorkflowOption {
	return func(w *workflow) {
		w.catalog = catalog
	}
}

// WithCacheSize bounds the verdict cache. Zero disables caching.
func WithCacheSize(size int) WorkflowOption {
	return func(w *workflow) {
		w.cacheSize = size
	}
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	analyzer    Analyzer
	catalog     *Catalog
	cacheSize   int
	cache       *lru.Cache[uint64, m.Verdict]
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	analyzer Analyzer,
	opts ...WorkflowOption,
) Workflow {
	w := &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		ui:          ui,
		analyzer:    analyzer,
		catalog:     DefaultCatalog(),
		cacheSize:   256,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.cacheSize > 0 {
		cache, err := lru.New[uint64, m.Verdict](w.cacheSize)
		if err == nil {
			w.cache = cache
		}
	}

	return w
}

// Analyze collects the requested snippets, classifies them on a bounded
// worker pool and displays the reports in path order.
func (w *workflow) Analyze(ctx context.Context, args AnalyzeArgs) error {
	snippets, err := w.collect(args)
	if err != nil {
		return err
	}

	threads := max(args.Threads, 1)
	reports := make([]m.Report, len(snippets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, snippet := range snippets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			reports[i] = w.classify(gctx, snippet)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	if args.Reports != "" {
		if err := w.persist(args.Reports, reports); err != nil {
			return err
		}
	}

	return w.ui.DisplayReports(reports)
}

// Examples lists the known snippets, or shows one by name.
func (w *workflow) Examples(args ExamplesArgs) error {
	if args.Name == "" {
		return w.ui.DisplayCatalog(w.catalog.Entries())
	}

	entry, err := w.catalog.Get(args.Name)
	if err != nil {
		return err
	}

	return w.ui.DisplayKnownSnippet(entry)
}

// View displays previously saved reports.
func (w *workflow) View(args ViewArgs) error {
	if args.Reports == "" {
		return errors.New("reports directory is required")
	}

	reports, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports from %s: %w", args.Reports, err)
	}

	return w.ui.DisplayReports(reports)
}

func (w *workflow) collect(args AnalyzeArgs) ([]m.Snippet, error) {
	var (
		snippets []m.Snippet
		paths    []m.Path
	)

	for _, p := range args.Paths {
		if p != StdinArg {
			paths = append(paths, p)

			continue
		}

		if args.Stdin == nil {
			return nil, errors.New("standard input is not available")
		}

		snippet, err := w.readInline(args.Stdin, m.StdinPath)
		if err != nil {
			return nil, err
		}

		snippets = append(snippets, snippet)
	}

	if args.Code != "" || len(args.Paths) == 0 {
		snippet, err := w.readInline(strings.NewReader(args.Code), m.InlinePath)
		if err != nil {
			return nil, err
		}

		snippets = append(snippets, snippet)
	}

	if len(paths) > 0 {
		files, err := w.fsAdapter.Get(paths, adapter.Filter{Include: args.Include, Exclude: args.Exclude})
		if err != nil {
			return nil, fmt.Errorf("collect sources: %w", err)
		}

		snippets = append(snippets, files...)
	}

	logging.Log.WithField("snippets", len(snippets)).Debug("collected snippets")

	return snippets, nil
}

// readInline reads a snippet that did not come from a file. An empty inline
// snippet is the caller's mistake, so it fails the run instead of producing
// a failed report.
func (w *workflow) readInline(r io.Reader, origin m.Path) (m.Snippet, error) {
	snippet, err := w.fsAdapter.Read(r, origin)
	if err != nil {
		return m.Snippet{}, err
	}

	if strings.TrimSpace(snippet.Text) == "" {
		return m.Snippet{}, ErrNoInput
	}

	return snippet, nil
}

func (w *workflow) classify(ctx context.Context, snippet m.Snippet) m.Report {
	report := m.Report{Path: snippet.Origin, Hash: snippet.Hash}
	log := logging.Log.WithField("path", snippet.Origin)

	trimmed := strings.TrimSpace(snippet.Text)
	if trimmed == "" {
		report.Error = ErrNoInput.Error()

		return report
	}

	key := xxhash.Sum64String(snippet.Text)

	if w.cache != nil {
		if verdict, ok := w.cache.Get(key); ok {
			log.WithField("notation", verdict.Notation).Debug("verdict cache hit")

			report.Verdict = cloneVerdict(verdict)

			return report
		}
	}

	verdict, err := w.analyzer.Analyze(ctx, snippet.Text)
	if err != nil {
		log.WithError(err).Warn("classification failed")

		report.Error = err.Error()

		return report
	}

	log.WithField("notation", verdict.Notation).WithField("engine", verdict.Engine).Debug("classified")

	if w.cache != nil {
		w.cache.Add(key, cloneVerdict(verdict))
	}

	report.Verdict = verdict

	return report
}

func (w *workflow) persist(dir m.Path, reports []m.Report) error {
	paths := make([]m.Path, 0, len(reports))
	for _, report := range reports {
		paths = append(paths, report.Path)
	}

	if err := w.reportStore.CleanReports(dir, paths); err != nil {
		return fmt.Errorf("clean reports: %w", err)
	}

	if err := w.reportStore.SaveReports(dir, reports); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	if err := w.reportStore.RegenerateIndex(dir); err != nil {
		return fmt.Errorf("index reports: %w", err)
	}

	return nil
}

func cloneVerdict(v m.Verdict) m.Verdict {
	v.Steps = slices.Clone(v.Steps)

	return v
}
