package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mouse-blink/bigo/internal/adapter"
	adaptermocks "github.com/mouse-blink/bigo/internal/adapter/mocks"
	controllermocks "github.com/mouse-blink/bigo/internal/controller/mocks"
	m "github.com/mouse-blink/bigo/internal/model"
)

func TestMain(m *testing.M) {
	// the genai client pulls in opencensus, whose view worker starts in init
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type stubAnalyzer struct {
	calls atomic.Int32
	err   error
}

func (s *stubAnalyzer) Analyze(_ context.Context, snippet string) (m.Verdict, error) {
	s.calls.Add(1)

	if s.err != nil {
		return m.Verdict{}, s.err
	}

	return m.Verdict{
		Notation:    m.Linear,
		Explanation: strings.TrimSpace(snippet),
		Steps:       []string{"stub"},
		Engine:      m.EngineHeuristic,
	}, nil
}

type workflowFixture struct {
	fs       *adaptermocks.MockSourceFSAdapter
	store    *adaptermocks.MockReportStore
	ui       *controllermocks.MockUI
	analyzer *stubAnalyzer
}

func newFixture(t *testing.T) *workflowFixture {
	return &workflowFixture{
		fs:       adaptermocks.NewMockSourceFSAdapter(t),
		store:    adaptermocks.NewMockReportStore(t),
		ui:       controllermocks.NewMockUI(t),
		analyzer: &stubAnalyzer{},
	}
}

func (f *workflowFixture) workflow(opts ...WorkflowOption) Workflow {
	return NewWorkflow(f.fs, f.store, f.ui, f.analyzer, opts...)
}

// captureReports records what the workflow displays.
func (f *workflowFixture) captureReports() *[]m.Report {
	var got []m.Report

	f.ui.EXPECT().DisplayReports(mock.Anything).Run(func(reports []m.Report) {
		got = reports
	}).Return(nil).Once()

	return &got
}

func snippet(path, text string) m.Snippet {
	return m.Snippet{Origin: m.Path(path), Hash: "hash-" + path, Text: text}
}

func TestWorkflow_Analyze_Files(t *testing.T) {
	f := newFixture(t)

	roots := []m.Path{"./src/..."}
	filter := adapter.Filter{Include: []string{"**/*.js"}, Exclude: []string{"vendor"}}

	f.fs.EXPECT().Get(roots, filter).Return([]m.Snippet{
		snippet("/src/b.js", "b()"),
		snippet("/src/a.js", "a()"),
	}, nil)
	got := f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{
		Paths:   roots,
		Include: filter.Include,
		Exclude: filter.Exclude,
		Threads: 2,
	})
	require.NoError(t, err)

	require.Len(t, *got, 2)
	assert.Equal(t, m.Path("/src/a.js"), (*got)[0].Path)
	assert.Equal(t, "hash-/src/a.js", (*got)[0].Hash)
	assert.Equal(t, "a()", (*got)[0].Verdict.Explanation)
	assert.Equal(t, m.Path("/src/b.js"), (*got)[1].Path)
}

func TestWorkflow_Analyze_InlineCode(t *testing.T) {
	f := newFixture(t)

	f.fs.EXPECT().Read(mock.Anything, m.InlinePath).RunAndReturn(func(r io.Reader, origin m.Path) (m.Snippet, error) {
		data, err := io.ReadAll(r)
		return m.Snippet{Origin: origin, Hash: "inline", Text: string(data)}, err
	})
	got := f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Code: "x = 1"})
	require.NoError(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, m.InlinePath, (*got)[0].Path)
	assert.Equal(t, m.Linear, (*got)[0].Verdict.Notation)
}

func TestWorkflow_Analyze_Stdin(t *testing.T) {
	f := newFixture(t)

	stdin := strings.NewReader("while (n > 0) { n--; }")
	f.fs.EXPECT().Read(stdin, m.StdinPath).Return(m.Snippet{Origin: m.StdinPath, Text: "while (n > 0) { n--; }"}, nil)
	got := f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{StdinArg}, Stdin: stdin})
	require.NoError(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, m.StdinPath, (*got)[0].Path)
}

func TestWorkflow_Analyze_StdinUnavailable(t *testing.T) {
	f := newFixture(t)

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{StdinArg}})
	assert.ErrorContains(t, err, "standard input")
}

func TestWorkflow_Analyze_EmptyInlineIsNoInput(t *testing.T) {
	tests := []struct {
		name string
		args AnalyzeArgs
	}{
		{name: "whitespace code", args: AnalyzeArgs{Code: " \n\t "}},
		{name: "nothing at all", args: AnalyzeArgs{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.fs.EXPECT().Read(mock.Anything, m.InlinePath).Return(m.Snippet{Origin: m.InlinePath, Text: tt.args.Code}, nil)

			err := f.workflow().Analyze(context.Background(), tt.args)
			require.ErrorIs(t, err, ErrNoInput)
			assert.Zero(t, f.analyzer.calls.Load())
		})
	}
}

func TestWorkflow_Analyze_PerFileFailuresDoNotAbort(t *testing.T) {
	f := newFixture(t)
	f.analyzer.err = errors.New("model unavailable")

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{
		snippet("/a.js", "   \n"),
		snippet("/b.js", "b()"),
	}, nil)
	got := f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}})
	require.NoError(t, err)

	require.Len(t, *got, 2)
	assert.Equal(t, ErrNoInput.Error(), (*got)[0].Error)
	assert.Equal(t, "model unavailable", (*got)[1].Error)
	assert.Equal(t, int32(1), f.analyzer.calls.Load())
}

func TestWorkflow_Analyze_CachesIdenticalSnippets(t *testing.T) {
	f := newFixture(t)

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{
		snippet("/a.js", "for (;;) {}"),
		snippet("/b.js", "for (;;) {}"),
		snippet("/c.js", "other()"),
	}, nil)
	got := f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}, Threads: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.analyzer.calls.Load())
	require.Len(t, *got, 3)
	assert.Equal(t, (*got)[0].Verdict, (*got)[1].Verdict)

	(*got)[0].Verdict.Steps[0] = "mutated"
	assert.Equal(t, "stub", (*got)[1].Verdict.Steps[0])
}

func TestWorkflow_Analyze_CacheKeysOnExactText(t *testing.T) {
	f := newFixture(t)

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{
		snippet("/a.py", "for x in xs:\n    f(x)"),
		snippet("/b.py", "    for x in xs:\n    f(x)"),
		snippet("/c.py", "for x in xs:\n    f(x)\n"),
	}, nil)
	f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}, Threads: 1})
	require.NoError(t, err)

	assert.Equal(t, int32(3), f.analyzer.calls.Load())
}

func TestWorkflow_Analyze_CacheDisabled(t *testing.T) {
	f := newFixture(t)

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{
		snippet("/a.js", "same()"),
		snippet("/b.js", "same()"),
	}, nil)
	f.captureReports()

	err := f.workflow(WithCacheSize(0)).Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}})
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.analyzer.calls.Load())
}

func TestWorkflow_Analyze_ParallelKeepsPathOrder(t *testing.T) {
	f := newFixture(t)

	var snippets []m.Snippet
	for i := 49; i >= 0; i-- {
		snippets = append(snippets, snippet(fmt.Sprintf("/f%02d.js", i), fmt.Sprintf("f%d()", i)))
	}

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(snippets, nil)
	got := f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}, Threads: 8})
	require.NoError(t, err)

	require.Len(t, *got, 50)
	for i, report := range *got {
		assert.Equal(t, m.Path(fmt.Sprintf("/f%02d.js", i)), report.Path)
		assert.Equal(t, fmt.Sprintf("f%d()", i), report.Verdict.Explanation)
	}
}

func TestWorkflow_Analyze_Cancelled(t *testing.T) {
	f := newFixture(t)

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{snippet("/a.js", "a()")}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.workflow().Analyze(ctx, AnalyzeArgs{Paths: []m.Path{"."}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWorkflow_Analyze_GetError(t *testing.T) {
	f := newFixture(t)

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, errors.New("root path error"))

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"missing"}})
	assert.ErrorContains(t, err, "root path error")
}

func TestWorkflow_Analyze_PersistsReports(t *testing.T) {
	f := newFixture(t)
	dir := m.Path("/tmp/reports")

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{snippet("/a.js", "a()")}, nil)
	f.store.EXPECT().CleanReports(dir, []m.Path{"/a.js"}).Return(nil).Once()
	f.store.EXPECT().SaveReports(dir, mock.MatchedBy(func(reports []m.Report) bool {
		return len(reports) == 1 && reports[0].Path == "/a.js"
	})).Return(nil).Once()
	f.store.EXPECT().RegenerateIndex(dir).Return(nil).Once()
	f.captureReports()

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}, Reports: dir})
	require.NoError(t, err)
}

func TestWorkflow_Analyze_SaveError(t *testing.T) {
	f := newFixture(t)
	dir := m.Path("/tmp/reports")

	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{snippet("/a.js", "a()")}, nil)
	f.store.EXPECT().CleanReports(dir, mock.Anything).Return(nil)
	f.store.EXPECT().SaveReports(dir, mock.Anything).Return(errors.New("read-only"))

	err := f.workflow().Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}, Reports: dir})
	assert.ErrorContains(t, err, "save reports: read-only")
}

func TestWorkflow_Analyze_WithClassifier(t *testing.T) {
	f := newFixture(t)

	code := "for i in range(n): for j in range(n): print(i, j)"
	f.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Snippet{snippet("/pairs.py", code)}, nil)
	got := f.captureReports()

	w := NewWorkflow(f.fs, f.store, f.ui, NewClassifier(DefaultCatalog()))
	require.NoError(t, w.Analyze(context.Background(), AnalyzeArgs{Paths: []m.Path{"."}}))

	require.Len(t, *got, 1)
	assert.Equal(t, m.Quadratic, (*got)[0].Verdict.Notation)
	assert.Equal(t, Disclaimer, (*got)[0].Verdict.Disclaimer)
}

func TestWorkflow_Examples(t *testing.T) {
	t.Run("lists catalog", func(t *testing.T) {
		f := newFixture(t)
		f.ui.EXPECT().DisplayCatalog(DefaultCatalog().Entries()).Return(nil)

		require.NoError(t, f.workflow().Examples(ExamplesArgs{}))
	})

	t.Run("shows one entry", func(t *testing.T) {
		f := newFixture(t)
		entry, err := DefaultCatalog().Get("binary-search")
		require.NoError(t, err)

		f.ui.EXPECT().DisplayKnownSnippet(entry).Return(nil)

		require.NoError(t, f.workflow().Examples(ExamplesArgs{Name: "binary-search"}))
	})

	t.Run("unknown entry suggests closest", func(t *testing.T) {
		f := newFixture(t)

		err := f.workflow().Examples(ExamplesArgs{Name: "binary-serch"})
		require.ErrorIs(t, err, ErrUnknownExample)
		assert.Contains(t, err.Error(), "binary-search")
	})

	t.Run("custom catalog", func(t *testing.T) {
		f := newFixture(t)
		catalog := &Catalog{}
		f.ui.EXPECT().DisplayCatalog([]m.KnownSnippet{}).Return(nil)

		require.NoError(t, f.workflow(WithCatalog(catalog)).Examples(ExamplesArgs{}))
	})
}

func TestWorkflow_View(t *testing.T) {
	t.Run("displays stored reports", func(t *testing.T) {
		f := newFixture(t)
		reports := []m.Report{{Path: "/a.js", Verdict: m.Verdict{Notation: m.Cubic}}}

		f.store.EXPECT().LoadReports(m.Path("out")).Return(reports, nil)
		f.ui.EXPECT().DisplayReports(reports).Return(nil)

		require.NoError(t, f.workflow().View(ViewArgs{Reports: "out"}))
	})

	t.Run("requires directory", func(t *testing.T) {
		f := newFixture(t)

		assert.Error(t, f.workflow().View(ViewArgs{}))
	})

	t.Run("load error", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().LoadReports(m.Path("out")).Return(nil, errors.New("no such directory"))

		assert.ErrorContains(t, f.workflow().View(ViewArgs{Reports: "out"}), "no such directory")
	})
}

func TestNewAnalyzer(t *testing.T) {
	analyzer, err := NewAnalyzer(context.Background(), EngineConfig{Name: EngineHeuristic})
	require.NoError(t, err)
	assert.IsType(t, &Classifier{}, analyzer)

	analyzer, err = NewAnalyzer(context.Background(), EngineConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Classifier{}, analyzer)

	_, err = NewAnalyzer(context.Background(), EngineConfig{Name: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedEngine)
}
