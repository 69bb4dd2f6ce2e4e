package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/mouse-blink/bigo/internal/adapter"
)

// ErrUnsupportedEngine is returned for an unknown engine name.
var ErrUnsupportedEngine = errors.New("unsupported engine")

// Engine names.
const (
	EngineHeuristic = "heuristic"
	EngineLLM       = "llm"
)

// EngineConfig selects and configures the analyzer used for a run.
type EngineConfig struct {
	Name     string
	Catalog  *Catalog
	LLMModel string
	APIKey   string
}

// NewAnalyzer builds the analyzer for the configured engine. Engines are not
// combined: the language model path never consults the offline classifier.
func NewAnalyzer(ctx context.Context, cfg EngineConfig) (Analyzer, error) {
	switch cfg.Name {
	case EngineHeuristic, "":
		catalog := cfg.Catalog
		if catalog == nil {
			catalog = DefaultCatalog()
		}

		return NewClassifier(catalog), nil
	case EngineLLM:
		analyzer, err := adapter.NewGeminiAnalyzer(ctx, cfg.APIKey, cfg.LLMModel)
		if err != nil {
			return nil, fmt.Errorf("llm engine: %w", err)
		}

		return analyzer, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngine, cfg.Name)
	}
}
