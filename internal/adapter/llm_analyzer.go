package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	m "github.com/mouse-blink/bigo/internal/model"
)

// ErrInvalidJSON is returned when the model reply is not the expected JSON verdict.
var ErrInvalidJSON = errors.New("llm returned invalid JSON verdict")

const llmPrompt = `You are a time complexity classifier.
Classify the worst-case time complexity of the code below as exactly one of:
O(1), O(log n), O(n), O(n log n), O(n²), O(n³), O(2ⁿ).
Reply with a JSON object {"notation": string, "explanation": string, "steps": [string]}.
The explanation is one sentence; steps list the reasoning in order.

[CODE]
`

// ContentGenerator is the subset of the genai Models service used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyzer classifies snippets by asking a Gemini model.
type GeminiAnalyzer struct {
	models ContentGenerator
	model  string
}

// NewGeminiAnalyzer creates a Gemini-backed analyzer. An empty apiKey lets the
// genai client fall back to its own environment lookup.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string) (*GeminiAnalyzer, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return NewGeminiAnalyzerWithModels(cli.Models, model), nil
}

// NewGeminiAnalyzerWithModels wires an analyzer to an existing generator.
func NewGeminiAnalyzerWithModels(models ContentGenerator, model string) *GeminiAnalyzer {
	return &GeminiAnalyzer{models: models, model: model}
}

// Analyze sends the snippet to the model and parses its JSON verdict.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, snippet string) (m.Verdict, error) {
	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: llmPrompt + snippet}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return m.Verdict{}, fmt.Errorf("gemini %s: %w", g.model, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return m.Verdict{}, ErrInvalidJSON
	}

	return ParseLLMVerdict(resp.Candidates[0].Content.Parts[0].Text)
}

// ParseLLMVerdict decodes a model reply into a verdict. Markdown code fences
// around the JSON are tolerated.
func ParseLLMVerdict(reply string) (m.Verdict, error) {
	body := stripFences(reply)
	if !gjson.Valid(body) {
		return m.Verdict{}, ErrInvalidJSON
	}

	raw := strings.TrimSpace(gjson.Get(body, "notation").String())

	notation, ok := m.ParseNotation(raw)
	if !ok {
		return m.Verdict{}, fmt.Errorf("%w: unknown notation %q", ErrInvalidJSON, raw)
	}

	verdict := m.Verdict{
		Notation:    notation,
		Explanation: strings.TrimSpace(gjson.Get(body, "explanation").String()),
		Engine:      m.EngineLLM,
	}

	for _, step := range gjson.Get(body, "steps").Array() {
		if s := strings.TrimSpace(step.String()); s != "" {
			verdict.Steps = append(verdict.Steps, s)
		}
	}

	if verdict.Explanation == "" {
		verdict.Explanation = fmt.Sprintf("The model classified this code as %s.", notation)
	}

	return verdict, nil
}

func stripFences(reply string) string {
	body := strings.TrimSpace(reply)
	if !strings.HasPrefix(body, "```") {
		return body
	}

	body = strings.TrimPrefix(body, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}

	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), "```"))
}
