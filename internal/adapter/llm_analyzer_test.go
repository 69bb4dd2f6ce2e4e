package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	m "github.com/mouse-blink/bigo/internal/model"
)

type fakeGenerator struct {
	reply  *genai.GenerateContentResponse
	err    error
	model  string
	prompt string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if config == nil || config.ResponseMIMEType != "application/json" {
		return nil, errors.New("expected JSON response type")
	}
	return f.reply, f.err
}

func textReply(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func TestGeminiAnalyzer_Analyze(t *testing.T) {
	t.Run("parses verdict", func(t *testing.T) {
		gen := &fakeGenerator{reply: textReply(`{"notation":"O(n^2)","explanation":"Nested loops.","steps":["outer loop","inner loop",""]}`)}
		analyzer := NewGeminiAnalyzerWithModels(gen, "gemini-test")

		verdict, err := analyzer.Analyze(context.Background(), "for a { for b {} }")
		require.NoError(t, err)

		assert.Equal(t, "gemini-test", gen.model)
		assert.Contains(t, gen.prompt, "for a { for b {} }")
		assert.Equal(t, m.Quadratic, verdict.Notation)
		assert.Equal(t, "Nested loops.", verdict.Explanation)
		assert.Equal(t, []string{"outer loop", "inner loop"}, verdict.Steps)
		assert.Equal(t, m.EngineLLM, verdict.Engine)
	})

	t.Run("propagates client error", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("quota")}
		analyzer := NewGeminiAnalyzerWithModels(gen, "gemini-test")

		_, err := analyzer.Analyze(context.Background(), "x")
		assert.ErrorContains(t, err, "quota")
	})

	t.Run("empty candidates is invalid", func(t *testing.T) {
		gen := &fakeGenerator{reply: &genai.GenerateContentResponse{}}
		analyzer := NewGeminiAnalyzerWithModels(gen, "gemini-test")

		_, err := analyzer.Analyze(context.Background(), "x")
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})
}

func TestParseLLMVerdict(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		notation m.Notation
		wantErr  bool
	}{
		{name: "plain", reply: `{"notation":"O(log n)","explanation":"Halves."}`, notation: m.Logarithmic},
		{name: "fenced", reply: "```json\n{\"notation\":\"O(n)\"}\n```", notation: m.Linear},
		{name: "alias", reply: `{"notation":"O(2^n)"}`, notation: m.Exponential},
		{name: "not json", reply: "it is linear", wantErr: true},
		{name: "unknown notation", reply: `{"notation":"O(n!)"}`, wantErr: true},
		{name: "missing notation", reply: `{"explanation":"?"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := ParseLLMVerdict(tt.reply)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJSON)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.notation, verdict.Notation)
			assert.NotEmpty(t, verdict.Explanation)
		})
	}
}
