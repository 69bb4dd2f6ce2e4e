package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/bigo/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.GreaterOrEqual(t, c.Len(), 10)

	names := make(map[string]bool)
	for _, entry := range c.Entries() {
		names[entry.Name] = true

		assert.NotEmpty(t, entry.Title, entry.Name)
		assert.NotEmpty(t, entry.Verdict.Explanation, entry.Name)
		assert.NotEmpty(t, entry.Verdict.Steps, entry.Name)
		assert.Equal(t, m.EngineCatalog, entry.Verdict.Engine, entry.Name)
		assert.Empty(t, entry.Verdict.Disclaimer, entry.Name)
	}

	for _, want := range []string{
		"linear-search", "binary-search", "bubble-sort", "fibonacci-recursive",
		"merge-sort", "triple-nested-loops", "matrix-multiplication",
	} {
		assert.True(t, names[want], "missing catalog entry %s", want)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := DefaultCatalog()
	entry, err := c.Get("bubble-sort")
	require.NoError(t, err)

	got, ok := c.Lookup(entry.Code)
	require.True(t, ok)
	assert.Equal(t, entry, got)

	_, ok = c.Lookup(entry.Code + "\n// changed")
	assert.False(t, ok)
}

func TestCatalog_EntriesAreCopies(t *testing.T) {
	c := DefaultCatalog()

	entries := c.Entries()
	entries[0].Verdict.Steps[0] = "changed"
	entries[0].Name = "changed"

	fresh := c.Entries()
	assert.NotEqual(t, "changed", fresh[0].Verdict.Steps[0])
	assert.NotEqual(t, "changed", fresh[0].Name)
}

func TestCatalog_Get(t *testing.T) {
	c := DefaultCatalog()

	t.Run("known name", func(t *testing.T) {
		entry, err := c.Get("merge-sort")
		require.NoError(t, err)
		assert.Equal(t, m.Linearithmic, entry.Verdict.Notation)
	})

	t.Run("typo gets suggestion", func(t *testing.T) {
		_, err := c.Get("bubble-srot")
		require.ErrorIs(t, err, ErrUnknownExample)
		assert.Contains(t, err.Error(), `did you mean "bubble-sort"`)
	})

	t.Run("unrelated name gets no suggestion", func(t *testing.T) {
		_, err := c.Get("zzz")
		require.ErrorIs(t, err, ErrUnknownExample)
		assert.NotContains(t, err.Error(), "did you mean")
	})
}

func TestLoadCatalog(t *testing.T) {
	t.Run("normalizes code and notation", func(t *testing.T) {
		c, err := LoadCatalog([]byte(`
- name: pairs
  title: Pairs
  language: go
  code: "  for a {\n  for b {\n  }\n}\n\n"
  verdict:
    notation: O(n^2)
    explanation: nested
`))
		require.NoError(t, err)

		entry, err := c.Get("pairs")
		require.NoError(t, err)
		assert.Equal(t, "for a {\n  for b {\n  }\n}", entry.Code)
		assert.Equal(t, m.Quadratic, entry.Verdict.Notation)
		assert.Equal(t, m.EngineCatalog, entry.Verdict.Engine)
	})

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "invalid yaml", yaml: "- name: [", wantErr: "failed to parse catalog"},
		{name: "missing name", yaml: "- code: x\n  verdict: {notation: O(1)}", wantErr: "has no name"},
		{name: "missing code", yaml: "- name: a\n  verdict: {notation: O(1)}", wantErr: "has no code"},
		{name: "bad notation", yaml: "- name: a\n  code: x\n  verdict: {notation: O(n!)}", wantErr: "unsupported notation"},
		{
			name:    "duplicate name",
			yaml:    "- name: a\n  code: x\n  verdict: {notation: O(1)}\n- name: a\n  code: y\n  verdict: {notation: O(1)}",
			wantErr: "duplicate catalog entry name",
		},
		{
			name:    "duplicate code",
			yaml:    "- name: a\n  code: x\n  verdict: {notation: O(1)}\n- name: b\n  code: \" x \"\n  verdict: {notation: O(1)}",
			wantErr: "duplicates the code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
