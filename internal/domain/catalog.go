package domain

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/bigo/internal/model"
)

//go:embed catalog/known.yaml
var knownSnippetsYAML []byte

// ErrUnknownExample is returned when no catalog entry has the requested name.
var ErrUnknownExample = errors.New("unknown example")

// minSuggestionSimilarity is the Jaro-Winkler similarity an entry name needs
// before it is offered as a suggestion.
const minSuggestionSimilarity = 0.7

// Catalog is the read-only table of curated teaching snippets. It is safe for
// concurrent use because nothing mutates it after LoadCatalog returns.
type Catalog struct {
	entries []m.KnownSnippet
	byCode  map[string]int
	byName  map[string]int
}

var defaultCatalog = mustLoadCatalog(knownSnippetsYAML)

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func mustLoadCatalog(data []byte) *Catalog {
	c, err := LoadCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("embedded known-snippet catalog: %v", err))
	}

	return c
}

// LoadCatalog parses a YAML list of known snippets. Codes are stored trimmed
// and every verdict is tagged as a catalog verdict.
func LoadCatalog(data []byte) (*Catalog, error) {
	var entries []m.KnownSnippet
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		entries: make([]m.KnownSnippet, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}

	for i, entry := range entries {
		entry.Code = strings.TrimSpace(entry.Code)

		switch {
		case entry.Name == "":
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		case entry.Code == "":
			return nil, fmt.Errorf("catalog entry %q has no code", entry.Name)
		}

		notation, ok := m.ParseNotation(string(entry.Verdict.Notation))
		if !ok {
			return nil, fmt.Errorf("catalog entry %q: unsupported notation %q", entry.Name, entry.Verdict.Notation)
		}

		if _, dup := c.byName[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog entry name %q", entry.Name)
		}

		if _, dup := c.byCode[entry.Code]; dup {
			return nil, fmt.Errorf("catalog entry %q duplicates the code of another entry", entry.Name)
		}

		entry.Verdict.Notation = notation
		entry.Verdict.Engine = m.EngineCatalog

		c.byName[entry.Name] = len(c.entries)
		c.byCode[entry.Code] = len(c.entries)
		c.entries = append(c.entries, entry)
	}

	return c, nil
}

// Lookup finds the entry whose code equals the trimmed snippet byte for byte.
func (c *Catalog) Lookup(trimmed string) (m.KnownSnippet, bool) {
	i, ok := c.byCode[trimmed]
	if !ok {
		return m.KnownSnippet{}, false
	}

	return cloneKnownSnippet(c.entries[i]), true
}

// Get returns the entry called name. On a miss the error wraps
// ErrUnknownExample and names the closest entry when one is similar enough.
func (c *Catalog) Get(name string) (m.KnownSnippet, error) {
	if i, ok := c.byName[name]; ok {
		return cloneKnownSnippet(c.entries[i]), nil
	}

	if suggestion := c.suggest(name); suggestion != "" {
		return m.KnownSnippet{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownExample, name, suggestion)
	}

	return m.KnownSnippet{}, fmt.Errorf("%w %q", ErrUnknownExample, name)
}

// Entries returns every entry in catalog order.
func (c *Catalog) Entries() []m.KnownSnippet {
	out := make([]m.KnownSnippet, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, cloneKnownSnippet(entry))
	}

	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) suggest(name string) string {
	best := ""

	var bestScore float32

	for _, entry := range c.entries {
		score, err := edlib.StringsSimilarity(strings.ToLower(name), entry.Name, edlib.JaroWinkler)
		if err != nil {
			continue
		}

		if score > bestScore {
			best, bestScore = entry.Name, score
		}
	}

	if bestScore < minSuggestionSimilarity {
		return ""
	}

	return best
}

func cloneKnownSnippet(entry m.KnownSnippet) m.KnownSnippet {
	entry.Verdict.Steps = slices.Clone(entry.Verdict.Steps)

	return entry
}
