// Package adapter contains the infrastructure edges of bigo: filesystem
// access, report persistence and the language-model client.
package adapter

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/mouse-blink/bigo/internal/logging"
	m "github.com/mouse-blink/bigo/internal/model"
)

// MaxSnippetBytes bounds the size of a file read as a snippet.
const MaxSnippetBytes = 1 << 20

// SourceFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when collecting snippets. It hides direct `os` access so
// the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get expands roots into snippets. A root is a file, a directory (its
	// files only) or a "dir/..." pattern (the whole tree).
	Get(roots []m.Path, filter Filter) ([]m.Snippet, error)

	// Read turns the contents of r into a snippet recorded under origin.
	Read(r io.Reader, origin m.Path) (m.Snippet, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable SHA-256 fingerprint for the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// Filter selects files found while walking directories. Include globs
// (doublestar syntax, relative to the walked root) only apply to walked
// files; exclude regexes apply to every file, explicit or walked.
type Filter struct {
	Include []string
	Exclude []string
}

type compiledFilter struct {
	include []string
	exclude []*regexp.Regexp
}

func (f Filter) compile() (compiledFilter, error) {
	cf := compiledFilter{include: f.Include}

	for _, pattern := range f.Include {
		if !doublestar.ValidatePattern(pattern) {
			return compiledFilter{}, fmt.Errorf("invalid include glob %q", pattern)
		}
	}

	for _, expr := range f.Exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return compiledFilter{}, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		cf.exclude = append(cf.exclude, re)
	}

	return cf, nil
}

func (cf compiledFilter) excluded(path string) bool {
	for _, re := range cf.exclude {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func (cf compiledFilter) included(rel string) bool {
	if len(cf.include) == 0 {
		return true
	}

	rel = filepath.ToSlash(rel)
	for _, pattern := range cf.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local filesystem.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects snippets for the provided roots, each file at most once.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, filter Filter) ([]m.Snippet, error) {
	if len(roots) == 0 {
		return []m.Snippet{}, nil
	}

	cf, err := filter.compile()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var snippets []m.Snippet

	add := func(path string) error {
		if _, exists := seen[path]; exists || cf.excluded(path) {
			return nil
		}

		snippet, ok, err := a.processFilePath(path)
		if err != nil || !ok {
			return err
		}

		seen[path] = struct{}{}
		snippets = append(snippets, snippet)

		return nil
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != rootPath && isSkippedDir(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			rel, err := filepath.Rel(rootPath, path)
			if err != nil {
				return err
			}

			if !cf.included(rel) {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return snippets, nil
}

// Read loads a snippet from r, e.g. standard input.
func (a *LocalSourceFSAdapter) Read(r io.Reader, origin m.Path) (m.Snippet, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxSnippetBytes+1))
	if err != nil {
		return m.Snippet{}, fmt.Errorf("failed to read %s: %w", origin, err)
	}

	if len(content) > MaxSnippetBytes {
		return m.Snippet{}, fmt.Errorf("%s is larger than %d bytes", origin, MaxSnippetBytes)
	}

	return m.Snippet{Origin: origin, Hash: hashContent(content), Text: string(content)}, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func (a *LocalSourceFSAdapter) processFilePath(path string) (m.Snippet, bool, error) {
	info, err := a.FileInfo(m.Path(path))
	if err != nil {
		return m.Snippet{}, false, err
	}

	if info.Size() > MaxSnippetBytes {
		logging.Log.WithField("path", path).Warn("skipping file larger than the snippet limit")

		return m.Snippet{}, false, nil
	}

	content, err := a.ReadFile(m.Path(path))
	if err != nil {
		logging.Log.WithError(err).WithField("path", path).Warn("skipping unreadable file")

		return m.Snippet{}, false, nil
	}

	if bytes.IndexByte(content, 0) >= 0 {
		logging.Log.WithField("path", path).Debug("skipping binary file")

		return m.Snippet{}, false, nil
	}

	hash, err := a.HashFile(m.Path(path))
	if err != nil {
		return m.Snippet{}, false, fmt.Errorf("hash error for %s: %w", path, err)
	}

	return m.Snippet{Origin: m.Path(path), Hash: hash, Text: string(content)}, true, nil
}

func hashContent(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func isSkippedDir(name string) bool {
	return name == ".git" || name == "vendor" || name == "node_modules"
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	expanded, err := homedir.Expand(rootStr)
	if err != nil {
		return "", false, fmt.Errorf("expand %s: %w", rootStr, err)
	}

	rootStr = expanded

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
