package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/bigo/internal/model"
)

const indexFileName = "_index.yaml"

// ReportStore persists and retrieves classification reports.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.Report) error
	LoadReports(dir m.Path) ([]m.Report, error)
	CleanReports(dir m.Path, paths []m.Path) error
	RegenerateIndex(dir m.Path) error
}

// LocalReportStore writes one YAML document per report into a directory,
// plus an _index.yaml summary.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type indexEntry struct {
	TotalReports  int              `yaml:"total_reports"`
	FailedReports int              `yaml:"failed_reports"`
	Notations     map[string]int   `yaml:"notations,omitempty"`
	Result        []indexReportRef `yaml:"result"`
}

type indexReportRef struct {
	Path     string `yaml:"path"`
	Hash     string `yaml:"hash"`
	Notation string `yaml:"notation,omitempty"`
	Report   string `yaml:"report"`
}

// SaveReports writes each report to <dir>/<hash>.yaml, creating dir if needed.
func (rs *LocalReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	if dir == "" {
		return errors.New("reports directory is empty")
	}

	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	for _, report := range reports {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshal report for %s: %w", report.Path, err)
		}

		name := rs.computeReportHash(report) + ".yaml"
		if err := os.WriteFile(filepath.Join(string(dir), name), data, 0o600); err != nil {
			return fmt.Errorf("write report for %s: %w", report.Path, err)
		}
	}

	return nil
}

// LoadReports reads every stored report in dir, ordered by path.
func (rs *LocalReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	files, err := rs.reportFiles(dir)
	if err != nil {
		return nil, err
	}

	reports := make([]m.Report, 0, len(files))

	for _, file := range files {
		report, err := readReport(file)
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	return reports, nil
}

// CleanReports removes the stored reports of the given paths. A nil slice
// removes every report together with the index.
func (rs *LocalReportStore) CleanReports(dir m.Path, paths []m.Path) error {
	if dir == "" {
		return errors.New("reports directory is empty")
	}

	files, err := rs.reportFiles(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	selected := make(map[m.Path]struct{}, len(paths))
	for _, p := range paths {
		selected[p] = struct{}{}
	}

	for _, file := range files {
		if paths != nil {
			report, err := readReport(file)
			if err != nil {
				return err
			}

			if _, ok := selected[report.Path]; !ok {
				continue
			}
		}

		if err := os.Remove(file); err != nil {
			return fmt.Errorf("remove report %s: %w", file, err)
		}
	}

	if paths == nil {
		err := os.Remove(filepath.Join(string(dir), indexFileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove index: %w", err)
		}

		return nil
	}

	return rs.RegenerateIndex(dir)
}

// RegenerateIndex rebuilds _index.yaml from the reports present in dir.
func (rs *LocalReportStore) RegenerateIndex(dir m.Path) error {
	reports, err := rs.LoadReports(dir)
	if err != nil {
		return err
	}

	idx := indexEntry{
		Notations: make(map[string]int),
		Result:    make([]indexReportRef, 0, len(reports)),
	}

	for _, report := range reports {
		idx.TotalReports++

		ref := indexReportRef{
			Path:   string(report.Path),
			Hash:   report.Hash,
			Report: rs.computeReportHash(report) + ".yaml",
		}

		if report.Failed() {
			idx.FailedReports++
		} else {
			ref.Notation = string(report.Verdict.Notation)
			idx.Notations[ref.Notation]++
		}

		idx.Result = append(idx.Result, ref)
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(string(dir), indexFileName), data, 0o600); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

func (rs *LocalReportStore) reportFiles(dir m.Path) ([]string, error) {
	if dir == "" {
		return nil, errors.New("reports directory is empty")
	}

	info, err := os.Stat(string(dir))
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("reports path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("read reports directory: %w", err)
	}

	var files []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFileName || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		files = append(files, filepath.Join(string(dir), name))
	}

	return files, nil
}

// computeReportHash names a report after its origin and content so that a
// changed file gets a new report while an unchanged one overwrites itself.
func (rs *LocalReportStore) computeReportHash(report m.Report) string {
	h := sha256.New()
	h.Write([]byte(report.Path))
	h.Write([]byte{0})
	h.Write([]byte(report.Hash))

	return hex.EncodeToString(h.Sum(nil))[:16]
}

func readReport(file string) (m.Report, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", file, err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", file, err)
	}

	return report, nil
}
