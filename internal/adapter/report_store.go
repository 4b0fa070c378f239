package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// ManifestFileName is the name of the run manifest inside a reports directory.
const ManifestFileName = "manifest.yaml"

const manifestVersion = 1

// ErrNoReports is returned when a reports directory has no manifest.
var ErrNoReports = errors.New("no reports found")

// ReportStore persists the outcome of a run.
type ReportStore interface {
	SaveReports(ctx context.Context, dir m.Path, reports []m.Report) error
	LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error)
}

type manifestDocument struct {
	Version   int              `yaml:"version"`
	Generated time.Time        `yaml:"generated"`
	Mutants   []reportDocument `yaml:"mutants"`
}

type reportDocument struct {
	ID          string `yaml:"id"`
	Short       string `yaml:"short"`
	Origin      string `yaml:"origin"`
	File        string `yaml:"file,omitempty"`
	Description string `yaml:"description"`
	Line        int    `yaml:"line"`
	Block       int    `yaml:"block"`
	InFinally   bool   `yaml:"in_finally,omitempty"`
	Status      string `yaml:"status"`
	Output      string `yaml:"output,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

type reportStore struct {
	fs  SourceFSAdapter
	now func() time.Time
}

// NewReportStore creates a ReportStore writing YAML manifests through fs.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &reportStore{fs: fs, now: time.Now}
}

func (rs *reportStore) SaveReports(ctx context.Context, dir m.Path, reports []m.Report) error {
	doc := manifestDocument{
		Version:   manifestVersion,
		Generated: rs.now().UTC().Truncate(time.Second),
		Mutants:   make([]reportDocument, 0, len(reports)),
	}

	for _, report := range reports {
		details := report.Candidate.Details
		doc.Mutants = append(doc.Mutants, reportDocument{
			ID:          details.ID.String(),
			Short:       details.ID.ShortID(),
			Origin:      filepath.ToSlash(string(report.Candidate.Origin)),
			File:        details.Filename,
			Description: details.Description,
			Line:        details.Line,
			Block:       details.Block,
			InFinally:   details.InFinally,
			Status:      report.Status.String(),
			Output:      filepath.ToSlash(string(report.Output)),
			Error:       report.Err,
		})
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	path := rs.fs.JoinPath(ctx, string(dir), ManifestFileName)
	if err := rs.fs.WriteFile(ctx, path, buf.Bytes(), 0o600); err != nil {
		slog.Error("failed to write manifest", "path", path, "error", err)
		return fmt.Errorf("write manifest: %w", err)
	}

	slog.Debug("saved manifest", "path", path, "mutants", len(reports))

	return nil
}

func (rs *reportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error) {
	path := rs.fs.JoinPath(ctx, string(dir), ManifestFileName)

	content, err := rs.fs.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var doc manifestDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	if doc.Version != manifestVersion {
		return nil, fmt.Errorf("manifest %s: unsupported version %d", path, doc.Version)
	}

	reports := make([]m.Report, 0, len(doc.Mutants))

	for _, rd := range doc.Mutants {
		id, err := m.ParseMutationIdentifier(rd.ID)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}

		reports = append(reports, m.Report{
			Candidate: m.Candidate{
				Origin: m.Path(filepath.FromSlash(rd.Origin)),
				Details: m.MutationDetails{
					ID:          id,
					Filename:    rd.File,
					Description: rd.Description,
					Line:        rd.Line,
					Block:       rd.Block,
					InFinally:   rd.InFinally,
				},
			},
			Status: parseStatus(rd.Status),
			Output: m.Path(filepath.FromSlash(rd.Output)),
			Err:    rd.Error,
		})
	}

	return reports, nil
}

func parseStatus(s string) m.MutantStatus {
	for _, status := range []m.MutantStatus{m.Written, m.Skipped, m.Failed} {
		if status.String() == s {
			return status
		}
	}

	return m.Failed
}
