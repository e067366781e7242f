package adapter

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// ReportStore encodes synthesis reports as YAML.
type ReportStore interface {
	WriteReport(w io.Writer, report m.Report) error
	SaveReport(path m.Path, report m.Report) error
	LoadReport(path m.Path) (m.Report, error)
}

// YAMLReportStore implements ReportStore on top of a SourceFSAdapter.
type YAMLReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore creates a YAMLReportStore.
func NewReportStore(fs SourceFSAdapter) *YAMLReportStore {
	return &YAMLReportStore{fs: fs}
}

// WriteReport encodes report to w.
func (s *YAMLReportStore) WriteReport(w io.Writer, report m.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return enc.Close()
}

// SaveReport writes report to path.
func (s *YAMLReportStore) SaveReport(path m.Path, report m.Report) error {
	var buf bytes.Buffer
	if err := s.WriteReport(&buf, report); err != nil {
		return err
	}

	if err := s.fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// LoadReport reads a report saved by SaveReport.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.Report, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m.Report{}, fmt.Errorf("report %s does not exist: %w", path, err)
		}

		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
