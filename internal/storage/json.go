package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"qtr/internal/domain"
)

// ErrNoRecord is returned by Load before any run has been saved
var ErrNoRecord = errors.New("no run recorded yet")

// Save writes the run record to the configured JSON output file
func (s *JSONStorage) Save(record *domain.RunRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal run record")
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "write run record")
	}
	return errors.Wrap(os.Rename(tmp, path), "replace run record")
}

// Load reads the last run record from the configured JSON output file
func (s *JSONStorage) Load() (*domain.RunRecord, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, errors.Wrap(err, "read run record")
	}

	var record domain.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return &record, nil
}
