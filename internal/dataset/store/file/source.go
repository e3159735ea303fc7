// Package file loads the dataset from a JSON array on disk, the same
// document the dashboard frontend used to fetch as data.json.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"enrolsight/internal/analytics"
	"enrolsight/pkg/platform/sentinel"
)

// Source reads records from Path on every Load.
type Source struct {
	Path string
}

// New returns a file source for path.
func New(path string) *Source {
	return &Source{Path: path}
}

func (s *Source) Name() string { return "file:" + s.Path }

// Load decodes the file. A missing file maps to sentinel.ErrNotFound and a
// malformed one to sentinel.ErrCorrupt.
func (s *Source) Load(ctx context.Context) ([]analytics.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", s.Path, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	var records []analytics.RawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", s.Path, sentinel.ErrCorrupt, err)
	}
	return records, nil
}
