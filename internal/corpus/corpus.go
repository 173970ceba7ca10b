// Package corpus reads documents from JSON-lines files and feeds them to a
// sift engine.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/wizenheimer/sift"
)

// maxLineSize bounds a single JSON line.
const maxLineSize = 1 << 20

// Record is one line of a corpus file.
type Record struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Load decodes one Record per non-blank line of r. Lines that fail to
// decode are reported together in a *multierror.Error; the records that did
// decode are returned alongside it.
func Load(r io.Reader) ([]Record, error) {
	var (
		records []Record
		errs    *multierror.Error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for line := 1; scanner.Scan(); line++ {
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("reading corpus: %w", err))
	}

	return records, errs.ErrorOrNil()
}

// LoadFiles loads every file in order. Errors are prefixed with the file
// path and aggregated; records from readable lines are always returned.
func LoadFiles(paths ...string) ([]Record, error) {
	var (
		records []Record
		errs    *multierror.Error
	)
	for _, path := range paths {
		recs, err := loadFile(path)
		records = append(records, recs...)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return records, errs.ErrorOrNil()
}

func loadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// IndexInto adds records to e in order and returns their ids.
func IndexInto(e *sift.Engine, records []Record) []uint32 {
	ids := make([]uint32, len(records))
	for i, rec := range records {
		ids[i] = e.AddDocument(rec.Text, rec.Metadata)
	}
	return ids
}
