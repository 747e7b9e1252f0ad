// Package ingestion reads and writes the CSV files that connect the scraper, the cleaning
// pipeline and external tools.
package ingestion

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// LoadError represents an error reading a raw CSV file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ReadRawCSV reads a raw scrape file. Columns are matched by header name, so extra
// columns such as a leading index are ignored and missing columns stay empty. Every
// cell is passed through CleanField.
func ReadRawCSV(path string) ([]types.RawRecord, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &LoadError{Path: path, Message: "file not found", Cause: err}
		}
		return nil, nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	records, err := ParseRawCSV(bytes.NewReader(content))
	if err != nil {
		return nil, nil, &LoadError{Path: path, Message: "invalid CSV", Cause: err}
	}
	return records, NewMetadata(path, content, len(records)), nil
}

// ParseRawCSV decodes raw records from CSV with a header row.
func ParseRawCSV(r io.Reader) ([]types.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if !hasColumn(header, "title") {
		return nil, fmt.Errorf("missing required column %q", "title")
	}

	var records []types.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		var rec types.RawRecord
		for i, name := range header {
			if i < len(row) {
				rec.Set(name, CleanField(row[i]))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

// WriteRawCSV writes records with the types.RawColumns header, creating parent
// directories as needed.
func WriteRawCSV(path string, records []types.RawRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(types.RawColumns); err != nil {
		return err
	}
	for i := range records {
		if err := w.Write(records[i].Fields()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// WriteCleanCSV writes clean records with the types.CleanColumns header.
func WriteCleanCSV(w io.Writer, records []types.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.CleanColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Title,
			r.CompanyName,
			r.City,
			r.Industry,
			r.CompanySize,
			r.PostingDate.Format(types.DateLayout),
			strconv.Itoa(r.NumOfVacancies),
			string(r.JobType),
			string(r.JobLevel),
			string(r.Gender),
			string(r.RemoteMode),
			r.MinExperienceYears.String(),
			r.MaxExperienceYears.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
