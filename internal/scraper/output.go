package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/ingestion"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// Save writes records to dir as "<market>-<date>.csv" with a metadata sidecar and returns
// the CSV path.
func Save(dir string, m types.Market, records []types.RawRecord, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.csv", m, now.UTC().Format(types.DateLayout)))
	if err := ingestion.WriteRawCSV(path, records); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read back %s: %w", path, err)
	}
	meta := ingestion.NewMetadata(path, content, len(records))
	meta.Market = m.String()
	if err := ingestion.WriteMetadata(path, meta); err != nil {
		return "", err
	}
	return path, nil
}
