package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/logger"
	"github.com/guttosm/portfoli/internal/storage"
)

// expectedHeaders enforces the column order of catalog files. Header names
// are matched case-insensitively.
var expectedHeaders = []string{"Exchange", "Ticker", "Name", "AssetType"}

// FileSummary counts the rows of one file.
type FileSummary struct {
	Rows     int
	Inserted int
	Skipped  int
}

// parseAndPersistFile streams one file into repo in batches.
//
// It fails on:
//   - a header not matching expectedHeaders
//   - unrecoverable I/O or storage errors
//
// It skips, with a warning:
//   - rows with the wrong number of columns
//   - rows the catalog rejects (blank symbols, unknown asset type)
func parseAndPersistFile(ctx context.Context, path string, repo storage.AssetRepository, batch int) (FileSummary, error) {
	var sum FileSummary

	f, err := os.Open(path)
	if err != nil {
		return sum, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // checked per row
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return sum, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return sum, err
	}

	log := logger.Component("ingestion").With().Str("file", path).Logger()
	buf := make([]*models.Asset, 0, batch)
	lineNumber := 1

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		n, err := repo.AddBatch(ctx, buf)
		if err != nil {
			return err
		}
		sum.Inserted += n
		buf = buf[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNumber++
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Warn().Int("line", lineNumber).Err(err).Msg("row skipped")
			sum.Skipped++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("read line %d: %w", lineNumber, err)
		}

		sum.Rows++
		asset, err := recordToAsset(rec)
		if err != nil {
			log.Warn().Int("line", lineNumber).Err(err).Msg("row skipped")
			sum.Skipped++
			continue
		}

		buf = append(buf, asset)
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return sum, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return sum, fmt.Errorf("final flush: %w", err)
	}
	return sum, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeaders) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if !strings.EqualFold(h, expectedHeaders[i]) {
			return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}
	return nil
}

// recordToAsset converts one row into a catalog asset. Exchange and ticker
// are normalised by the model.
//
// Column order:
//
//	0 Exchange   e.g. "NASDAQ"
//	1 Ticker     e.g. "AAPL"
//	2 Name       free text, may be empty
//	3 AssetType  Stock | ETF | Crypto, any casing
func recordToAsset(rec []string) (*models.Asset, error) {
	if len(rec) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid column count: expected %d got %d", len(expectedHeaders), len(rec))
	}
	return models.NewAsset(rec[0], rec[1], rec[2], models.AssetType(rec[3]))
}
