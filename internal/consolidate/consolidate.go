// Package consolidate merges all per-statement artifacts of one
// (currency, account) pair into a single chronologically ordered ledger.
package consolidate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
	"github.com/rumor-ml/commons.systems/bankledger/internal/output"
	"github.com/rumor-ml/commons.systems/bankledger/internal/tracker"
)

// Ledger describes one combined artifact that was written.
type Ledger struct {
	Currency      string
	AccountNumber string
	Path          string
	Rows          int
}

// Engine consolidates registry outputs. It runs after ingestion, purely over
// the persisted registry and the artifacts it references.
type Engine struct {
	BankID string
	Log    zerolog.Logger
}

// Run groups every registry record by (currency, account), merges each
// group's artifacts sorted by transaction date, and writes one combined
// ledger per group. Groups with no readable member files are skipped
// silently (their artifacts may have been moved or deleted since recording).
func (e *Engine) Run(reg *tracker.Registry) ([]Ledger, error) {
	type groupKey struct{ currency, account string }
	groups := make(map[groupKey][]domain.IngestionRecord)
	for _, rec := range reg.Records {
		key := groupKey{rec.Currency, rec.AccountNumber}
		groups[key] = append(groups[key], rec)
	}

	var ledgers []Ledger
	for key, records := range groups {
		rows := e.readGroup(records)
		if len(rows) == 0 {
			e.Log.Debug().Str("currency", key.currency).Str("account", key.account).
				Msg("no readable artifacts for group, skipping")
			continue
		}

		// Stable: ties keep the relative order rows were read in.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].date.Before(rows[j].date)
		})

		path, err := e.ledgerPath(records[0], rows)
		if err != nil {
			return nil, err
		}
		if err := writeRows(path, rows); err != nil {
			return nil, err
		}

		ledgers = append(ledgers, Ledger{
			Currency:      key.currency,
			AccountNumber: key.account,
			Path:          path,
			Rows:          len(rows),
		})
	}

	return ledgers, nil
}

// row is one artifact line plus its parsed transaction date.
type row struct {
	fields []string
	date   time.Time
}

// readGroup reads every member artifact of one group, in a deterministic
// member order. Unreadable or malformed members are logged and skipped.
func (e *Engine) readGroup(records []domain.IngestionRecord) []row {
	paths := make([]string, 0, len(records))
	for _, rec := range records {
		paths = append(paths, rec.OutputPath)
	}
	sort.Strings(paths)

	var rows []row
	for _, path := range paths {
		fileRows, err := readArtifact(path)
		if err != nil {
			e.Log.Warn().Str("artifact", path).Err(err).Msg("skipping unreadable artifact")
			continue
		}
		rows = append(rows, fileRows...)
	}
	return rows
}

// readArtifact reads one per-statement CSV, skipping its header row.
func readArtifact(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(output.Header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	if len(records) < 2 {
		return nil, nil // header only, nothing to merge
	}

	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		date, err := time.Parse(domain.SourceDateFormat, rec[0])
		if err != nil {
			return nil, fmt.Errorf("invalid transaction date %q: %w", rec[0], err)
		}
		rows = append(rows, row{fields: rec, date: date})
	}
	return rows, nil
}

// ledgerPath derives the combined artifact path next to the group's
// per-statement artifacts, named with the merged set's min and max
// transaction dates in ISO form.
func (e *Engine) ledgerPath(rec domain.IngestionRecord, sorted []row) (string, error) {
	bank, err := output.SlugifyBank(e.BankID)
	if err != nil {
		return "", err
	}

	minDate := sorted[0].date.Format(domain.ISODateFormat)
	maxDate := sorted[len(sorted)-1].date.Format(domain.ISODateFormat)

	ccy := strings.ToLower(rec.Currency)
	stripped := strings.TrimLeft(rec.AccountNumber, "0")
	if stripped == "" {
		stripped = "0"
	}

	name := fmt.Sprintf("%s-%s-%s-%s_%s-combined.csv", bank, stripped, ccy, minDate, maxDate)
	return filepath.Join(filepath.Dir(rec.OutputPath), name), nil
}

// writeRows writes a combined ledger, preserving the original column order.
func writeRows(path string, rows []row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ledger %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close ledger %q: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(output.Header); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.fields); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
