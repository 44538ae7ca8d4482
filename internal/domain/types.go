// Package domain holds the core types shared across the ingestion pipeline.
package domain

import (
	"fmt"
	"time"
)

// SourceDateFormat is the calendar layout used by statement text (DD/MM/YYYY).
const SourceDateFormat = "02/01/2006"

// ISODateFormat is the layout used for period ends and artifact filenames.
const ISODateFormat = "2006-01-02"

// Transaction is one ledger entry recovered from a statement.
//
// SignedAmount is always derived from balance deltas; the source text only
// carries an unsigned magnitude. RunningBalance is the account balance
// immediately after this transaction, as printed in the source.
type Transaction struct {
	TransactionDate string  // DD/MM/YYYY, as printed
	ValueDate       string  // DD/MM/YYYY, as printed
	Description     string  // multi-line text merged with single spaces, trimmed
	SignedAmount    float64 // positive = credit, negative = debit
	RunningBalance  float64
}

// TransactionTime parses the transaction date into a time.Time.
func (t *Transaction) TransactionTime() (time.Time, error) {
	ts, err := time.Parse(SourceDateFormat, t.TransactionDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid transaction date %q: %w", t.TransactionDate, err)
	}
	return ts, nil
}

// StatementMetadata identifies one statement and carries its declared balances.
// (AccountNumber, Currency, PeriodEnd) identifies a reporting period;
// Fingerprint identifies a specific document's content regardless of its name.
type StatementMetadata struct {
	AccountNumber string // run of exactly 12 digits
	Currency      string // 3-letter uppercase code
	PeriodEnd     string // ISO YYYY-MM-DD, end of the statement date range

	OpeningBalance    float64
	ClosingBalance    float64
	HasOpeningBalance bool
	HasClosingBalance bool

	Fingerprint string // SHA256 hex over a fixed prefix of the raw text
}

// Complete reports whether the identity fields needed to place and
// deduplicate outputs are all present.
func (m *StatementMetadata) Complete() bool {
	return m.AccountNumber != "" && m.Currency != "" && m.PeriodEnd != ""
}

// IngestionRecord is one entry in the persisted registry, keyed externally
// by the originating file's path.
type IngestionRecord struct {
	OutputPath    string    `json:"outputPath"`
	ProcessedAt   time.Time `json:"processedAt"`
	PeriodEnd     string    `json:"periodEnd"`
	AccountNumber string    `json:"accountNumber"`
	Currency      string    `json:"currency"`
	Fingerprint   string    `json:"fingerprint"`
}
