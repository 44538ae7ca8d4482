// Package pipeline drives the per-document ingestion state machine and the
// batch loop around it.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
	"github.com/rumor-ml/commons.systems/bankledger/internal/extract"
	"github.com/rumor-ml/commons.systems/bankledger/internal/metadata"
	"github.com/rumor-ml/commons.systems/bankledger/internal/output"
	"github.com/rumor-ml/commons.systems/bankledger/internal/stmt"
	"github.com/rumor-ml/commons.systems/bankledger/internal/tracker"
)

// Status is the terminal state of one document's run through the pipeline.
type Status string

const (
	StatusRecorded Status = "recorded"

	StatusSkippedMissingDate              Status = "skipped: missing statement date"
	StatusSkippedMissingAccountOrCurrency Status = "skipped: missing account or currency"
	StatusSkippedDuplicateContent         Status = "skipped: duplicate content"
	StatusSkippedAlreadyProcessed         Status = "skipped: already processed"
	StatusSkippedDuplicatePeriod          Status = "skipped: duplicate period"
	StatusSkippedNoTransactions           Status = "skipped: no transactions found"
	StatusSkippedPathError                Status = "skipped: output path underivable"

	StatusFailed Status = "failed"
)

// Outcome is the result of processing one document. Every document in a
// batch gets exactly one Outcome; nothing is silently dropped.
type Outcome struct {
	Source       string
	Status       Status
	OutputPath   string
	Transactions int
	Warning      string // closing-balance mismatch, never fatal
	Err          error  // set only for StatusFailed
}

// BatchResult aggregates the outcomes of one run.
type BatchResult struct {
	RunID    string
	Outcomes []Outcome
}

// Summary returns the per-status outcome counts.
func (r *BatchResult) Summary() map[Status]int {
	counts := make(map[Status]int)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// Recorded returns how many documents reached the registry.
func (r *BatchResult) Recorded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusRecorded {
			n++
		}
	}
	return n
}

// Options configures a pipeline run.
type Options struct {
	Extractors []extract.Extractor
	Store      *tracker.Store
	OutputDir  string
	BankID     string
	// Force bypasses the identity- and period-duplicate checks. It never
	// bypasses the content-duplicate check.
	Force bool
	Log   zerolog.Logger
}

// Pipeline processes documents one at a time, each through the strictly
// sequential stage sequence Extracted → MetadataResolved → DuplicateChecked
// → Parsed → Validated → Written → Recorded. A failure on one document never
// aborts the rest of the batch.
type Pipeline struct {
	opts   Options
	parser *stmt.Parser
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	if opts.Extractors == nil {
		opts.Extractors = extract.Default()
	}
	return &Pipeline{opts: opts, parser: stmt.NewParser()}
}

// Run loads the registry once, processes every document, and returns the
// collected outcomes. Zero input documents is a valid, empty batch.
func (p *Pipeline) Run(paths []string) (*BatchResult, error) {
	reg, err := p.opts.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ingestion registry: %w", err)
	}

	result := &BatchResult{RunID: uuid.NewString()}
	log := p.opts.Log.With().Str("run", result.RunID).Logger()
	log.Debug().Int("documents", len(paths)).Msg("starting batch")

	for _, path := range paths {
		outcome := p.processDocument(reg, path, log)
		if outcome.Err != nil {
			log.Error().Str("source", path).Err(outcome.Err).Msg("document failed")
		} else {
			log.Debug().Str("source", path).Str("status", string(outcome.Status)).Msg("document done")
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

// processDocument runs one document through the full stage sequence. Any
// panic is caught at the document boundary and converted to a failure so the
// batch loop keeps going.
func (p *Pipeline) processDocument(reg *tracker.Registry, path string, log zerolog.Logger) (out Outcome) {
	out = Outcome{Source: path}
	defer func() {
		if r := recover(); r != nil {
			out.Status = StatusFailed
			out.Err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	// Extracted
	ex := extract.For(path, p.opts.Extractors)
	if ex == nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("no extractor for %s", path)
		return out
	}
	text, err := ex.Extract(path)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	// MetadataResolved
	meta, missing := metadata.Extract(text)
	var missingDate, missingIdentity, missingBalance bool
	for _, e := range missing {
		switch e {
		case domain.ErrStatementDate:
			missingDate = true
		case domain.ErrAccountNumber, domain.ErrCurrency:
			missingIdentity = true
		case domain.ErrOpeningBalance, domain.ErrClosingBalance:
			missingBalance = true
		}
	}
	if missingDate {
		out.Status = StatusSkippedMissingDate
		return out
	}
	if missingIdentity {
		out.Status = StatusSkippedMissingAccountOrCurrency
		return out
	}

	// DuplicateChecked. The content check always applies; force only
	// bypasses the identity and period checks.
	if reg.IsContentDuplicate(path, meta.Fingerprint) {
		out.Status = StatusSkippedDuplicateContent
		return out
	}
	if !p.opts.Force {
		if reg.Has(path) {
			out.Status = StatusSkippedAlreadyProcessed
			return out
		}
		if reg.IsPeriodDuplicate(meta.PeriodEnd, meta.AccountNumber) {
			out.Status = StatusSkippedDuplicatePeriod
			return out
		}
	}

	// Parsed. Sign classification of the first transaction needs the
	// opening balance, so a missing balance aborts before parsing.
	if missingBalance {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("statement %s: opening or closing balance not found", path)
		return out
	}
	txns, err := p.parser.Parse(text, meta.OpeningBalance)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("parse failed for %s: %w", path, err)
		return out
	}
	if len(txns) == 0 {
		out.Status = StatusSkippedNoTransactions
		return out
	}
	out.Transactions = len(txns)

	// Validated
	if ok, got := stmt.ValidateClosing(txns, meta.ClosingBalance); !ok {
		out.Warning = fmt.Sprintf("closing balance mismatch: statement declares %s, last transaction leaves %s",
			output.FormatAmount(meta.ClosingBalance), output.FormatAmount(got))
		log.Warn().Str("source", path).Msg(out.Warning)
	}

	// Written
	outPath, err := output.DerivePath(p.opts.OutputDir, p.opts.BankID, meta)
	if err != nil {
		out.Status = StatusSkippedPathError
		return out
	}
	if err := output.Write(outPath, txns); err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("failed to write %s: %w", outPath, err)
		return out
	}
	out.OutputPath = outPath

	// Recorded. Only a written artifact may be recorded; the registry must
	// never reference an output that was not produced.
	if err := p.opts.Store.Record(reg, path, meta, outPath); err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("artifact written to %s but registry update failed: %w", outPath, err)
		return out
	}

	out.Status = StatusRecorded
	return out
}
