package domain

import "errors"

// Named extraction failures. Each missing statement field is reported as its
// own error so callers can decide which ones are fatal for a document.
var (
	ErrStatementDate  = errors.New("statement date range not found")
	ErrAccountNumber  = errors.New("account number not found")
	ErrCurrency       = errors.New("currency code not found")
	ErrOpeningBalance = errors.New("opening balance not found")
	ErrClosingBalance = errors.New("closing balance not found")
)

// ErrNoTransactions is reported when no line of a document matches the
// transaction start pattern.
var ErrNoTransactions = errors.New("no transactions found")

// ErrIncompletePath is reported when output path derivation is missing one
// of account number, currency, or period end.
var ErrIncompletePath = errors.New("cannot derive output path: missing account, currency, or period")
