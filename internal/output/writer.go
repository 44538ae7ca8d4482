package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
)

// Header is the fixed five-column schema of every artifact, per-statement
// and combined alike.
var Header = []string{"Transaction Date", "Value Date", "Description", "Transaction Value", "Unadjusted Balance"}

// Write serializes the transaction sequence to path, creating parent
// directories as needed. Writing is all-or-nothing: an empty sequence writes
// no artifact and returns domain.ErrNoTransactions instead.
func Write(path string, txns []domain.Transaction) (err error) {
	if len(txns) == 0 {
		return domain.ErrNoTransactions
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file %q: %w", path, closeErr)
		}
	}()

	return WriteTo(f, txns)
}

// WriteTo writes the artifact rows to the given writer.
func WriteTo(out io.Writer, txns []domain.Transaction) error {
	w := csv.NewWriter(out)

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range txns {
		row := []string{
			txn.TransactionDate,
			txn.ValueDate,
			txn.Description,
			FormatAmount(txn.SignedAmount),
			FormatAmount(txn.RunningBalance),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// FormatAmount renders a decimal with exactly two fraction digits.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
