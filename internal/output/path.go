// Package output derives artifact paths and writes per-statement CSV files.
package output

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
)

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SlugifyBank converts a bank identifier to a filename-safe slug.
// Examples: "MCB" → "mcb", "Crédit Agricole" → "credit-agricole"
func SlugifyBank(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("bank identifier cannot be empty")
	}

	// Fold accented characters before lowercasing.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, name)
	if err != nil {
		return "", fmt.Errorf("failed to normalize bank identifier %q: %w", name, err)
	}

	slug := strings.ToLower(normalized)
	slug = nonAlnumPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "", fmt.Errorf("bank identifier %q contains no alphanumeric characters", name)
	}
	return slug, nil
}

// DerivePath composes the deterministic per-statement artifact path:
//
//	<baseDir>/<currency-lower>/<account>/<bank>-<account-stripped>-<currency-lower>-<periodEnd>.csv
//
// The directory tree partitions first by currency, then by the un-stripped
// account number; the filename uses the account with leading zeros removed.
// Any missing identity field yields domain.ErrIncompletePath: a statement
// whose identity cannot be resolved cannot be safely written or deduplicated.
func DerivePath(baseDir, bankID string, meta *domain.StatementMetadata) (string, error) {
	if !meta.Complete() {
		return "", domain.ErrIncompletePath
	}

	bank, err := SlugifyBank(bankID)
	if err != nil {
		return "", err
	}

	ccy := strings.ToLower(meta.Currency)
	stripped := strings.TrimLeft(meta.AccountNumber, "0")
	if stripped == "" {
		stripped = "0"
	}

	name := fmt.Sprintf("%s-%s-%s-%s.csv", bank, stripped, ccy, meta.PeriodEnd)
	return filepath.Join(baseDir, ccy, meta.AccountNumber, name), nil
}
