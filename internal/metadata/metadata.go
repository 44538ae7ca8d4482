// Package metadata extracts statement identity fields from raw statement text.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
)

// fingerprintPrefix is the fixed prefix of the raw text hashed as a content
// identity proxy. Statements renamed on disk still hash identically.
const fingerprintPrefix = 4096

var (
	// Date range header, e.g. "From 01/07/2024 to 31/07/2024".
	dateRangePattern = regexp.MustCompile(`From\s+(\d{2}/\d{2}/\d{4})\s+to\s+(\d{2}/\d{2}/\d{4})`)

	// First maximal run of exactly 12 digits. Digit-only boundaries: the
	// run may sit next to letters or punctuation, but a longer digit run
	// must not produce a partial match.
	accountPattern = regexp.MustCompile(`(?:^|[^0-9])(\d{12})(?:[^0-9]|$)`)

	// A 3-uppercase-letter token alone on its own line.
	currencyPattern = regexp.MustCompile(`(?m)^[ \t]*([A-Z]{3})[ \t]*\r?$`)

	openingPattern = regexp.MustCompile(`Opening Balance\s+(-?\d{1,3}(?:,\d{3})*\.\d{2})`)
	closingPattern = regexp.MustCompile(`Closing Balance\s+(-?\d{1,3}(?:,\d{3})*\.\d{2})`)
)

// ParseAmount converts a statement amount like "1,234.56" to a float64.
func ParseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}

// Extract attempts to pull every identity field out of the raw text. All
// fields are tried independently; the returned slice holds one named error
// per missing field (empty when everything was found). Callers decide which
// failures are fatal.
func Extract(text string) (*domain.StatementMetadata, []error) {
	meta := &domain.StatementMetadata{
		Fingerprint: Fingerprint(text),
	}
	var missing []error

	if m := dateRangePattern.FindStringSubmatch(text); m != nil {
		end, err := time.Parse(domain.SourceDateFormat, m[2])
		if err != nil {
			// Matched the shape but not a real calendar date (e.g. 31/02).
			missing = append(missing, domain.ErrStatementDate)
		} else {
			meta.PeriodEnd = end.Format(domain.ISODateFormat)
		}
	} else {
		missing = append(missing, domain.ErrStatementDate)
	}

	if m := accountPattern.FindStringSubmatch(text); m != nil {
		meta.AccountNumber = m[1]
	} else {
		missing = append(missing, domain.ErrAccountNumber)
	}

	if m := currencyPattern.FindStringSubmatch(text); m != nil {
		meta.Currency = m[1]
	} else {
		missing = append(missing, domain.ErrCurrency)
	}

	if m := openingPattern.FindStringSubmatch(text); m != nil {
		if v, err := ParseAmount(m[1]); err == nil {
			meta.OpeningBalance = v
			meta.HasOpeningBalance = true
		}
	}
	if !meta.HasOpeningBalance {
		missing = append(missing, domain.ErrOpeningBalance)
	}

	if m := closingPattern.FindStringSubmatch(text); m != nil {
		if v, err := ParseAmount(m[1]); err == nil {
			meta.ClosingBalance = v
			meta.HasClosingBalance = true
		}
	}
	if !meta.HasClosingBalance {
		missing = append(missing, domain.ErrClosingBalance)
	}

	return meta, missing
}

// Fingerprint hashes a fixed-size prefix of the raw text with SHA256 and
// returns the hex digest.
func Fingerprint(text string) string {
	prefix := text
	if len(prefix) > fingerprintPrefix {
		prefix = prefix[:fingerprintPrefix]
	}
	hash := sha256.Sum256([]byte(prefix))
	return hex.EncodeToString(hash[:])
}
