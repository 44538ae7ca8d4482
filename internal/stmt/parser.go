// Package stmt parses transaction lines out of statement text and assigns
// each transaction its sign from balance deltas.
package stmt

import (
	"math"
	"regexp"
	"strings"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
	"github.com/rumor-ml/commons.systems/bankledger/internal/metadata"
)

// balanceTolerance is half a cent. Source amounts carry exactly two decimal
// places, so any true equality lands well inside this bound under float64.
const balanceTolerance = 0.005

// startPattern matches a transaction start line:
// transaction date, value date, unsigned magnitude, running balance,
// then the first fragment of the description.
var startPattern = regexp.MustCompile(
	`^(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})\s+(-?\d{1,3}(?:,\d{3})*\.\d{2})\s+(-?\d{1,3}(?:,\d{3})*\.\d{2})\s+(.+)`)

// Parser is stateless; each call operates only on its inputs, so a single
// instance is safe for concurrent use.
type Parser struct{}

var parserInstance = &Parser{}

// NewParser returns the shared statement parser instance.
func NewParser() *Parser {
	return parserInstance
}

// Parse scans the text line by line and returns the ordered transaction
// sequence. A line starting a transaction absorbs every following line that
// does not itself start one into its description, joined with single spaces.
// That absorption is greedy: trailing document text after the last
// transaction (footers, totals) becomes part of its description when it does
// not happen to match the start pattern. Inherited from the source format,
// left as is.
//
// A document with no matching lines yields an empty slice, not an error.
func (p *Parser) Parse(text string, openingBalance float64) ([]domain.Transaction, error) {
	lines := splitLines(text)

	var txns []domain.Transaction
	for i := 0; i < len(lines); i++ {
		m := startPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		magnitude, err := metadata.ParseAmount(m[3])
		if err != nil {
			return nil, err
		}
		running, err := metadata.ParseAmount(m[4])
		if err != nil {
			return nil, err
		}

		desc := m[5]
		for i+1 < len(lines) && !startPattern.MatchString(lines[i+1]) {
			i++
			desc += " " + strings.TrimSpace(lines[i])
		}

		txn := domain.Transaction{
			TransactionDate: m[1],
			ValueDate:       m[2],
			Description:     strings.TrimSpace(desc),
			RunningBalance:  running,
		}
		txn.SignedAmount = classify(magnitude, running, openingBalance, txns)
		txns = append(txns, txn)
	}

	return txns, nil
}

// splitLines splits on newlines, dropping any trailing carriage return so
// CRLF statements parse identically to LF ones. A stray \r would otherwise
// survive inside merged multi-line descriptions.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// classify derives the transaction sign. The source carries no debit/credit
// flag, so the sign comes purely from the balance movement:
//
//   - first transaction: credit iff running == opening + magnitude;
//   - later transactions: debit iff running balance strictly dropped,
//     otherwise credit. An unchanged balance (zero magnitude) therefore
//     classifies as a credit; that non-strict rule is a known ambiguity of
//     the source format, preserved deliberately.
func classify(magnitude, running, opening float64, prior []domain.Transaction) float64 {
	mag := math.Abs(magnitude)
	if len(prior) == 0 {
		if math.Abs(running-(opening+mag)) < balanceTolerance {
			return mag
		}
		return -mag
	}
	if running < prior[len(prior)-1].RunningBalance-balanceTolerance {
		return -mag
	}
	return mag
}
