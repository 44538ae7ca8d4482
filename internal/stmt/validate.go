package stmt

import "github.com/rumor-ml/commons.systems/bankledger/internal/domain"

// ValidateClosing compares the last parsed running balance to the declared
// closing balance. A mismatch is a warning, never a write blocker: the
// document is still written, the caller just reports the disagreement.
// Returns ok=true when the balances agree (or there is nothing to compare),
// plus the last running balance actually parsed.
func ValidateClosing(txns []domain.Transaction, closingBalance float64) (ok bool, got float64) {
	if len(txns) == 0 {
		return true, 0
	}
	got = txns[len(txns)-1].RunningBalance
	diff := got - closingBalance
	if diff < 0 {
		diff = -diff
	}
	return diff < balanceTolerance, got
}
