package metadata

import (
	"errors"
	"strings"
	"testing"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
)

const fullStatement = `MCB Ltd
Statement of Account
From 01/07/2024 to 31/07/2024
Account 000123456789
MUR
Opening Balance 1,000.00
Closing Balance 1,030.00
`

func TestExtract_AllFields(t *testing.T) {
	meta, missing := Extract(fullStatement)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing fields: %v", missing)
	}

	if meta.PeriodEnd != "2024-07-31" {
		t.Errorf("PeriodEnd = %q, want 2024-07-31", meta.PeriodEnd)
	}
	if meta.AccountNumber != "000123456789" {
		t.Errorf("AccountNumber = %q", meta.AccountNumber)
	}
	if meta.Currency != "MUR" {
		t.Errorf("Currency = %q", meta.Currency)
	}
	if !meta.HasOpeningBalance || meta.OpeningBalance != 1000.00 {
		t.Errorf("OpeningBalance = %v (present=%v)", meta.OpeningBalance, meta.HasOpeningBalance)
	}
	if !meta.HasClosingBalance || meta.ClosingBalance != 1030.00 {
		t.Errorf("ClosingBalance = %v (present=%v)", meta.ClosingBalance, meta.HasClosingBalance)
	}
	if meta.Fingerprint == "" {
		t.Error("Fingerprint not computed")
	}
}

func TestExtract_NamedFailures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   error
		others int // how many other fields are also missing
	}{
		{
			name:   "missing date range",
			text:   strings.Replace(fullStatement, "From 01/07/2024 to 31/07/2024", "", 1),
			want:   domain.ErrStatementDate,
			others: 0,
		},
		{
			name:   "malformed date reported, not crashed",
			text:   strings.Replace(fullStatement, "to 31/07/2024", "to 31/13/2024", 1),
			want:   domain.ErrStatementDate,
			others: 0,
		},
		{
			name:   "account number must be exactly 12 digits",
			text:   strings.Replace(fullStatement, "000123456789", "0001234567891", 1),
			want:   domain.ErrAccountNumber,
			others: 0,
		},
		{
			name:   "currency must sit alone on its line",
			text:   strings.Replace(fullStatement, "\nMUR\n", "\nCurrency MUR\n", 1),
			want:   domain.ErrCurrency,
			others: 0,
		},
		{
			name:   "missing opening balance",
			text:   strings.Replace(fullStatement, "Opening Balance 1,000.00\n", "", 1),
			want:   domain.ErrOpeningBalance,
			others: 0,
		},
		{
			name:   "missing closing balance",
			text:   strings.Replace(fullStatement, "Closing Balance 1,030.00\n", "", 1),
			want:   domain.ErrClosingBalance,
			others: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, missing := Extract(tt.text)
			if len(missing) != tt.others+1 {
				t.Fatalf("missing = %v, want exactly %d failure(s)", missing, tt.others+1)
			}
			found := false
			for _, e := range missing {
				if errors.Is(e, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("missing = %v, want %v", missing, tt.want)
			}
		})
	}
}

func TestExtract_AccountNumberAdjacentToLetters(t *testing.T) {
	// The 12-digit run may sit directly against a prefix or punctuation,
	// as in "AC000123456789". Only a longer digit run disqualifies it.
	text := strings.Replace(fullStatement,
		"Account 000123456789", "Account No. AC000123456789 (primary)", 1)

	meta, missing := Extract(text)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing fields: %v", missing)
	}
	if meta.AccountNumber != "000123456789" {
		t.Errorf("AccountNumber = %q, want 000123456789", meta.AccountNumber)
	}
}

func TestExtract_AllFieldsCheckedIndependently(t *testing.T) {
	// No field short-circuits the others: an empty document reports every
	// named failure at once.
	_, missing := Extract("")
	if len(missing) != 5 {
		t.Fatalf("missing = %v, want all 5 named failures", missing)
	}
}

func TestExtract_FirstMatchesWin(t *testing.T) {
	text := fullStatement + `
999888777666
USD
Opening Balance 9,999.99
`
	meta, missing := Extract(text)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing fields: %v", missing)
	}
	if meta.AccountNumber != "000123456789" {
		t.Errorf("AccountNumber = %q, want first match", meta.AccountNumber)
	}
	if meta.Currency != "MUR" {
		t.Errorf("Currency = %q, want first match", meta.Currency)
	}
	if meta.OpeningBalance != 1000.00 {
		t.Errorf("OpeningBalance = %v, want first match", meta.OpeningBalance)
	}
}

func TestFingerprint_PrefixOnly(t *testing.T) {
	base := strings.Repeat("x", fingerprintPrefix)

	if Fingerprint(base) != Fingerprint(base+"trailing noise") {
		t.Error("text beyond the fixed prefix changed the fingerprint")
	}
	if Fingerprint(base) == Fingerprint("y"+base[1:]) {
		t.Error("differing prefixes produced the same fingerprint")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,234.56", 1234.56},
		{"-1,234.56", -1234.56},
		{"0.00", 0},
		{" 12.30 ", 12.30},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
