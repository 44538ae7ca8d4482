package output

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
)

func TestDerivePath(t *testing.T) {
	meta := &domain.StatementMetadata{
		AccountNumber: "000123456789",
		Currency:      "MUR",
		PeriodEnd:     "2024-07-31",
	}

	got, err := DerivePath("csv", "MCB", meta)
	if err != nil {
		t.Fatalf("DerivePath returned error: %v", err)
	}

	// Directory tree keeps the full account number; the filename strips
	// leading zeros and lower-cases the currency.
	want := filepath.Join("csv", "mur", "000123456789", "mcb-123456789-mur-2024-07-31.csv")
	if got != want {
		t.Errorf("DerivePath = %q, want %q", got, want)
	}
}

func TestDerivePath_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		meta domain.StatementMetadata
	}{
		{"no account", domain.StatementMetadata{Currency: "MUR", PeriodEnd: "2024-07-31"}},
		{"no currency", domain.StatementMetadata{AccountNumber: "000123456789", PeriodEnd: "2024-07-31"}},
		{"no period", domain.StatementMetadata{AccountNumber: "000123456789", Currency: "MUR"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DerivePath("csv", "mcb", &tt.meta)
			if !errors.Is(err, domain.ErrIncompletePath) {
				t.Errorf("err = %v, want ErrIncompletePath", err)
			}
		})
	}
}

func TestDerivePath_AllZeroAccount(t *testing.T) {
	meta := &domain.StatementMetadata{
		AccountNumber: "000000000000",
		Currency:      "USD",
		PeriodEnd:     "2024-07-31",
	}
	got, err := DerivePath("csv", "mcb", meta)
	if err != nil {
		t.Fatalf("DerivePath returned error: %v", err)
	}
	if filepath.Base(got) != "mcb-0-usd-2024-07-31.csv" {
		t.Errorf("filename = %q", filepath.Base(got))
	}
}

func TestSlugifyBank(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MCB", "mcb"},
		{"Crédit Agricole", "credit-agricole"},
		{"State Bank (Mauritius)", "state-bank-mauritius"},
	}
	for _, tt := range tests {
		got, err := SlugifyBank(tt.in)
		if err != nil {
			t.Errorf("SlugifyBank(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SlugifyBank(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := SlugifyBank(""); err == nil {
		t.Error("empty bank identifier accepted")
	}
	if _, err := SlugifyBank("???"); err == nil {
		t.Error("non-alphanumeric bank identifier accepted")
	}
}
