package domain

import "testing"

func TestTransactionTime(t *testing.T) {
	txn := Transaction{TransactionDate: "02/07/2024"}
	ts, err := txn.TransactionTime()
	if err != nil {
		t.Fatalf("TransactionTime returned error: %v", err)
	}
	if ts.Day() != 2 || int(ts.Month()) != 7 || ts.Year() != 2024 {
		t.Errorf("parsed %v from 02/07/2024", ts)
	}

	txn.TransactionDate = "2024-07-02"
	if _, err := txn.TransactionTime(); err == nil {
		t.Error("ISO date accepted where DD/MM/YYYY is required")
	}
}

func TestStatementMetadataComplete(t *testing.T) {
	meta := StatementMetadata{
		AccountNumber: "000123456789",
		Currency:      "MUR",
		PeriodEnd:     "2024-07-31",
	}
	if !meta.Complete() {
		t.Error("complete metadata reported incomplete")
	}

	for _, clear := range []func(*StatementMetadata){
		func(m *StatementMetadata) { m.AccountNumber = "" },
		func(m *StatementMetadata) { m.Currency = "" },
		func(m *StatementMetadata) { m.PeriodEnd = "" },
	} {
		m := meta
		clear(&m)
		if m.Complete() {
			t.Errorf("metadata %+v reported complete", m)
		}
	}
}
