package output

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumor-ml/commons.systems/bankledger/internal/domain"
)

var sampleTxns = []domain.Transaction{
	{
		TransactionDate: "01/07/2024",
		ValueDate:       "01/07/2024",
		Description:     "Interest",
		SignedAmount:    50.00,
		RunningBalance:  1050.00,
	},
	{
		TransactionDate: "02/07/2024",
		ValueDate:       "02/07/2024",
		Description:     "Fee, quarterly",
		SignedAmount:    -20.00,
		RunningBalance:  1030.00,
	},
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mur", "000123456789", "out.csv")
	require.NoError(t, Write(path, sampleTxns))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"01/07/2024", "01/07/2024", "Interest", "50.00", "1050.00"}, records[1])
	assert.Equal(t, []string{"02/07/2024", "02/07/2024", "Fee, quarterly", "-20.00", "1030.00"}, records[2])
}

func TestWrite_EmptySequenceWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := Write(path, nil)
	assert.True(t, errors.Is(err, domain.ErrNoTransactions))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "empty sequence must not produce an artifact")
}

func TestWriteTo_QuotesDescriptions(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteTo(&sb, sampleTxns))
	assert.Contains(t, sb.String(), `"Fee, quarterly"`)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "-20.00", FormatAmount(-20))
	assert.Equal(t, "12345.67", FormatAmount(12345.67))
}
