package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/neospend-dev/neospend/internal/derive"
	"github.com/neospend-dev/neospend/internal/model"
)

func sample() []model.Transaction {
	return []model.Transaction{
		{
			ID:        "3f2a9c1e-0000-4000-8000-000000000001",
			Name:      "Salário",
			Amount:    decimal.RequireFromString("100"),
			Category:  "Salário",
			CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "3f2a9c1e-0000-4000-8000-000000000002",
			Name:      "Aluguel, apto",
			Amount:    decimal.RequireFromString("-40.5"),
			Category:  "Casa",
			CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "3f2a9c1e-0000-4000-8000-000000000003",
			Name:      "Cinema",
			Amount:    decimal.RequireFromString("-10"),
			Category:  "Lazer",
			CreatedAt: time.Date(2024, 4, 20, 21, 0, 0, 0, time.UTC),
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, want := range sample() {
		assert.Equal(t, want.ID, got[i].ID)
		assert.Equal(t, want.Name, got[i].Name)
		assert.True(t, want.Amount.Equal(got[i].Amount), "row %d amount %s", i, got[i].Amount)
		assert.Equal(t, want.Category, got[i].Category)
		assert.True(t, want.CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestWriteCSV_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()[1:2]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, `3f2a9c1e-0000-4000-8000-000000000002,"Aluguel, apto",-40.5,Casa,2024-05-02T09:00:00Z`, lines[1])
}

func TestCSVRoundTrip_KeepsFullPrecision(t *testing.T) {
	txs := sample()[:2]
	txs[0].Amount = decimal.RequireFromString("10.125")
	txs[1].Amount = decimal.RequireFromString("-0.004")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txs))
	assert.Contains(t, buf.String(), ",10.125,")
	assert.Contains(t, buf.String(), ",-0.004,")

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10.125", got[0].Amount.String())
	assert.Equal(t, "-0.004", got[1].Amount.String())
	assert.False(t, got[1].Amount.IsZero())
}

func TestReadCSV_Empty(t *testing.T) {
	got, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"wrong header", "a,b,c,d,e\n", "unexpected header"},
		{"bad amount", Header + "\nx,n,abc,Casa,2024-05-02T09:00:00Z\n", "parsing amount"},
		{"bad date", Header + "\nx,n,1,Casa,2024-05-02\n", "parsing created_at"},
		{"short row", Header + "\nx,n,1\n", "reading transactions CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUnmarshalRow_FieldCount(t *testing.T) {
	_, err := UnmarshalRow([]string{"only", "two"})
	assert.ErrorContains(t, err, "expected 5 fields")
}

func TestWriteXLSX(t *testing.T) {
	snap := derive.Compute(sample(), model.Selection{Category: "Todas", Month: "2024-05"})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, snap))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetTransactions, SheetBreakdown}, f.GetSheetList())

	txRows, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	require.Len(t, txRows, 3) // header + two May rows
	assert.Equal(t, []string{"ID", "Name", "Amount", "Category", "Month", "Created"}, txRows[0])
	assert.Equal(t, "Salário", txRows[1][1])
	assert.Equal(t, "2024-05", txRows[1][4])
	assert.Equal(t, "Aluguel, apto", txRows[2][1])

	bdRows, err := f.GetRows(SheetBreakdown)
	require.NoError(t, err)
	assert.Equal(t, []string{"Category", "Amount", "Percentage", "Color"}, bdRows[0])
	assert.Equal(t, "Casa", bdRows[1][0])
	assert.Equal(t, "80", bdRows[1][2])
	assert.Equal(t, derive.Palette[0], bdRows[1][3])
	assert.Equal(t, "Lazer", bdRows[2][0])
	assert.Equal(t, derive.Palette[1], bdRows[2][3])
	assert.Equal(t, "Income", bdRows[3][0])
	assert.Equal(t, "Balance", bdRows[5][0])
}

func TestWriteXLSX_EmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, derive.Compute(nil, model.Selection{})))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
