package ticketparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/ticket-csv/internal/categorizer"
	"fjacquet/ticket-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	cats []models.CategoryConfig
}

func (s stubStore) ListCategories() ([]models.CategoryConfig, error) {
	return s.cats, nil
}

func newTestScanner() *Scanner {
	classifier := categorizer.NewClassifier(stubStore{cats: []models.CategoryConfig{
		{Name: "lácteos", Keywords: []string{"leche", "yogur"}},
		{Name: "bollería", Keywords: []string{"pan"}},
	}})
	return NewScanner(classifier)
}

const sampleTicket = `SUPERMERCADOS EJEMPLO S.A.
C/ MAYOR 1, MADRID
12/01/2024 18:45 OP: 142536
FACTURA SIMPLIFICADA: 2024-012-034
Descripción P. Unit Importe
2 Leche Entera 1,20 2,40
3 Pan integral 1,50
1 Tornillos surtidos 3,00 3,00
TOTAL (€) 6,90
TARJETA BANCARIA ****1234
`

func TestScanText_FullTicket(t *testing.T) {
	records := newTestScanner().ScanText(sampleTicket)

	require.Len(t, records, 3)
	for _, record := range records {
		assert.Equal(t, "12/01/2024", record.Date)
		assert.Equal(t, "18:45", record.Time)
	}

	first := records[0]
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "Leche Entera", first.Description)
	require.NotNil(t, first.UnitPrice)
	assert.True(t, first.UnitPrice.Equal(decimal.RequireFromString("1.20")))
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("2.40")))
	assert.Equal(t, "lácteos", first.Category)

	second := records[1]
	assert.Equal(t, 3, second.Quantity)
	assert.Equal(t, "Pan integral", second.Description)
	assert.Nil(t, second.UnitPrice)
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("1.50")))
	assert.Equal(t, "bollería", second.Category)

	third := records[2]
	assert.Equal(t, models.CategoryOther, third.Category)
}

func TestScanText_TerminatorStopsScan(t *testing.T) {
	text := strings.Join([]string{
		"Descripción P. Unit Importe",
		"2 Leche Entera 1,20 2,40",
		"TOTAL 2,40",
		"1 Pan integral 1,50",
	}, "\n")

	records := newTestScanner().ScanText(text)
	require.Len(t, records, 1)
	assert.Equal(t, "Leche Entera", records[0].Description)
}

func TestScanText_NoItemsBeforeHeaderMarker(t *testing.T) {
	text := strings.Join([]string{
		"2 Leche Entera 1,20 2,40",
		"Descripción P. Unit Importe",
		"3 Pan integral 1,50",
		"TOTAL 1,50",
	}, "\n")

	records := newTestScanner().ScanText(text)
	require.Len(t, records, 1)
	assert.Equal(t, "Pan integral", records[0].Description)
}

func TestScanText_DateCarriedForwardUntilReplaced(t *testing.T) {
	text := strings.Join([]string{
		"12/01/2024 18:45",
		"Descripción P. Unit Importe",
		"1 Leche Entera 1,20 1,20",
		"13/01/2024 09:10",
		"1 Pan integral 1,50",
		"TOTAL 2,70",
	}, "\n")

	records := newTestScanner().ScanText(text)
	require.Len(t, records, 2)
	assert.Equal(t, "12/01/2024", records[0].Date)
	assert.Equal(t, "18:45", records[0].Time)
	assert.Equal(t, "13/01/2024", records[1].Date)
	assert.Equal(t, "09:10", records[1].Time)
}

func TestScanText_NoDateLine(t *testing.T) {
	text := strings.Join([]string{
		"Descripción P. Unit Importe",
		"1 Leche Entera 1,20 1,20",
		"TOTAL 1,20",
	}, "\n")

	records := newTestScanner().ScanText(text)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Date)
	assert.Empty(t, records[0].Time)
}

func TestScanText_SkipsNonItemLines(t *testing.T) {
	text := strings.Join([]string{
		"Descripción P. Unit Importe",
		"",
		"GRACIAS POR SU COMPRA",
		"Leche sin cantidad 1,20 2,40",
		"2 Leche Entera 1,20 2,40",
		"TOTAL 2,40",
	}, "\n")

	// Blank lines, footer text and lines without a leading quantity
	// produce no records and no error.
	records := newTestScanner().ScanText(text)
	require.Len(t, records, 1)
	assert.Equal(t, "Leche Entera", records[0].Description)
}

func TestScanText_EmptyInput(t *testing.T) {
	assert.Empty(t, newTestScanner().ScanText(""))
	assert.Empty(t, newTestScanner().ScanText("no markers at all"))
}

func TestParseItemLine_Scenarios(t *testing.T) {
	scanner := newTestScanner()

	tests := []struct {
		name        string
		line        string
		ok          bool
		quantity    int
		description string
		unitPrice   string
		amount      string
	}{
		{
			name:        "unit price and total",
			line:        "2 Leche Entera 1,20 2,40",
			ok:          true,
			quantity:    2,
			description: "Leche Entera",
			unitPrice:   "1.20",
			amount:      "2.40",
		},
		{
			name:        "single price means no unit price",
			line:        "3 Pan integral 1,50",
			ok:          true,
			quantity:    3,
			description: "Pan integral",
			amount:      "1.50",
		},
		{
			name: "no price token",
			line: "2 Bolsa reutilizable",
			ok:   false,
		},
		{
			name: "no leading quantity",
			line: "Leche Entera 1,20 2,40",
			ok:   false,
		},
		{
			name: "blank line",
			line: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := scanner.parseItemLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}

			assert.Equal(t, tt.quantity, record.Quantity)
			assert.Equal(t, tt.description, record.Description)
			assert.True(t, record.Amount.Equal(decimal.RequireFromString(tt.amount)))
			if tt.unitPrice == "" {
				assert.Nil(t, record.UnitPrice)
			} else {
				require.NotNil(t, record.UnitPrice)
				assert.True(t, record.UnitPrice.Equal(decimal.RequireFromString(tt.unitPrice)))
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ticket.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleTicket), 0600))

	records, err := newTestScanner().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = newTestScanner().ParseFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestConvertToCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ticket.txt")
	output := filepath.Join(dir, "ticket.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleTicket), 0600))

	require.NoError(t, newTestScanner().ConvertToCSV(input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Leche Entera")
	assert.Contains(t, content, "2.40")
	assert.Contains(t, content, "lácteos")
}
