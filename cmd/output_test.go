package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

var (
	testHeader = []string{"card_id", "name", "score"}
	testRows   = [][]string{
		{"CC100001", "Platinum Travel Elite", "87.5"},
		{"CC100002", "Everyday Cashback", "61.0"},
	}
)

func TestOutputRowsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, outputRows("csv", path, "Sheet", testHeader, testRows))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "card_id,name,score", lines[0])
	assert.Contains(t, lines[1], "Platinum Travel Elite")
}

func TestOutputRowsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, outputRows("table", path, "Sheet", testHeader, testRows))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, "card_id")
	assert.Contains(t, out, "Everyday Cashback")
	assert.Contains(t, out, "---")
}

func TestOutputRowsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, outputRows("xlsx", path, "Scores", testHeader, testRows))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	assert.Equal(t, "Scores", f.Sheets[0].Name)
	require.Len(t, f.Sheets[0].Rows, 3)
	assert.Equal(t, "card_id", f.Sheets[0].Rows[0].Cells[0].Value)
	assert.Equal(t, "CC100002", f.Sheets[0].Rows[2].Cells[0].Value)
}

func TestOutputRowsXLSXRequiresPath(t *testing.T) {
	err := outputRows("xlsx", "", "Scores", testHeader, testRows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")
}

func TestOutputRowsUnsupportedFormat(t *testing.T) {
	err := outputRows("yaml", "", "Sheet", testHeader, testRows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "Rs.12,500", formatMoney(12500))
	assert.Equal(t, "Rs.1,250,000", formatMoney(1249999.6))
	assert.Equal(t, "Rs.0", formatMoney(0))
}
