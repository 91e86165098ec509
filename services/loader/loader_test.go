package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stocks.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadStockTableCSV(t *testing.T) {
	path := writeTempCSV(t, "code,K,D,J,RSI\n600519,25.5,28.1,20.3,45.2\n000001,55,60,52,65\n")

	records, err := LoadStockTable(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "600519", records[0].Code)
	assert.Equal(t, 25.5, records[0].K)
	assert.Equal(t, 28.1, records[0].D)
	assert.Equal(t, 20.3, records[0].J)
	assert.Equal(t, 45.2, records[0].RSI)
	assert.Equal(t, "000001", records[1].Code)
}

func TestLoadStockTableExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"股票代码", "K", "D", "J", "RSI"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"600519", 25.5, 28.1, 20.3, 45.2}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"000858", 72.0, 75.5, 80.1, 71.9}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := LoadStockTable(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "600519", records[0].Code)
	assert.Equal(t, 45.2, records[0].RSI)
	assert.Equal(t, "000858", records[1].Code)
	assert.Equal(t, 80.1, records[1].J)
}

func TestLoadStockTableHeaderAliases(t *testing.T) {
	// symbol works as the code column, headers are case-insensitive
	path := writeTempCSV(t, "Symbol,k,d,j,rsi\nAAPL,10,11,12,13\n")

	records, err := LoadStockTable(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0].Code)
	assert.Equal(t, 13.0, records[0].RSI)
}

func TestLoadStockTableSkipsBlankCodeRows(t *testing.T) {
	path := writeTempCSV(t, "code,K,D,J,RSI\n600519,1,2,3,4\n,5,6,7,8\n")

	records, err := LoadStockTable(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "600519", records[0].Code)
}

func TestLoadStockTableMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "code,K,D,J\n600519,1,2,3\n")

	_, err := LoadStockTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rsi")
}

func TestLoadStockTableUnsupportedFormat(t *testing.T) {
	_, err := LoadStockTable("dataset.parquet")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadStockTableMissingFile(t *testing.T) {
	_, err := LoadStockTable(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
