package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"stock_advisor_backend/models"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for dataset files that are neither
// Excel workbooks nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported dataset format: expected .xlsx or .csv")

// requiredColumns are the dataset columns every file must carry
var requiredColumns = []string{"code", "k", "d", "j", "rsi"}

// codeHeaders are the accepted spellings of the stock code column.
// The upstream prediction workbook uses the Chinese header.
var codeHeaders = map[string]bool{
	"code":   true,
	"symbol": true,
	"股票代码":   true,
}

// LoadStockTable reads an indicator dataset file into memory. The format
// is picked by file extension. Indicator values are taken as-is without
// range validation.
func LoadStockTable(filePath string) ([]models.StockRecord, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		return loadExcel(filePath)
	case ".csv":
		return loadCSV(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
}

// loadExcel reads the first sheet of an Excel workbook
func loadExcel(filePath string) ([]models.StockRecord, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in dataset file %s", filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return parseRows(rows)
}

// loadCSV reads a comma-separated dataset file
func loadCSV(filePath string) ([]models.StockRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return parseRows(rows)
}

// parseRows turns raw tabular rows into stock records. The first row
// is treated as the header.
func parseRows(rows [][]string) ([]models.StockRecord, error) {
	if len(rows) == 0 {
		return []models.StockRecord{}, nil
	}

	columnMap, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []models.StockRecord
	for _, row := range rows[1:] {
		code := cellString(row, columnMap["code"])
		if code == "" {
			// Merged or padding row
			continue
		}

		records = append(records, models.StockRecord{
			Code: code,
			K:    cellFloat(row, columnMap["k"]),
			D:    cellFloat(row, columnMap["d"]),
			J:    cellFloat(row, columnMap["j"]),
			RSI:  cellFloat(row, columnMap["rsi"]),
		})
	}

	return records, nil
}

// mapColumns resolves header names to column positions
func mapColumns(header []string) (map[string]int, error) {
	columnMap := make(map[string]int)

	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if codeHeaders[normalized] {
			columnMap["code"] = i
			continue
		}
		switch normalized {
		case "k", "d", "j", "rsi":
			columnMap[normalized] = i
		}
	}

	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("could not find required column: %s", col)
		}
	}

	return columnMap, nil
}

func cellString(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellFloat(row []string, idx int) float64 {
	if idx >= len(row) {
		return 0
	}
	val, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[idx]), ",", ""), 64)
	return val
}
