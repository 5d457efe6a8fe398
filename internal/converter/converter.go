package converter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nconklindev/gridloc/internal/types"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
)

// HeaderSearchLimit bounds how many leading rows are scanned for the header.
const HeaderSearchLimit = 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SpreadsheetExtensions are the extensions ReadFileData understands.
var SpreadsheetExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv"}

// IsSpreadsheet reports whether path has an extension ReadFileData can open.
func IsSpreadsheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SpreadsheetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadFileData reads the header and every data row of a spreadsheet.
// sheet selects a workbook sheet by name; empty means the first sheet.
func ReadFileData(filePath, sheet string) (*types.FileData, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".csv":
		return readCSVData(filePath)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readXLSXData(filePath, sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func readCSVData(filePath string) (*types.FileData, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	content, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(filePath), err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return splitHeader(records, "")
}

// decodeText returns UTF-8 content, converting from CP949/EUC-KR when the
// bytes are not valid UTF-8. KMA downloads are often saved in the legacy codepage.
func decodeText(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw, nil
	}
	return korean.EUCKR.NewDecoder().Bytes(raw)
}

func readXLSXData(filePath, sheet string) (*types.FileData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheetName, filepath.Base(filePath))
	}

	// Raw values keep full coordinate precision regardless of the cell's number format.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	return splitHeader(rows, sheetName)
}

func splitHeader(rows [][]string, sheetName string) (*types.FileData, error) {
	headerRowIdx := findHeaderRow(rows)
	if headerRowIdx == -1 {
		return nil, ErrEmptySheet
	}

	return &types.FileData{
		Sheet:     sheetName,
		Headers:   rows[headerRowIdx],
		Rows:      rows[headerRowIdx+1:],
		HeaderRow: headerRowIdx,
	}, nil
}

// findHeaderRow returns the first row with any non-blank cell, skipping
// leading blank rows, or -1 when none is found within HeaderSearchLimit.
func findHeaderRow(rows [][]string) int {
	searchLimit := min(len(rows), HeaderSearchLimit)

	for i := 0; i < searchLimit; i++ {
		for _, c := range rows[i] {
			if strings.TrimSpace(c) != "" {
				return i
			}
		}
	}

	return -1
}

// reportProgress sends current/total without blocking the conversion.
func reportProgress(progressChan chan<- float64, current, total int) {
	if progressChan == nil || total <= 0 {
		return
	}
	select {
	case progressChan <- float64(current) / float64(total):
	default:
	}
}
