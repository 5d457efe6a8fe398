package converter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var gridHeader = []string{
	"구분", "행정구역코드", "1단계", "2단계", "3단계", "격자 X", "격자 Y",
	"경도(시)", "경도(분)", "경도(초)", "위도(시)", "위도(분)", "위도(초)",
	"경도(초/100)", "위도(초/100)",
}

// gridRow builds a 15-column row in the KMA layout.
func gridRow(code, city, district, neighborhood, x, y, lon, lat string) []string {
	return []string{
		"kor", code, city, district, neighborhood, x, y,
		"126", "58", "16.44", "37", "34", "57.24",
		lon, lat,
	}
}

func sampleRows() [][]string {
	return [][]string{
		gridRow("11010", "서울특별시", "종로구", "청운효자동", "60", "127", "126.9712345", "37.5825678"),
		gridRow("11020", "서울특별시", "   ", "사직동", "60", "127", "126.9706519", "37.5731600"),
		gridRow("11030", "서울특별시", "종로구", "삼청동", "N/A", "127", "126.9829454", "37.5841367"),
		gridRow("26010", "부산광역시", "중구", "중앙동", "97", "74", "129.0363612", "35.1040055"),
	}
}

func writeCSV(t *testing.T, path string, records [][]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
}

func writeXLSX(t *testing.T, path, sheet string, records [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	} else {
		sheet = "Sheet1"
	}

	for i, row := range records {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &values))
	}

	require.NoError(t, f.SaveAs(path))
}

func tempFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
