package converter

import "github.com/nconklindev/gridloc/internal/types"

// ColumnMap is the one place that ties output fields to zero-based sheet positions.
// A layout change in the source spreadsheet should only touch DefaultColumns.
type ColumnMap struct {
	EmdCode      int
	City         int
	District     int
	Neighborhood int
	GridX        int
	GridY        int
	Longitude    int
	Latitude     int
}

// DefaultColumns matches the KMA grid sheet:
// 구분, 행정구역코드, 1단계, 2단계, 3단계, 격자 X, 격자 Y, ... 경도(초/100), 위도(초/100).
var DefaultColumns = ColumnMap{
	EmdCode:      1,
	City:         2,
	District:     3,
	Neighborhood: 4,
	GridX:        5,
	GridY:        6,
	Longitude:    13,
	Latitude:     14,
}

type field struct {
	name  string
	index int
}

func (m ColumnMap) fields() []field {
	return []field{
		{"emdCode", m.EmdCode},
		{"city", m.City},
		{"district", m.District},
		{"neighborhood", m.Neighborhood},
		{"gridX", m.GridX},
		{"gridY", m.GridY},
		{"longitude", m.Longitude},
		{"latitude", m.Latitude},
	}
}

// Width is the minimum number of columns a sheet needs for this mapping.
func (m ColumnMap) Width() int {
	width := 0
	for _, f := range m.fields() {
		if f.index+1 > width {
			width = f.index + 1
		}
	}
	return width
}

// Bindings pairs every mapped field with the header text found at its position.
func (m ColumnMap) Bindings(headers []string) []types.ColumnBinding {
	fields := m.fields()
	bindings := make([]types.ColumnBinding, 0, len(fields))
	for _, f := range fields {
		bindings = append(bindings, types.ColumnBinding{
			Field:  f.name,
			Index:  f.index,
			Header: cell(headers, f.index),
		})
	}
	return bindings
}

// cell returns the value at index, or "" when the row is shorter.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
