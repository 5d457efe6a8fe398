package types

import "time"

// Location is one validated grid point in the output artifact.
type Location struct {
	EmdCode      string  `json:"emdCode"`
	City         string  `json:"city"`
	District     string  `json:"district"`
	Neighborhood string  `json:"neighborhood"`
	GridX        int     `json:"gridX"`
	GridY        int     `json:"gridY"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
}

// Document is the JSON artifact written on every run.
type Document struct {
	Version   string     `json:"version"`
	UpdatedAt string     `json:"updated_at"`
	Count     int        `json:"count"`
	Locations []Location `json:"locations"`
}

// ColumnBinding echoes which header sits at a mapped column position.
type ColumnBinding struct {
	Field  string
	Index  int
	Header string
}

type ConversionResult struct {
	InputFile     string
	OutputFile    string
	VersionFile   string
	Sheet         string
	Version       string
	Columns       []ColumnBinding
	RowsProcessed int
	Records       int
	Skipped       int
	SkippedBy     map[string]int
	OutputBytes   int64
	Duration      time.Duration
}

type FileData struct {
	Sheet     string
	Headers   []string
	Rows      [][]string
	HeaderRow int
}

// Width is the number of addressable columns: the widest of the header and data rows.
func (d *FileData) Width() int {
	width := len(d.Headers)
	for _, row := range d.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
