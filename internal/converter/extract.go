package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nconklindev/gridloc/internal/types"

	"golang.org/x/text/unicode/norm"
)

// CoordinatePrecision is the number of fractional digits kept for longitude and latitude.
const CoordinatePrecision = 7

// missingText is how an empty cell reads once it has passed through a dataframe.
const missingText = "nan"

// SkipReason classifies why a row produced no record.
type SkipReason string

const (
	SkipBlankText SkipReason = "blank_text"
	SkipBadNumber SkipReason = "bad_number"
)

var (
	errBlank     = errors.New("empty or placeholder value")
	errNotFinite = errors.New("value is not finite")
	errRange     = errors.New("value out of range")
)

// RowResult is the outcome of one input row: either a Location or a skip.
type RowResult struct {
	Location types.Location
	Skipped  bool
	Reason   SkipReason
	Field    string
	Err      error
}

func skip(reason SkipReason, field string, err error) RowResult {
	return RowResult{Skipped: true, Reason: reason, Field: field, Err: err}
}

// String describes a skip for diagnostics.
func (r RowResult) String() string {
	if !r.Skipped {
		return "ok"
	}
	return fmt.Sprintf("%s in %s: %v", r.Reason, r.Field, r.Err)
}

// Extraction accumulates the records and skip counts for a whole sheet.
type Extraction struct {
	Locations []types.Location
	RowsRead  int
	Skipped   int
	ByReason  map[SkipReason]int
}

// Extractor maps rows to Location records using a fixed column table.
type Extractor struct {
	Columns       ColumnMap
	NormalizeText bool
}

// NewExtractor returns an Extractor for the default KMA layout. Text cells
// are only trimmed; set NormalizeText to also apply NFC.
func NewExtractor() Extractor {
	return Extractor{Columns: DefaultColumns}
}

// Row validates and coerces a single row. It never returns an error: every
// problem with the row's content is reported as a skip.
func (e Extractor) Row(row []string) RowResult {
	cols := e.Columns

	emdCode := e.text(row, cols.EmdCode)
	city := e.text(row, cols.City)
	district := e.text(row, cols.District)
	neighborhood := e.text(row, cols.Neighborhood)

	for _, f := range []struct {
		name  string
		value string
	}{
		{"city", city},
		{"district", district},
		{"neighborhood", neighborhood},
	} {
		if isBlank(f.value) {
			return skip(SkipBlankText, f.name, errBlank)
		}
	}

	gridX, err := parseInt(cell(row, cols.GridX))
	if err != nil {
		return skip(SkipBadNumber, "gridX", err)
	}
	gridY, err := parseInt(cell(row, cols.GridY))
	if err != nil {
		return skip(SkipBadNumber, "gridY", err)
	}
	longitude, err := parseFloat(cell(row, cols.Longitude))
	if err != nil {
		return skip(SkipBadNumber, "longitude", err)
	}
	latitude, err := parseFloat(cell(row, cols.Latitude))
	if err != nil {
		return skip(SkipBadNumber, "latitude", err)
	}

	return RowResult{
		Location: types.Location{
			EmdCode:      emdCode,
			City:         city,
			District:     district,
			Neighborhood: neighborhood,
			GridX:        gridX,
			GridY:        gridY,
			Longitude:    roundTo(longitude, CoordinatePrecision),
			Latitude:     roundTo(latitude, CoordinatePrecision),
		},
	}
}

// All runs Row over every data row in order. report, when non-nil, is called
// for each skipped row with its zero-based data row index.
func (e Extractor) All(data *types.FileData, progressChan chan<- float64, report func(idx int, r RowResult)) (*Extraction, error) {
	if width, need := data.Width(), e.Columns.Width(); width < need {
		return nil, fmt.Errorf("%w: found %d, need at least %d", ErrInsufficientColumns, width, need)
	}

	result := &Extraction{
		Locations: make([]types.Location, 0, len(data.Rows)),
		ByReason:  make(map[SkipReason]int),
	}

	total := len(data.Rows)
	for i, row := range data.Rows {
		reportProgress(progressChan, i+1, total)
		result.RowsRead++

		r := e.Row(row)
		if r.Skipped {
			result.Skipped++
			result.ByReason[r.Reason]++
			if report != nil {
				report(i, r)
			}
			continue
		}
		result.Locations = append(result.Locations, r.Location)
	}

	return result, nil
}

func (e Extractor) text(row []string, index int) string {
	s := strings.TrimSpace(cell(row, index))
	if e.NormalizeText {
		s = norm.NFC.String(s)
	}
	return s
}

func isBlank(s string) bool {
	return s == "" || s == missingText
}

// parseInt accepts integer text, or a finite decimal truncated toward zero
// the way a numeric cell such as 60.0 converts to 60.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, errNotFinite)
	}
	// int64 cannot hold it; the conversion below would be undefined.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%q: %w", s, errRange)
	}
	return int(math.Trunc(f)), nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, errNotFinite)
	}
	return f, nil
}

// roundTo rounds to the nearest decimal with the given number of fractional digits.
func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
