package converter

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nconklindev/gridloc/internal/logger"
	"github.com/nconklindev/gridloc/internal/metrics"
	"github.com/nconklindev/gridloc/internal/types"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()

	fc := clockwork.NewFakeClockAt(time.Date(2024, time.March, 5, 14, 30, 15, 0, kst))
	SetClock(fc)
	t.Cleanup(func() { SetClock(nil) })
	return fc
}

func testOptions(dir, input string) Options {
	return Options{
		InputFile:     input,
		OutputFile:    filepath.Join(dir, "processed", "location.json"),
		VersionFile:   filepath.Join(dir, "processed", "location_version.txt"),
		Columns:       DefaultColumns,
		NormalizeText: true,
		SkipLogLimit:  DefaultSkipLogLimit,
		Logger:        logger.Nop(),
	}
}

func readDocument(t *testing.T, path string) types.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc types.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestConvert_XLSX(t *testing.T) {
	fakeClock(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.xlsx")
	writeXLSX(t, input, "", gridRecords())

	opts := testOptions(dir, input)
	opts.Metrics = metrics.New()

	result, err := Convert(opts)

	require.NoError(t, err)
	assert.Equal(t, "20240305", result.Version)
	assert.Equal(t, "Sheet1", result.Sheet)
	assert.Equal(t, 4, result.RowsProcessed)
	assert.Equal(t, 2, result.Records)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, map[string]int{"blank_text": 1, "bad_number": 1}, result.SkippedBy)
	assert.Len(t, result.Columns, 8)

	doc := readDocument(t, opts.OutputFile)
	assert.Equal(t, "20240305", doc.Version)
	assert.Equal(t, "2024-03-05T14:30:15.000000+09:00", doc.UpdatedAt)
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Locations, 2)
	assert.Equal(t, types.Location{
		EmdCode: "11010", City: "서울특별시", District: "종로구", Neighborhood: "청운효자동",
		GridX: 60, GridY: 127, Longitude: 126.9712345, Latitude: 37.5825678,
	}, doc.Locations[0])
	assert.Equal(t, "중앙동", doc.Locations[1].Neighborhood)

	info, err := os.Stat(opts.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), result.OutputBytes)

	version, err := os.ReadFile(opts.VersionFile)
	require.NoError(t, err)
	assert.Equal(t, doc.Version, string(version))

	assert.InDelta(t, 4, testutil.ToFloat64(opts.Metrics.RowsRead), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(opts.Metrics.RecordsWritten), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(opts.Metrics.RowsSkipped.WithLabelValues("bad_number")), 0)
}

func TestConvert_RerunOnlyChangesTimestamp(t *testing.T) {
	fc := fakeClock(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.csv")
	writeCSV(t, input, gridRecords())
	opts := testOptions(dir, input)

	_, err := Convert(opts)
	require.NoError(t, err)
	first := readDocument(t, opts.OutputFile)

	fc.Advance(90 * time.Minute)
	_, err = Convert(opts)
	require.NoError(t, err)
	second := readDocument(t, opts.OutputFile)

	assert.Equal(t, first.Locations, second.Locations)
	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, "2024-03-05T16:00:15.000000+09:00", second.UpdatedAt)
	assert.NotEqual(t, first.UpdatedAt, second.UpdatedAt)
}

func TestConvert_InsufficientColumnsWritesNothing(t *testing.T) {
	fakeClock(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "narrow.csv")
	narrow := make([][]string, 0, 3)
	for _, row := range gridRecords()[:3] {
		narrow = append(narrow, row[:10])
	}
	writeCSV(t, input, narrow)
	opts := testOptions(dir, input)

	result, err := Convert(opts)

	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrInsufficientColumns)
	assert.True(t, IsPrecondition(err))

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "extract", convErr.Stage)

	assert.NoFileExists(t, opts.OutputFile)
	assert.NoFileExists(t, opts.VersionFile)
}

func TestConvert_ReadFailure(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir, filepath.Join(dir, "missing.xlsx"))

	_, err := Convert(opts)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "read", convErr.Stage)
	assert.False(t, IsPrecondition(err))
	assert.NoFileExists(t, opts.OutputFile)
}

func TestConvert_LogsLimitedSkips(t *testing.T) {
	fakeClock(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.csv")

	records := [][]string{gridHeader}
	for range 5 {
		records = append(records, gridRow("11020", "서울특별시", "", "사직동", "60", "127", "126.97", "37.57"))
	}
	writeCSV(t, input, records)

	var buf bytes.Buffer
	opts := testOptions(dir, input)
	opts.SkipLogLimit = 2
	opts.Logger = logger.New(logger.Options{Level: "warn", Format: "json", Writer: &buf})

	result, err := Convert(opts)

	require.NoError(t, err)
	assert.Equal(t, 5, result.Skipped)
	assert.Equal(t, 0, result.Records)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"message":"row skipped"`)))

	doc := readDocument(t, opts.OutputFile)
	assert.Empty(t, doc.Locations)
	assert.Equal(t, 0, doc.Count)
}

func TestConversionError(t *testing.T) {
	err := newConversionError("write", "processed/location.json", os.ErrPermission)

	assert.Equal(t, "write processed/location.json: permission denied", err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)

	noPath := &ConversionError{Stage: "discover", Err: errors.New("boom")}
	assert.Equal(t, "discover: boom", noPath.Error())
}
