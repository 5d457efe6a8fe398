package converter

import (
	"github.com/nconklindev/gridloc/internal/logger"
	"github.com/nconklindev/gridloc/internal/metrics"
	"github.com/nconklindev/gridloc/internal/types"
)

// DefaultSkipLogLimit is how many leading data rows get a diagnostic line when skipped.
const DefaultSkipLogLimit = 10

// Options configures one conversion run.
type Options struct {
	InputFile     string
	OutputFile    string
	VersionFile   string
	Sheet         string
	Columns       ColumnMap
	NormalizeText bool
	// SkipLogLimit logs skip reasons for data rows with an index below it.
	SkipLogLimit int
	Logger       logger.Logger
	Metrics      *metrics.Recorder
	// Progress receives fractions in [0, 1]; sends never block.
	Progress chan<- float64
}

// Convert reads opts.InputFile, extracts location records and writes the JSON
// artifact and version file. Nothing is written when reading or column
// validation fails.
func Convert(opts Options) (*types.ConversionResult, error) {
	runAt := clock.Now()
	log := opts.Logger
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Columns == (ColumnMap{}) {
		opts.Columns = DefaultColumns
	}

	log.Info().Str("file", opts.InputFile).Msg("reading spreadsheet")
	data, err := ReadFileData(opts.InputFile, opts.Sheet)
	if err != nil {
		return nil, newConversionError("read", opts.InputFile, err)
	}
	log.Info().
		Str("sheet", data.Sheet).
		Int("header_row", data.HeaderRow).
		Int("rows", len(data.Rows)).
		Int("columns", data.Width()).
		Msg("spreadsheet loaded")

	bindings := opts.Columns.Bindings(data.Headers)
	for _, b := range bindings {
		log.Info().Str("field", b.Field).Int("column", b.Index).Str("header", b.Header).Msg("column mapping")
	}

	extractor := Extractor{Columns: opts.Columns, NormalizeText: opts.NormalizeText}
	extraction, err := extractor.All(data, opts.Progress, func(idx int, r RowResult) {
		if idx < opts.SkipLogLimit {
			log.Warn().Int("row", idx).Str("reason", string(r.Reason)).Str("field", r.Field).Err(r.Err).Msg("row skipped")
		}
	})
	if err != nil {
		return nil, newConversionError("extract", opts.InputFile, err)
	}

	doc := BuildDocument(extraction.Locations, runAt)

	size, err := WriteDocument(opts.OutputFile, doc)
	if err != nil {
		return nil, newConversionError("write", opts.OutputFile, err)
	}
	if err := WriteVersion(opts.VersionFile, doc.Version); err != nil {
		return nil, newConversionError("write", opts.VersionFile, err)
	}

	duration := clock.Since(runAt)

	opts.Metrics.RowsRead.Add(float64(extraction.RowsRead))
	opts.Metrics.RecordsWritten.Add(float64(doc.Count))
	skippedBy := make(map[string]int, len(extraction.ByReason))
	for reason, n := range extraction.ByReason {
		opts.Metrics.RowsSkipped.WithLabelValues(string(reason)).Add(float64(n))
		skippedBy[string(reason)] = n
	}
	opts.Metrics.ObserveSuccess(duration, size, clock.Now())

	log.Info().
		Str("version", doc.Version).
		Int("records", doc.Count).
		Int("skipped", extraction.Skipped).
		Int64("bytes", size).
		Dur("took", duration).
		Msg("conversion completed")

	return &types.ConversionResult{
		InputFile:     opts.InputFile,
		OutputFile:    opts.OutputFile,
		VersionFile:   opts.VersionFile,
		Sheet:         data.Sheet,
		Version:       doc.Version,
		Columns:       bindings,
		RowsProcessed: extraction.RowsRead,
		Records:       doc.Count,
		Skipped:       extraction.Skipped,
		SkippedBy:     skippedBy,
		OutputBytes:   size,
		Duration:      duration,
	}, nil
}
