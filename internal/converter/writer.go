package converter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/nconklindev/gridloc/internal/types"
)

const (
	// VersionLayout formats the run date as YYYYMMDD.
	VersionLayout = "20060102"
	// UpdatedAtLayout is ISO-8601 with microseconds and the local offset.
	UpdatedAtLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// BuildDocument assembles the artifact for a run that started at runAt.
func BuildDocument(locations []types.Location, runAt time.Time) types.Document {
	if locations == nil {
		locations = []types.Location{}
	}
	return types.Document{
		Version:   runAt.Format(VersionLayout),
		UpdatedAt: runAt.Format(UpdatedAtLayout),
		Count:     len(locations),
		Locations: locations,
	}
}

// EncodeDocument renders doc as indented UTF-8 JSON with a trailing newline.
// Hangul is written as-is, not as \u escapes.
func EncodeDocument(doc types.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes doc to path, creating parent directories and replacing
// any previous file. It returns the number of bytes written.
func WriteDocument(path string, doc types.Document) (int64, error) {
	data, err := EncodeDocument(doc)
	if err != nil {
		return 0, err
	}
	if err := writeFile(path, data); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// WriteVersion writes the bare version string to path.
func WriteVersion(path, version string) error {
	return writeFile(path, []byte(version))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
