package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// lockFilePrefix marks the owner files Office leaves next to an open workbook.
const lockFilePrefix = "~$"

// FindLatestInput returns the most recently modified file in dir whose
// extension is one of exts (compared case-insensitively). Only dir itself is
// scanned. Equal modification times are broken by name, last wins.
func FindLatestInput(dir string, exts []string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputDirMissing, dir)
		}
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInputDirMissing, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	var (
		best     string
		bestTime time.Time
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, lockFilePrefix) {
			continue
		}
		if !allowed[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		mod := fi.ModTime()
		if best == "" || mod.After(bestTime) || (mod.Equal(bestTime) && name > best) {
			best = name
			bestTime = mod
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w in %s (looking for %s)", ErrNoInputFile, dir, strings.Join(exts, ", "))
	}

	return filepath.Join(dir, best), nil
}
