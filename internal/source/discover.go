// Package source locates JSONL files and reads their lines.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Extension is the file suffix that marks a JSONL file.
const Extension = ".jsonl"

// ErrSourceUnavailable is returned when the scan root cannot be read.
// It is the only error that aborts a scan.
var ErrSourceUnavailable = errors.New("source unavailable")

// File is a candidate JSONL file.
type File struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Discover walks root recursively and returns the regular *.jsonl files,
// newest first by modification time, capped at maxFiles (<= 0 for no cap).
// Files with equal modification times are ordered by path.
func Discover(root string, maxFiles int) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceUnavailable, root)
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skipping unreadable path",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			return nil
		}
		if !strings.HasSuffix(d.Name(), Extension) {
			return nil
		}

		// Stat follows symlinks so linked files are included.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			return nil
		}
		files = append(files, File{Path: path, Size: fi.Size(), ModTime: fi.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Path < files[j].Path
	})

	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}
	return files, nil
}
