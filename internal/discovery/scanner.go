package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Scanner scans for spec files in a directory
type Scanner struct {
	skipDirs   map[string]bool
	extensions map[string]bool
}

// NewScanner creates a Scanner that skips the given directory names and, when
// extensions is non-empty, keeps only files with one of those extensions
func NewScanner(skipDirs []string, extensions []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	extMap := make(map[string]bool)
	for _, ext := range extensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[ext] = true
	}
	return &Scanner{skipDirs: skipMap, extensions: extMap}
}

// Scan finds all spec files under root, sorted lexicographically so runs do
// not depend on the order the filesystem returns entries in
func (s *Scanner) Scan(root string) ([]string, error) {
	var specFiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("spec path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("spec path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			// Skip hidden directories
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || !d.Type().IsRegular() {
			return nil
		}
		if len(s.extensions) > 0 && !s.extensions[filepath.Ext(name)] {
			return nil
		}
		specFiles = append(specFiles, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", root)
	}

	sort.Strings(specFiles)
	return specFiles, nil
}
