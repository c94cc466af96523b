package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipDirs = map[string]bool{
	".git":         true,
	".idea":        true,
	".suitelint":   true,
	"node_modules": true,
	"target":       true,
	"build":        true,
	"out":          true,
}

// FileScanner implements domain.SuiteScanner by walking the filesystem for
// XML files.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Discover expands the given paths into a sorted, deduplicated list of XML
// files. A path naming a file is taken as-is; a directory is walked
// recursively, skipping build output and excluded directories.
func (s *FileScanner) Discover(paths []string, excludes []string) ([]string, error) {
	extraSkip := make(map[string]bool, len(excludes))
	for _, p := range excludes {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	seen := make(map[string]bool)
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}

		if !info.IsDir() {
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirs[d.Name()] || extraSkip[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(d.Name()), ".xml") {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
