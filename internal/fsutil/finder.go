// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CollectFilesByExtension resolves each given path to a flat, de-duplicated
// list of files with the given extension. A path may be a single file or a
// directory, which is walked recursively. Paths that do not exist are
// skipped rather than treated as errors, so optional search locations can be
// passed unconditionally.
func CollectFilesByExtension(paths []string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			files = append(files, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if strings.HasSuffix(path, extension) {
				add(path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
