package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the number of files read at once.
const maxConcurrentReads = 8

// Files loads documents from files and directories. A directory contributes
// its *.json, *.yaml and *.yml files in name order; subdirectories are not
// descended into.
type Files struct {
	Paths []string
}

// Name implements Source.
func (f *Files) Name() string {
	return "files " + strings.Join(f.Paths, ", ")
}

// Load implements Source. Files are read concurrently but returned in the
// order of Paths and, within a directory, in name order.
func (f *Files) Load(ctx context.Context) ([]Document, error) {
	files, err := f.expand()
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			docs[i] = Document{Name: file, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Watched returns the paths a watcher should observe.
func (f *Files) Watched() []string {
	return f.Paths
}

func (f *Files) expand() ([]string, error) {
	var files []string
	for _, path := range f.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		var names []string
		for _, entry := range entries {
			if !entry.IsDir() && IsDocument(entry.Name()) {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			files = append(files, filepath.Join(path, name))
		}
	}
	return files, nil
}

// IsDocument reports whether name has a realm document extension.
func IsDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
