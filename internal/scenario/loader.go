package scenario

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const featureExt = ".feature"

// LoadFiles parses the given files. Directories are walked for *.feature
// files in lexical order.
func LoadFiles(paths ...string) ([]*Feature, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), featureExt) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}

	features := make([]*Feature, 0, len(files))
	for _, file := range files {
		f, err := parseFile(file)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

func parseFile(path string) (*Feature, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feature: %w", err)
	}
	defer fh.Close()

	return Parse(fh, filepath.ToSlash(path))
}

// LoadFS parses the files of fsys matching pattern, sorted by name.
func LoadFS(fsys fs.FS, pattern string) ([]*Feature, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(names)

	features := make([]*Feature, 0, len(names))
	for _, name := range names {
		fh, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open feature: %w", err)
		}
		f, err := Parse(fh, name)
		fh.Close()
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}
