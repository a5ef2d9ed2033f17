package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFeature writes a .feature file under dir and returns its path.
// Leading tabs on each line are stripped so callers can indent raw strings.
func WriteFeature(t testing.TB, dir, name, text string) string {
	t.Helper()

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, "\t")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("writing feature %s: %v", path, err)
	}
	return path
}
