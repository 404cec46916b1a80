package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ursalint/ursa/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollector_Collect(t *testing.T) {
	dir := t.TempDir()
	aGo := writeFile(t, dir, "a.go", "package a\n")
	bGo := writeFile(t, dir, "sub/b.go", "package b\n")
	writeFile(t, dir, "c.txt", "not go\n")

	collector := New()
	ctx := context.Background()

	files, err := collector.Collect(ctx, []string{filepath.Join(dir, "**", "*.go")}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{aGo, bGo}, files)

	// Directory pattern picks up everything beneath it.
	files, err = collector.Collect(ctx, []string{dir}, nil)
	assert.NoError(t, err)
	assert.Len(t, files, 3)

	// Ignore patterns exclude matches.
	files, err = collector.Collect(ctx, []string{dir}, []string{filepath.Join(dir, "sub")})
	assert.NoError(t, err)
	assert.NotContains(t, files, bGo)

	// Literal file pattern.
	files, err = collector.Collect(ctx, []string{aGo}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{aGo}, files)

	// Unmatched pattern is not an error.
	files, err = collector.Collect(ctx, []string{filepath.Join(dir, "missing", "*.go")}, nil)
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.go", "package a\nvar x = 1\n")
	binary := filepath.Join(dir, "binary.bin")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}

	recorder := logging.NewRecorder()
	table := LoadTable(context.Background(), New(), []string{good, binary, filepath.Join(dir, "gone.go")}, recorder)

	assert.Len(t, table, 1)
	assert.Equal(t, []string{"package a\n", "var x = 1\n"}, table[good])
	// Undecodable and unreadable files are warned about, not fatal.
	assert.True(t, recorder.Contains(logging.LevelWarning, "binary.bin"))
	assert.True(t, recorder.Contains(logging.LevelWarning, "gone.go"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\n"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b"}, SplitLines("a\nb"))
	assert.Empty(t, SplitLines(""))
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("/src/*.go", "/src/a.go"))
	assert.False(t, Match("/src/*.go", "/src/sub/a.go"))
	assert.True(t, Match("/src/**/*.go", "/src/sub/deep/a.go"))
	assert.True(t, Match("/src/a?.go", "/src/ab.go"))
	assert.False(t, Match("/src/a?.go", "/src/a.go"))
}
