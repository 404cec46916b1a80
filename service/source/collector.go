// Package source discovers the files a section analyzes and loads them into
// the in-memory file table shared by every worker.
package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/viant/afs"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"

	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/model/bear"
)

// Collector resolves path patterns against a file system.
type Collector struct {
	fs afs.Service
}

// New creates a collector over the default abstract file system.
func New() *Collector {
	return &Collector{fs: afs.New()}
}

// Collect expands the file patterns, removes everything matched by the
// ignore patterns and returns the remaining file paths in deterministic
// (sorted) order.
func (c *Collector) Collect(ctx context.Context, filePatterns, ignorePatterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var collected []string

	for _, pattern := range filePatterns {
		matches, err := c.expand(ctx, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to expand pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] || ignored(match, ignorePatterns) {
				continue
			}
			seen[match] = true
			collected = append(collected, match)
		}
	}
	sort.Strings(collected)
	return collected, nil
}

// expand resolves one pattern to the files beneath it.
func (c *Collector) expand(ctx context.Context, pattern string) ([]string, error) {
	base, hasGlob := globBase(pattern)
	if !hasGlob {
		object, err := c.fs.Object(ctx, pattern)
		if err != nil || object == nil {
			// Unmatched literal patterns yield no files, same as an
			// unmatched glob.
			return nil, nil
		}
		if !object.IsDir() {
			return []string{pattern}, nil
		}
		base = pattern
	}

	objects, err := c.fs.List(ctx, base, option.NewRecursive(true))
	if err != nil {
		// A pattern rooted in a non-existent directory matches nothing.
		return nil, nil
	}
	var matches []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		path := url.Path(object.URL())
		if !hasGlob || Match(pattern, path) {
			matches = append(matches, path)
		}
	}
	return matches, nil
}

// LoadTable reads every file into the table. Content that does not decode as
// text is skipped with a warning on the sink; this is never fatal.
func LoadTable(ctx context.Context, collector *Collector, filenames []string, sink logging.Sink) bear.FileTable {
	table := make(bear.FileTable, len(filenames))
	for _, filename := range filenames {
		data, err := collector.fs.DownloadWithURL(ctx, filename)
		if err != nil {
			warn(sink, fmt.Sprintf("Failed to read file '%s'. Leaving it out.", filename))
			continue
		}
		if !utf8.Valid(data) {
			warn(sink, fmt.Sprintf("Failed to read file '%s'. It seems to contain non-unicode characters. Leaving it out.", filename))
			continue
		}
		table[filename] = SplitLines(string(data))
	}
	return table
}

// SplitLines splits content into lines, each keeping its trailing newline.
// Line N of the file is element N-1.
func SplitLines(content string) []string {
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func warn(sink logging.Sink, message string) {
	if sink == nil {
		return
	}
	sink.Log(logging.Entry{Level: logging.LevelWarning, Message: message, Time: time.Now()})
}

func ignored(path string, ignorePatterns []string) bool {
	for _, pattern := range ignorePatterns {
		if Match(pattern, path) || strings.HasPrefix(path, strings.TrimSuffix(pattern, "/")+"/") {
			return true
		}
	}
	return false
}
