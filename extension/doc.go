// Package extension holds the bear registry. Bears register a descriptor
// under their name at init time; sections then pick bears by name without
// linking against their packages directly.
package extension
