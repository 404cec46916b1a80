// Package patch parses and applies the unified-diff fix suggestions bears
// attach to their results, snapshotting every touched file so a failed batch
// rolls back cleanly.
package patch
