// Package runner is the execution core: it fans bear work out across a
// bounded pool of workers, collects findings through shared result stores
// and a control queue, filters them by severity and ignore ranges and
// reports whether any finding survived.
package runner
