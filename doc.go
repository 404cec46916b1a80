// Package ursa provides a concurrent static-analysis engine.
//
// The engine runs analysis routines called bears over the files a section
// selects and comes with pluggable service layers such as:
//
//   - runner  – orchestration of a section run across a worker pool
//   - source  – file collection through glob expressions
//   - filter  – severity and inline-directive result filtering
//   - patch   – optional in-place application of fix suggestions
//
// Ursa is designed to be embedded in host applications.  End-users typically
// interact with the engine via the high-level Service facade exposed by the
// root package:
//
//	srv := ursa.New()
//	srv.RegisterBears(mybear.Descriptor())
//	sections, _ := srv.LoadSections(ctx, "ursa.yaml")
//	hasResults, _ := srv.RunAll(ctx, sections)
//
// For more details see the README and individual sub-packages.
package ursa
