// Package model contains the in-memory representation of analysis
// definitions and findings used by the engine.
//
// A run is typically configured from a YAML document into the structures
// defined in the `section`, `bear` and `result` sub-packages.  The root
// model package simply aggregates those building blocks so that they can be
// referenced from other parts of the code base with a single import.
package model
