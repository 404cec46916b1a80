// Package policy provides optional declarative rules that can be applied on
// top of a run – for example to restrict which bears a section executes
// without editing the section itself.
package policy
