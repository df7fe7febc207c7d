// Package docname implements the sprint document naming convention.
//
// A document name has the form
//
//	<prefix>-<zero-padded id>-<slug><extension>
//
// for example "sprint-03-dashboard-data.md". The numeric id is always the
// second hyphen-delimited component.
//
// # Staging names
//
// Renames over a permutation pass every document through a staging name
// derived from its target name:
//
//	StagingName("sprint-07-dashboard-data.md") // ".sprintctl~sprint-07-dashboard-data.md"
//
// Conforming names start with a lowercase letter and never contain '~', so
// a staging name can never be mistaken for (or collide with) a document
// name that Parse accepts.
package docname
