// Package template defines the template seam HTML hosts render pages through.
// The pongo subpackage provides the default pongo2-backed engine.
package template
