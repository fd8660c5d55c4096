// Package overlay loads attribute overlays: JSON or YAML documents that
// override the inspect tag directives of declared types without touching
// their source.
//
// A document maps type names to field and variant overrides:
//
//	types:
//	  Profile:
//	    fields:
//	      Age: {label: Years}
//	      Secret: {skip: true}
//	  example.com/shapes.Disc:
//	    variant: {display: Solid disc}
//
// Types are matched by package-qualified name first, then by bare name. A
// Store satisfies model.Overrides and is passed to generator.WithOverrides.
package overlay
