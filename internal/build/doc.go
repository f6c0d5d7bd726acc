// Package build provides the canonical docnav run pipeline.
//
// A run scans the content directory, appends autogenerated sidebars, lints the
// result and renders the output files. All execution paths (the CLI commands,
// watch mode, tests) route through Service.
//
// The package also defines sentinel errors for classifying run failures. They
// are wrapped with context at the call site.
package build
