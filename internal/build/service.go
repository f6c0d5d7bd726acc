package build

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/lint"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Request contains all inputs required to execute a run.
type Request struct {
	// Project is the loaded project file.
	Project *config.Project

	// OutputDir overrides the project's output directory when non-empty.
	OutputDir string

	// Options provides optional run behavior modifiers.
	Options Options
}

// Options provides optional configuration for run behavior.
type Options struct {
	// SkipContent disables the content scan. Checks that need documents are
	// skipped and autogenerated sidebars cannot be built.
	SkipContent bool

	// DryRun runs every stage except writing output files.
	DryRun bool

	// SkipRender stops after linting, as `validate` does.
	SkipRender bool

	// Lint configures the linter. Project-level disabled rules are merged in.
	Lint lint.Config
}

// Result contains the outcome of a run.
type Result struct {
	// Status indicates overall run outcome.
	Status Status

	// Sidebars is the declared set followed by autogenerated sidebars.
	Sidebars *nav.SidebarSet

	// Index is the scanned content, nil when the scan was skipped.
	Index *content.Index

	// Lint holds the issues found. Nil if the run failed before linting.
	Lint *lint.Result

	// Written lists the output files, in format order.
	Written []string

	// Duration is the total run time.
	Duration time.Duration

	// StartTime is when the run started.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time
}

// Status represents the outcome of a run.
type Status string

const (
	// StatusSuccess indicates the run completed without issues.
	StatusSuccess Status = "success"

	// StatusWarning indicates the run completed with lint warnings.
	StatusWarning Status = "warning"

	// StatusFailed indicates the run encountered an error.
	StatusFailed Status = "failed"

	// StatusCanceled indicates the run was canceled.
	StatusCanceled Status = "canceled"
)

// IsSuccess returns true if the run produced usable output.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusWarning
}
