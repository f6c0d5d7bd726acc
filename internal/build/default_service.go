package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/docnav/internal/autogen"
	"git.home.luguber.info/inful/docnav/internal/content"
	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/lint"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// Service is the standard run pipeline: content → autogen → lint → render.
type Service struct {
	renderer *render.Renderer
	recorder metrics.Recorder
	scan     func(dir string) (*content.Index, error)
}

// NewService creates a Service with the default renderer and no metrics.
func NewService() *Service {
	return &Service{
		renderer: render.New(),
		recorder: metrics.NoopRecorder{},
		scan:     content.ScanDir,
	}
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithRenderer allows injecting a renderer (e.g. with a fixed clock for tests).
func (s *Service) WithRenderer(r *render.Renderer) *Service {
	s.renderer = r
	return s
}

// Run executes the pipeline. A returned error always comes with a Result
// whose Status is StatusFailed or StatusCanceled.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	result := &Result{StartTime: startTime}

	finish := func(status Status, err error) (*Result, error) {
		result.Status = status
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		s.recorder.IncRunOutcome(outcomeFor(status))
		s.recorder.ObserveRunDuration(result.Duration)
		return result, err
	}

	if req.Project == nil {
		return finish(StatusFailed, derrors.ConfigRequired("project"))
	}
	p := req.Project
	result.Sidebars = p.Sidebars

	// Stage 1: scan content
	if !req.Options.SkipContent {
		stageStart := time.Now()
		dir := p.ContentDir()
		if _, err := os.Stat(dir); os.IsNotExist(err) && len(p.Autogen) == 0 {
			slog.WarnContext(ctx, "Content directory not found; document references are not checked", logfields.Path(dir))
		} else {
			idx, err := s.scan(dir)
			if err != nil {
				s.recorder.IncStageResult("content", metrics.ResultFatal)
				return finish(StatusFailed, fmt.Errorf("%w: %w", ErrContent, derrors.ContentScanFailed(dir, err)))
			}
			result.Index = idx
			s.recorder.SetDocuments(idx.Len())
			slog.InfoContext(ctx, "Content scanned", logfields.Path(dir), logfields.Count(idx.Len()))
		}
		s.recorder.ObserveStageDuration("content", time.Since(stageStart))
		s.recorder.IncStageResult("content", metrics.ResultSuccess)
	}
	if ctx.Err() != nil {
		return finish(StatusCanceled, ctx.Err())
	}

	// Stage 2: autogenerated sidebars
	if len(p.Autogen) > 0 {
		stageStart := time.Now()
		if result.Index == nil {
			s.recorder.IncStageResult("autogen", metrics.ResultFatal)
			return finish(StatusFailed, fmt.Errorf("%w: %w", ErrContent,
				derrors.New(derrors.CategoryContent, derrors.SeverityFatal, "autogenerated sidebars need the content directory").
					WithContext("dir", p.ContentDir())))
		}
		decls := make([]autogen.Options, len(p.Autogen))
		for i, a := range p.Autogen {
			decls[i] = autogen.Options{Name: a.Name, Dir: a.Dir}
		}
		set, err := autogen.Expand(p.Sidebars, decls, result.Index)
		if err != nil {
			s.recorder.IncStageResult("autogen", metrics.ResultFatal)
			return finish(StatusFailed, fmt.Errorf("%w: %w", ErrContent, err))
		}
		result.Sidebars = set
		s.recorder.ObserveStageDuration("autogen", time.Since(stageStart))
		s.recorder.IncStageResult("autogen", metrics.ResultSuccess)
		for _, d := range decls {
			if sb, ok := set.Get(d.Name); ok {
				slog.DebugContext(ctx, "Sidebar generated", logfields.Sidebar(d.Name), logfields.Path(d.Dir), logfields.Count(len(sb.DocumentIDs())))
			}
		}
	}
	s.recorder.SetSidebars(result.Sidebars.Len())

	// Stage 3: lint
	stageStart := time.Now()
	lintCfg := req.Options.Lint
	lintCfg.Disable = append(append([]string(nil), lintCfg.Disable...), p.Lint.Disable...)
	lr := lint.NewLinter(&lintCfg).Lint(lint.Input{Site: &p.Site, Sidebars: result.Sidebars, Index: result.Index})
	result.Lint = lr
	s.recorder.ObserveStageDuration("lint", time.Since(stageStart))
	s.recorder.SetLintIssues("error", lr.ErrorCount())
	s.recorder.SetLintIssues("warning", lr.WarningCount())
	s.recorder.SetLintIssues("info", lr.InfoCount())
	slog.InfoContext(ctx, "Navigation checked",
		logfields.Count(result.Sidebars.Len()),
		slog.Int("errors", lr.ErrorCount()),
		slog.Int("warnings", lr.WarningCount()))

	if lr.HasErrors() {
		s.recorder.IncStageResult("lint", metrics.ResultFatal)
		return finish(StatusFailed, fmt.Errorf("%w: %d error(s)", ErrLint, lr.ErrorCount()))
	}
	status := StatusSuccess
	if lr.HasWarnings() {
		status = StatusWarning
		s.recorder.IncStageResult("lint", metrics.ResultWarning)
	} else {
		s.recorder.IncStageResult("lint", metrics.ResultSuccess)
	}

	if req.Options.SkipRender {
		return finish(status, nil)
	}
	if ctx.Err() != nil {
		return finish(StatusCanceled, ctx.Err())
	}

	// Stage 4: render
	stageStart = time.Now()
	outDir := req.OutputDir
	if outDir == "" {
		outDir = p.OutputDir()
	}
	if req.Options.DryRun {
		for _, f := range p.Output.Formats {
			slog.InfoContext(ctx, "Dry run: would write", logfields.Path(outDir), logfields.Format(string(f)))
		}
		return finish(status, nil)
	}
	written, err := s.renderer.Write(ctx, p, result.Sidebars, outDir)
	result.Written = written
	s.recorder.ObserveStageDuration("render", time.Since(stageStart))
	if err != nil {
		if ctx.Err() != nil {
			s.recorder.IncStageResult("render", metrics.ResultCanceled)
			return finish(StatusCanceled, err)
		}
		s.recorder.IncStageResult("render", metrics.ResultFatal)
		return finish(StatusFailed, fmt.Errorf("%w: %w", ErrRender, err))
	}
	s.recorder.IncStageResult("render", metrics.ResultSuccess)
	slog.InfoContext(ctx, "Output written", logfields.Path(outDir), logfields.Count(len(written)))

	return finish(status, nil)
}

func outcomeFor(s Status) metrics.RunOutcomeLabel {
	switch s {
	case StatusSuccess:
		return metrics.RunOutcomeSuccess
	case StatusWarning:
		return metrics.RunOutcomeWarning
	case StatusCanceled:
		return metrics.RunOutcomeCanceled
	default:
		return metrics.RunOutcomeFailed
	}
}
