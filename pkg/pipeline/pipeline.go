// Package pipeline runs the complete scan → build → render flow.
//
// The three stages are:
//
//  1. Scan: walk the project tree, parse every Python source file, and
//     resolve project-local import dependencies.
//  2. Build: assemble the deduplicated dependency graph with cluster
//     assignments and edge direction applied.
//  3. Render: emit deterministic DOT and lay it out into the requested
//     output format.
//
// The Runner centralizes this so the CLI stays a thin flag-parsing shell.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pydepviz/pydepviz/pkg/config"
	"github.com/pydepviz/pydepviz/pkg/depgraph"
	"github.com/pydepviz/pydepviz/pkg/render"
	"github.com/pydepviz/pydepviz/pkg/scan"
)

// Stats contains timing and size information for one pipeline run.
type Stats struct {
	FileCount     int
	ModuleCount   int
	EdgeCount     int
	ParseFailures int
	ScanTime      time.Duration
	BuildTime     time.Duration
	RenderTime    time.Duration
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Graph      *depgraph.Graph
	DOT        string
	OutputPath string
	Stats      Stats
}

// Runner executes the pipeline. It is stateless apart from the logger, so a
// single Runner can serve multiple runs.
type Runner struct {
	Logger *log.Logger

	// OnStage, when set, is invoked with a short description as each stage
	// begins. The CLI uses it to keep its progress spinner current.
	OnStage func(description string)
}

// NewRunner creates a runner. A nil logger falls back to the default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs scan → build → render for the given settings.
func (r *Runner) Execute(ctx context.Context, settings config.Settings) (*Result, error) {
	result := &Result{}

	// Stage 1: Scan
	r.enterStage("Scanning Python sources")
	scanStart := time.Now()
	scanner := scan.New(settings.ProjectRoot, settings.RootPackage, r.Logger)
	scanned, err := scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	result.Stats.ScanTime = time.Since(scanStart)
	result.Stats.FileCount = scanned.FileCount
	result.Stats.ModuleCount = len(scanned.Modules)
	result.Stats.ParseFailures = scanned.ParseFailures

	r.Logger.Info("scanned project",
		"files", scanned.FileCount,
		"modules", len(scanned.Modules),
		"duration", result.Stats.ScanTime)

	// Stage 2: Build
	r.enterStage("Building import graph")
	buildStart := time.Now()
	g := depgraph.Build(scanned, depgraph.Options{
		NormalArrows:    settings.NormalArrows,
		ClusterMappings: settings.ClusterMappings,
	})
	result.Graph = g
	result.DOT = render.ToDOT(g, settings.Direction)
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.EdgeCount = len(g.Edges())

	r.Logger.Info("built dependency graph",
		"nodes", len(g.Nodes()),
		"edges", result.Stats.EdgeCount,
		"clusters", len(g.Clusters()),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	r.enterStage("Rendering diagram")
	renderStart := time.Now()
	outPath, err := render.OutputPath(settings.Output)
	if err != nil {
		return nil, err
	}
	err = render.Render(ctx, result.DOT, outPath, render.Options{
		Engine:  settings.Engine,
		KeepDot: settings.KeepDot,
	})
	if err != nil {
		return nil, err
	}
	result.OutputPath = outPath
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered diagram",
		"output", outPath,
		"engine", settings.Engine,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// enterStage reports the start of a pipeline stage to the OnStage hook.
func (r *Runner) enterStage(description string) {
	if r.OnStage != nil {
		r.OnStage(description)
	}
}
