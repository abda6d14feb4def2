// Package cli implements the pydepviz command-line interface.
//
// pydepviz is a single-command tool: the root command scans a Python project,
// builds its internal import graph, and renders it. Flags merge with any YAML
// config file before the pipeline runs; see the config package for the
// precedence rules.
//
// All runs support --verbose (-v) for debug-level logging. The logger is
// attached to the command context so the pipeline stages can report progress.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pydepviz/pydepviz/pkg/buildinfo"
	"github.com/pydepviz/pydepviz/pkg/pipeline"
)

// appName is the application name used for the binary and display.
const appName = "pydepviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for the command tree.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.runCommand()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
