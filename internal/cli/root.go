package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pydepviz/pydepviz/pkg/config"
	"github.com/pydepviz/pydepviz/pkg/errors"
)

// runCommand creates the root command that runs the whole pipeline.
func (c *CLI) runCommand() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   appName + " [flags]",
		Short: "Visualize the internal import structure of a Python project",
		Long: `pydepviz scans a Python project, extracts the import relationships
between its own modules, and renders them as a diagram.

Third-party and standard-library imports are ignored; only imports that
resolve to modules inside the project appear in the graph. Modules can be
grouped into clusters by path prefix via a YAML config file.

By default arrows point from the imported module to the one importing it,
so the diagram reads as "provides for"; use --normal-arrows to flip them.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := LogInfo
			if flags.Verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ProjectRoot, "project-root", "", "project root directory (default: discovered from the working directory)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", fmt.Sprintf("output file, extension selects the format (default %q)", config.DefaultOutput+".svg"))
	cmd.Flags().StringVar(&flags.RootPackage, "root-package", "", "top-level package name (default: auto-detected)")
	cmd.Flags().StringVarP(&flags.Direction, "direction", "d", "", "graph direction: TB, LR, BT, RL (default TB)")
	cmd.Flags().StringVarP(&flags.Engine, "engine", "e", "", "layout engine: dot, neato, fdp, twopi, circo (default dot)")
	cmd.Flags().BoolVar(&flags.NormalArrows, "normal-arrows", false, "point arrows from importer to imported")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "YAML config file (default: deps.yml and friends in the working directory)")
	cmd.Flags().BoolVar(&flags.KeepDot, "keep-dot", false, "also write the DOT source next to the image")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

// run loads the effective settings and executes the pipeline.
func (c *CLI) run(cmd *cobra.Command, flags config.Flags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	settings, err := config.Load(flags)
	if err != nil {
		return c.reportError(err, flags.Verbose)
	}

	logger.Debug("effective settings",
		"project_root", settings.ProjectRoot,
		"root_package", settings.RootPackage,
		"output", settings.Output,
		"direction", settings.Direction,
		"engine", settings.Engine)

	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Analyzing imports...")

	runner := c.newRunner()
	runner.OnStage = func(stage string) { spinner.SetMessage(stage + "...") }

	result, err := runner.Execute(ctx, settings)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return c.reportError(err, flags.Verbose)
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Analyzed %d modules", result.Stats.ModuleCount))

	if result.Stats.ParseFailures > 0 {
		printWarning("%d file(s) could not be parsed and were skipped", result.Stats.ParseFailures)
	}

	printSuccess("Diagram written")
	printFile(result.OutputPath)
	printStats(result.Stats.FileCount, result.Stats.ModuleCount, result.Stats.EdgeCount)

	return nil
}

// reportError returns the error to surface to the user. Verbose mode keeps
// the full chain; otherwise only the user-facing message is shown.
func (c *CLI) reportError(err error, verbose bool) error {
	if verbose {
		return err
	}
	return fmt.Errorf("%s", errors.UserMessage(err))
}
