// Package cli provides the vizchat command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"VizChat/internal/config"
)

// Version is set at build time
var Version = "dev"

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates the CLI with defaults read from the environment and .env.
func New() *App {
	app := &App{
		cfg:    config.Load(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "vizchat",
		Short: "Chat your way to interactive charts",
		Long: `vizchat turns plain-language chart requests into interactive HTML charts.

Ask for a chart in the chat and get one drawn from sample data, or load a
CSV, TSV or XLSX file and chart your own columns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.cfg.Validate()
		},
	}

	flags := app.root.PersistentFlags()
	flags.StringVar(&app.cfg.DBPath, "db", app.cfg.DBPath, "SQLite session database")
	flags.StringVar(&app.cfg.LogDir, "log-dir", app.cfg.LogDir, "Directory for logs, traces and metrics")
	flags.StringVar(&app.cfg.OutputDir, "output-dir", app.cfg.OutputDir, "Directory for rendered charts")
	flags.StringVar(&app.cfg.StyleFile, "style", app.cfg.StyleFile, "YAML file with chart style overrides")
	flags.BoolVar(&app.cfg.Debug, "debug", app.cfg.Debug, "Enable debug logging")
	flags.BoolVar(&app.cfg.Telemetry, "telemetry", app.cfg.Telemetry, "Write traces and metrics to the log directory")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newChatCmd(),
		app.newServeCmd(),
		app.newRenderCmd(),
		app.newInspectCmd(),
	)

	return app
}

// WithIO sets custom input and output streams.
func (a *App) WithIO(stdin io.Reader, stdout, stderr io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetIn(stdin)
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments.
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "vizchat version %s\n", Version)
		},
	}
}
