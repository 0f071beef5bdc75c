// Package cli provides the command-line interface for desknotify.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xabinapal/desknotify/internal/backend"
	"github.com/xabinapal/desknotify/internal/config"
	"github.com/xabinapal/desknotify/internal/logging"
	"github.com/xabinapal/desknotify/internal/notify"
)

// annotationSkipInit marks commands that run without loading configuration.
const annotationSkipInit = "desknotify/skip-init"

// CLI holds the application state for the CLI.
type CLI struct {
	Config  *config.Config
	Logger  *logging.Logger
	rootCmd *cobra.Command

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// newBackend constructs backends by name. Tests replace it.
	newBackend func(name string, opts backend.Options) (backend.Backend, error)

	// Flags
	configFlag  string
	backendFlag string
	verboseFlag bool
	outputFlag  string
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		newBackend: backend.New,
	}

	cli.rootCmd = &cobra.Command{
		Use:   "desknotify [command]",
		Short: "desknotify - send desktop notifications",
		Long: `desknotify sends desktop notifications through the platform's
notification service.

A notification has a title, a message, an icon and an optional sound.
Anything not given falls back to the defaults: the title "deno_notify"
and the "terminal" icon.

Backends:
  dbus         org.freedesktop.Notifications on the session bus (Linux, BSD)
  notify-send  the libnotify command-line tool
  osascript    AppleScript "display notification" (macOS)
  toast        Windows toast notifications
  beeep        cross-platform fallback`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize(cmd)
		},
	}

	// Global flags
	cli.rootCmd.PersistentFlags().StringVarP(&cli.configFlag, "config", "c", "", "Path to the configuration file")
	cli.rootCmd.PersistentFlags().StringVarP(&cli.backendFlag, "backend", "b", "", "Notification backend (overrides configuration)")
	cli.rootCmd.PersistentFlags().BoolVarP(&cli.verboseFlag, "verbose", "v", false, "Enable verbose output")
	cli.rootCmd.PersistentFlags().StringVarP(&cli.outputFlag, "output", "o", "text", "Output format (text, json)")

	// Add commands
	cli.addCommands()

	return cli
}

// addCommands adds all subcommands to the root command.
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newSendCmd(),
		cli.newBackendsCmd(),
		cli.newDoctorCmd(),
		cli.newConfigCmd(),
		cli.newVersionCmd(),
		cli.newCompletionCmd(),
	)
}

func skipInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipInit] == "true" {
			return true
		}
	}
	return false
}

// configPath returns the file named by --config, or the default location.
func (cli *CLI) configPath() string {
	if cli.configFlag != "" {
		return cli.configFlag
	}
	return config.GetPaths().ConfigFile
}

// initialize loads configuration and sets up logging.
func (cli *CLI) initialize(cmd *cobra.Command) error {
	if _, err := ParseOutputFormat(cli.outputFlag); err != nil {
		return err
	}

	// Skip initialization for certain commands
	if skipInit(cmd) {
		return nil
	}

	cfg, err := config.LoadFrom(cli.configPath())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cli.backendFlag != "" {
		cfg.Backend = cli.backendFlag
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --backend: %w", err)
		}
	}
	cli.Config = cfg

	level, err := logging.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if cli.verboseFlag {
		level = logging.LogLevelDebug
	}

	logger, err := logging.NewLogger(logging.LoggerConfig{
		Level:    level,
		FilePath: cfg.Log.File,
		JSONMode: cfg.Log.JSON,
		Journal:  cfg.Log.Journal,
		Writer:   cli.stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	cli.Logger = logger

	logger.Debug("configuration loaded",
		logging.String("path", cfg.FilePath()),
		logging.String("backend", cfg.Backend),
	)
	return nil
}

// backendOptions returns construction options derived from the configuration.
func (cli *CLI) backendOptions() backend.Options {
	return backend.Options{AppName: cli.Config.AppName}
}

// dispatcher builds a dispatcher for the configured backend.
func (cli *CLI) dispatcher() (*notify.Dispatcher, error) {
	b, err := cli.newBackend(cli.Config.Backend, cli.backendOptions())
	if err != nil {
		return nil, err
	}
	return notify.New(b,
		notify.WithLogger(cli.Logger),
		notify.WithTimeout(cli.Config.Timeout),
	), nil
}

// output returns a writer for the selected --output format.
func (cli *CLI) output() *OutputWriter {
	format, err := ParseOutputFormat(cli.outputFlag)
	if err != nil {
		format = OutputFormatText
	}
	return NewOutputWriter(format, cli.stdout)
}

// Execute runs the CLI. The log file is closed on every return path, since
// cobra skips post-run hooks when a command fails.
func (cli *CLI) Execute(ctx context.Context) error {
	err := cli.rootCmd.ExecuteContext(ctx)
	if closeErr := cli.Logger.Close(); err == nil {
		err = closeErr
	}
	return err
}

// SetArgs overrides the arguments passed to the root command.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}
