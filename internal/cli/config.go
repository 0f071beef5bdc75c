package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xabinapal/desknotify/internal/backend"
	"github.com/xabinapal/desknotify/internal/config"
)

// configPathOutput represents config path output for JSON.
type configPathOutput struct {
	ConfigFile   string `json:"config_file"`
	ConfigDir    string `json:"config_dir"`
	ConfigExists bool   `json:"config_exists"`
}

// configShowOutput represents config show output for JSON.
type configShowOutput struct {
	Backend  string        `json:"backend"`
	Resolved string        `json:"resolved_backend"`
	AppName  string        `json:"app_name"`
	Timeout  string        `json:"timeout"`
	Log      configShowLog `json:"log"`
	File     string        `json:"file"`
}

type configShowLog struct {
	Level   string `json:"level"`
	JSON    bool   `json:"json"`
	File    string `json:"file,omitempty"`
	Journal bool   `json:"journal"`
}

// validationResult represents validation output for JSON.
type validationResult struct {
	Valid  bool   `json:"valid"`
	File   string `json:"file"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// newConfigCmd creates the config command group.
func (cli *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage desknotify configuration",
		Long: `Manage desknotify configuration files and settings.

Settings are read from the configuration file and can be overridden by
DESKNOTIFY_* environment variables, e.g. DESKNOTIFY_BACKEND=notify-send
or DESKNOTIFY_LOG_LEVEL=debug.

Use 'desknotify config init' to write a configuration file with defaults.
Use 'desknotify config path' to see configuration file locations.
Use 'desknotify config show' to print the effective configuration.`,
	}

	cmd.AddCommand(
		cli.newConfigInitCmd(),
		cli.newConfigPathCmd(),
		cli.newConfigShowCmd(),
		cli.newConfigValidateCmd(),
	)

	return cmd
}

// newConfigInitCmd creates the config init command.
func (cli *CLI) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default settings",
		Long: `Write a configuration file with default settings.

The file is written as YAML to the default location, or to --config.
An existing file is left alone unless --force is given.

Examples:
  desknotify config init
  desknotify config init --backend notify-send --force`,
		Annotations: map[string]string{annotationSkipInit: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cli.configPath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			cfg.SetFilePath(path)
			if cli.backendFlag != "" {
				cfg.Backend = cli.backendFlag
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := cfg.Save(); err != nil {
				return err
			}

			out := configPathOutput{
				ConfigFile:   path,
				ConfigDir:    filepath.Dir(path),
				ConfigExists: true,
			}
			return cli.output().Write(out, func(w io.Writer) {
				fmt.Fprintf(w, "Configuration written to %s\n", path)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

// newConfigPathCmd creates the config path command.
func (cli *CLI) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Show configuration file locations",
		Annotations: map[string]string{annotationSkipInit: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cli.configPath()
			_, err := os.Stat(path)

			out := configPathOutput{
				ConfigFile:   path,
				ConfigDir:    filepath.Dir(path),
				ConfigExists: err == nil,
			}

			return cli.output().Write(out, func(w io.Writer) {
				fmt.Fprintf(w, "Config file: %s", out.ConfigFile)
				if !out.ConfigExists {
					fmt.Fprint(w, " (not found)")
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Config dir:  %s\n", out.ConfigDir)
			})
		},
	}
}

// newConfigShowCmd creates the config show command.
func (cli *CLI) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the configuration file and
DESKNOTIFY_* environment variables have been merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cli.Config

			out := configShowOutput{
				Backend:  cfg.Backend,
				Resolved: backend.Resolve(cfg.Backend),
				AppName:  cfg.AppName,
				Timeout:  cfg.Timeout.String(),
				Log: configShowLog{
					Level:   cfg.Log.Level,
					JSON:    cfg.Log.JSON,
					File:    cfg.Log.File,
					Journal: cfg.Log.Journal,
				},
				File: cfg.FilePath(),
			}

			return cli.output().Write(out, func(w io.Writer) {
				data, err := cfg.Marshal()
				if err != nil {
					fmt.Fprintf(w, "failed to render configuration: %v\n", err)
					return
				}
				fmt.Fprintf(w, "# %s\n", out.File)
				_, _ = w.Write(data)
			})
		},
	}
}

// newConfigValidateCmd creates the config validate command.
func (cli *CLI) newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration file for errors",
		Annotations: map[string]string{annotationSkipInit: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cli.configPath()
			_, statErr := os.Stat(path)

			result := validationResult{
				Valid:  true,
				File:   path,
				Exists: statErr == nil,
			}

			_, loadErr := config.LoadFrom(path)
			if loadErr != nil {
				result.Valid = false
				result.Error = loadErr.Error()
			}

			writeErr := cli.output().Write(result, func(w io.Writer) {
				switch {
				case !result.Valid:
					fmt.Fprintf(w, "%s is invalid: %s\n", path, result.Error)
				case !result.Exists:
					fmt.Fprintf(w, "%s not found; defaults are valid\n", path)
				default:
					fmt.Fprintf(w, "%s is valid\n", path)
				}
			})
			if writeErr != nil {
				return writeErr
			}

			if !result.Valid {
				return errors.New("configuration is invalid")
			}
			return nil
		},
	}
}
