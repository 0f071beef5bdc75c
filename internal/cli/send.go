package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xabinapal/desknotify/internal/notify"
)

// sendOutput represents send output for JSON.
type sendOutput struct {
	Sent    bool   `json:"sent"`
	Backend string `json:"backend"`
}

// optionFlags are the send flags that switch a request to the record form.
var optionFlags = []string{"title", "icon-name", "icon-path", "icon-app", "sound"}

// newSendCmd creates the send command.
func (cli *CLI) newSendCmd() *cobra.Command {
	var request string
	var title, iconName, iconPath, iconApp, sound string

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a desktop notification",
		Long: `Send a desktop notification.

With only a message, the notification uses the default title and icon.
Any of --title, --icon-*, or --sound overrides just that field; the rest
keep their defaults. An empty value such as --title "" is sent as given.

A request can also be read from a JSON or YAML document with --request,
using the keys title, message, icon and sound. The icon holds exactly one
of app, path or name. Flags override the document's fields.

Examples:
  # Plain message
  desknotify send "Build finished"

  # Custom title, app icon and sound
  desknotify send --icon-app Terminal --sound Basso "Done"

  # Request document from stdin
  echo '{"message":"Done","icon":{"name":"dialog-information"}}' | desknotify send --request -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := cli.buildInput(cmd, args, request)
			if err != nil {
				return err
			}

			d, err := cli.dispatcher()
			if err != nil {
				return err
			}

			if _, err := d.Dispatch(cmd.Context(), in); err != nil {
				return err
			}

			out := sendOutput{Sent: true, Backend: d.Backend().Name()}
			return cli.output().Write(out, func(w io.Writer) {
				if cli.verboseFlag {
					fmt.Fprintf(w, "Notification sent via %s\n", out.Backend)
				}
			})
		},
	}

	cmd.Flags().StringVar(&request, "request", "", "Read the request from a JSON or YAML file ('-' for stdin)")
	cmd.Flags().StringVarP(&title, "title", "t", notify.DefaultTitle, "Notification title")
	cmd.Flags().StringVar(&iconName, "icon-name", "", "Icon from the desktop icon theme")
	cmd.Flags().StringVar(&iconPath, "icon-path", "", "Icon image file path or file:// URL")
	cmd.Flags().StringVar(&iconApp, "icon-app", "", "Use an application's icon")
	cmd.Flags().StringVarP(&sound, "sound", "s", "", "Sound to play")
	cmd.MarkFlagsMutuallyExclusive("icon-name", "icon-path", "icon-app")

	return cmd
}

// buildInput turns arguments and flags into a request. A lone message maps to
// PlainMessage; a request document or any changed option flag yields Options
// carrying only the fields that were given.
func (cli *CLI) buildInput(cmd *cobra.Command, args []string, request string) (notify.Input, error) {
	flags := cmd.Flags()

	changed := false
	for _, name := range optionFlags {
		if flags.Changed(name) {
			changed = true
			break
		}
	}

	var opts notify.Options
	switch {
	case request != "":
		if len(args) > 0 {
			return nil, errors.New("a message argument cannot be combined with --request")
		}
		data, err := cli.readRequest(request)
		if err != nil {
			return nil, err
		}
		if opts, err = notify.DecodeOptions(data); err != nil {
			return nil, err
		}
	case len(args) == 1 && !changed:
		return notify.PlainMessage(args[0]), nil
	case len(args) == 1:
		opts.Message = notify.String(args[0])
	}

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		opts.Title = notify.String(title)
	}
	if flags.Changed("sound") {
		sound, _ := flags.GetString("sound")
		opts.Sound = notify.String(sound)
	}

	var icon notify.Icon
	switch {
	case flags.Changed("icon-name"):
		v, _ := flags.GetString("icon-name")
		icon = notify.NamedIcon(v)
	case flags.Changed("icon-path"):
		v, _ := flags.GetString("icon-path")
		icon = notify.PathIcon(v)
	case flags.Changed("icon-app"):
		v, _ := flags.GetString("icon-app")
		icon = notify.AppIcon(v)
	}
	if !icon.IsZero() {
		opts.Icon = &icon
	}

	return opts, nil
}

// readRequest reads a request document from path, or stdin for "-".
func (cli *CLI) readRequest(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cli.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read request from stdin: %w", err)
		}
		return data, nil
	}

	// #nosec G304 - request path is given by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return data, nil
}
