package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/xabinapal/desknotify/internal/backend"
	"github.com/xabinapal/desknotify/internal/logging"
)

// backendStatus represents one backend in backends output.
type backendStatus struct {
	Name      string `json:"name"`
	Selected  bool   `json:"selected"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// backendsOutput represents backends output for JSON.
type backendsOutput struct {
	Configured string          `json:"configured"`
	Resolved   string          `json:"resolved"`
	Backends   []backendStatus `json:"backends"`
}

// newBackendsCmd creates the backends command.
func (cli *CLI) newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List notification backends and whether they work here",
		Long: `List every notification backend and check whether it can deliver
notifications on this machine. The backend marked with * is the one
'desknotify send' uses.

Examples:
  desknotify backends
  desknotify backends -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			out := cli.probeBackends(ctx)

			return cli.output().Write(out, func(w io.Writer) {
				for _, b := range out.Backends {
					marker := " "
					if b.Selected {
						marker = "*"
					}
					status := "available"
					if !b.Available {
						status = "unavailable: " + b.Error
					}
					fmt.Fprintf(w, "%s %-12s %s\n", marker, b.Name, status)
				}
			})
		},
	}
}

func (cli *CLI) probeBackends(ctx context.Context) backendsOutput {
	resolved := backend.Resolve(cli.Config.Backend)
	out := backendsOutput{
		Configured: cli.Config.Backend,
		Resolved:   resolved,
	}

	for _, name := range backend.Names() {
		status := backendStatus{Name: name, Selected: name == resolved}

		b, err := cli.newBackend(name, cli.backendOptions())
		if err == nil {
			err = b.Available(ctx)
		}
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Available = true
		}

		cli.Logger.Debug("probed backend",
			logging.String("backend", name),
			logging.Bool("available", status.Available),
		)
		out.Backends = append(out.Backends, status)
	}

	return out
}
