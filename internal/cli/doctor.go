package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xabinapal/desknotify/internal/backend"
	"github.com/xabinapal/desknotify/internal/backend/dbus"
	"github.com/xabinapal/desknotify/internal/config"
)

// CheckResult represents the result of a diagnostic check.
type CheckResult struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
	Fix     string      `json:"fix,omitempty"`
}

// CheckStatus represents the status of a diagnostic check.
type CheckStatus int

const (
	// CheckOK indicates the check passed.
	CheckOK CheckStatus = iota
	// CheckWarning indicates a non-critical issue.
	CheckWarning
	// CheckError indicates a critical failure.
	CheckError
	// CheckSkipped indicates the check was skipped.
	CheckSkipped
)

// String returns the status name.
func (s CheckStatus) String() string {
	switch s {
	case CheckOK:
		return "OK"
	case CheckWarning:
		return "WARN"
	case CheckError:
		return "ERROR"
	case CheckSkipped:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// Icon returns the status icon for display.
func (s CheckStatus) Icon() string {
	switch s {
	case CheckOK:
		return "[OK]"
	case CheckWarning:
		return "[!!]"
	case CheckError:
		return "[XX]"
	case CheckSkipped:
		return "[--]"
	default:
		return "[??]"
	}
}

// MarshalJSON implements json.Marshaler.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler, accepting the names written by MarshalJSON.
func (s *CheckStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []CheckStatus{CheckOK, CheckWarning, CheckError, CheckSkipped} {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown check status %q", name)
}

// DoctorOutput represents the doctor command output for JSON.
type DoctorOutput struct {
	Checks      []CheckResult `json:"checks"`
	HasErrors   bool          `json:"has_errors"`
	HasWarnings bool          `json:"has_warnings"`
}

// serverInspector is implemented by backends that can describe the
// notification server behind them.
type serverInspector interface {
	ServerInfo(ctx context.Context) (dbus.ServerInfo, error)
}

// hostOS is the platform doctor reports on.
var hostOS = runtime.GOOS

// newDoctorCmd creates the doctor command.
func (cli *CLI) newDoctorCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues",
		Long: `Run diagnostic checks to identify and troubleshoot common issues.

The doctor command checks:
  - Configuration file validity
  - Backend selection
  - Backend availability
  - Notification server and capabilities (D-Bus)

Use --verbose for suggested fixes.

Examples:
  # Run diagnostics
  desknotify doctor

  # Show suggested fixes
  desknotify doctor --verbose

  # Output as JSON
  desknotify doctor -o json`,
		Annotations: map[string]string{annotationSkipInit: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			results := cli.runDiagnostics(ctx)

			hasErrors := false
			hasWarnings := false
			for _, r := range results {
				if r.Status == CheckError {
					hasErrors = true
				}
				if r.Status == CheckWarning {
					hasWarnings = true
				}
			}

			output := DoctorOutput{
				Checks:      results,
				HasErrors:   hasErrors,
				HasWarnings: hasWarnings,
			}

			writeErr := cli.output().Write(output, func(w io.Writer) {
				fmt.Fprintln(w, "desknotify diagnostics")
				fmt.Fprintln(w, "======================")
				fmt.Fprintln(w)

				for _, r := range results {
					fmt.Fprintf(w, "%s %s", r.Status.Icon(), r.Name)
					if r.Message != "" {
						fmt.Fprintf(w, ": %s", r.Message)
					}
					fmt.Fprintln(w)

					if (r.Status == CheckError || r.Status == CheckWarning) && r.Fix != "" && (verbose || cli.verboseFlag) {
						fmt.Fprintf(w, "      -> %s\n", r.Fix)
					}
				}

				fmt.Fprintln(w)
				switch {
				case hasErrors:
					fmt.Fprintln(w, "Some checks failed. Run with --verbose for suggested fixes.")
				case hasWarnings:
					fmt.Fprintln(w, "All critical checks passed with some warnings.")
				default:
					fmt.Fprintln(w, "All checks passed!")
				}
			})

			if writeErr != nil {
				return writeErr
			}

			if hasErrors {
				return errors.New("diagnostics failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "fix", "f", false, "Show suggested fixes")

	return cmd
}

func (cli *CLI) runDiagnostics(ctx context.Context) []CheckResult {
	var results []CheckResult

	// Check 1: Configuration file
	results = append(results, cli.checkConfigFile())

	// Check 2: Backend selection
	selection, b := cli.checkBackendSelection()
	results = append(results, selection)

	// Check 3: Backend availability
	results = append(results, cli.checkBackendAvailable(ctx, b))

	// Check 4: Notification server (D-Bus only)
	results = append(results, cli.checkNotificationServer(ctx)...)

	return results
}

// checkConfigFile loads the configuration for the remaining checks. When it
// cannot be loaded the defaults are used so diagnostics can continue.
func (cli *CLI) checkConfigFile() CheckResult {
	path := cli.configPath()
	name := "Configuration file"

	cfg, err := config.LoadFrom(path)
	if err != nil {
		cli.Config = config.Default()
		cli.applyBackendFlag()
		return CheckResult{
			Name:    name,
			Status:  CheckError,
			Message: fmt.Sprintf("invalid: %v", err),
			Fix:     "Run 'desknotify config validate' to see detailed errors",
		}
	}
	cli.Config = cfg
	cli.applyBackendFlag()

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return CheckResult{
			Name:    name,
			Status:  CheckOK,
			Message: "not found, using defaults",
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckOK,
		Message: fmt.Sprintf("%s is valid", path),
	}
}

func (cli *CLI) applyBackendFlag() {
	if cli.backendFlag != "" {
		cli.Config.Backend = cli.backendFlag
	}
}

func (cli *CLI) checkBackendSelection() (CheckResult, backend.Backend) {
	name := "Backend"
	resolved := backend.Resolve(cli.Config.Backend)

	b, err := cli.newBackend(cli.Config.Backend, cli.backendOptions())
	if err != nil {
		return CheckResult{
			Name:    name,
			Status:  CheckError,
			Message: err.Error(),
			Fix:     fmt.Sprintf("Use one of: %s, %s", backend.Auto, strings.Join(backend.Names(), ", ")),
		}, nil
	}

	msg := resolved
	if cli.Config.Backend == backend.Auto {
		msg = fmt.Sprintf("%s (auto-selected for %s)", resolved, hostOS)
	}
	return CheckResult{
		Name:    name,
		Status:  CheckOK,
		Message: msg,
	}, b
}

func (cli *CLI) checkBackendAvailable(ctx context.Context, b backend.Backend) CheckResult {
	name := "Backend availability"
	if b == nil {
		return CheckResult{
			Name:    name,
			Status:  CheckSkipped,
			Message: "no usable backend",
		}
	}

	if err := b.Available(ctx); err != nil {
		return CheckResult{
			Name:    name,
			Status:  CheckError,
			Message: fmt.Sprintf("%s unavailable: %v", b.Name(), err),
			Fix:     availabilityFix(b.Name()),
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckOK,
		Message: fmt.Sprintf("%s is ready", b.Name()),
	}
}

func availabilityFix(name string) string {
	switch name {
	case "dbus":
		return "Start a notification daemon (dunst, mako, or your desktop's) and make sure DBUS_SESSION_BUS_ADDRESS is set"
	case "notify-send":
		return "Install libnotify (the package providing notify-send)"
	case "osascript":
		return "osascript ships with macOS; check that /usr/bin is in PATH"
	case "toast":
		return "Toast notifications need Windows 10 or later"
	default:
		return "Choose another backend with --backend or in the configuration file"
	}
}

func (cli *CLI) checkNotificationServer(ctx context.Context) []CheckResult {
	name := "Notification server"

	if backend.Resolve(cli.Config.Backend) != dbus.Name {
		return []CheckResult{{
			Name:    name,
			Status:  CheckSkipped,
			Message: "only checked for the dbus backend",
		}}
	}

	b, err := cli.newBackend(dbus.Name, cli.backendOptions())
	if err != nil {
		return []CheckResult{{Name: name, Status: CheckSkipped, Message: err.Error()}}
	}
	inspector, ok := b.(serverInspector)
	if !ok {
		return []CheckResult{{Name: name, Status: CheckSkipped, Message: "backend cannot describe its server"}}
	}

	info, err := inspector.ServerInfo(ctx)
	if err != nil {
		return []CheckResult{{
			Name:    name,
			Status:  CheckError,
			Message: err.Error(),
			Fix:     availabilityFix(dbus.Name),
		}}
	}

	results := []CheckResult{{
		Name:    name,
		Status:  CheckOK,
		Message: fmt.Sprintf("%s %s by %s (spec %s)", info.Name, info.Version, info.Vendor, info.SpecVersion),
	}}

	caps := CheckResult{
		Name:    "Server capabilities",
		Status:  CheckOK,
		Message: strings.Join(info.Capabilities, ", "),
	}
	var missing []string
	for _, c := range []string{"body", "sound"} {
		if !slices.Contains(info.Capabilities, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		caps.Status = CheckWarning
		caps.Message = fmt.Sprintf("%s (missing: %s)", caps.Message, strings.Join(missing, ", "))
		caps.Fix = "Messages or sounds may be dropped by this server"
	}

	return append(results, caps)
}
