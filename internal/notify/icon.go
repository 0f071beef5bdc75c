package notify

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// IconKind selects how a notification icon is resolved.
type IconKind string

const (
	// IconApp reuses the icon identity of another application (macOS).
	IconApp IconKind = "app"
	// IconPath points to a local image through a file:// URL.
	IconPath IconKind = "path"
	// IconName names an icon from a freedesktop.org icon theme.
	IconName IconKind = "name"
)

// DefaultIconName is the theme icon used when no icon is supplied.
const DefaultIconName = "terminal"

// Icon is exactly one of an application, a file or a theme icon.
// The zero value is invalid.
type Icon struct {
	kind  IconKind
	value string
}

// AppIcon returns an icon borrowed from the named application.
func AppIcon(app string) Icon { return Icon{kind: IconApp, value: app} }

// PathIcon returns an icon loaded from a file:// URL.
func PathIcon(path string) Icon { return Icon{kind: IconPath, value: path} }

// NamedIcon returns a theme icon.
func NamedIcon(name string) Icon { return Icon{kind: IconName, value: name} }

// Kind returns the icon variant, or "" for the zero Icon.
func (i Icon) Kind() IconKind { return i.kind }

// Value returns the variant payload.
func (i Icon) Value() string { return i.value }

// IsZero reports whether no variant is set.
func (i Icon) IsZero() bool { return i.kind == "" }

// String returns "kind:value".
func (i Icon) String() string {
	if i.IsZero() {
		return "<none>"
	}
	return string(i.kind) + ":" + i.value
}

// Validate checks that exactly one variant is set.
func (i Icon) Validate() error {
	switch i.kind {
	case IconApp, IconPath, IconName:
		return nil
	default:
		return &InvalidRequestError{Field: "icon", Reason: "exactly one of app, path or name must be set"}
	}
}

// LocalPath converts a path icon into a filesystem path. A file:// URL is
// decoded, anything else is returned unchanged. ok is false for other kinds.
func (i Icon) LocalPath() (path string, ok bool) {
	if i.kind != IconPath {
		return "", false
	}
	return fileURLToPath(i.value, runtime.GOOS), true
}

func fileURLToPath(raw, goos string) string {
	if !strings.HasPrefix(strings.ToLower(raw), "file:") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return raw
	}
	p := u.Path
	if goos == "windows" {
		// file:///C:/icons/a.png has path /C:/icons/a.png
		if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		if u.Host != "" && u.Host != "localhost" {
			p = "//" + u.Host + p
		}
		return strings.ReplaceAll(p, "/", `\`)
	}
	return filepath.Clean(p)
}

// MarshalJSON encodes the icon as a single-key object.
func (i Icon) MarshalJSON() ([]byte, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]string{string(i.kind): i.value})
}

// UnmarshalJSON accepts an object with exactly one of app, path or name.
func (i *Icon) UnmarshalJSON(data []byte) error {
	var fields map[string]*string
	if err := json.Unmarshal(data, &fields); err != nil {
		return &InvalidRequestError{Field: "icon", Reason: err.Error()}
	}
	return i.fromFields(fields)
}

// MarshalYAML encodes the icon as a single-key mapping.
func (i Icon) MarshalYAML() (any, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return map[string]string{string(i.kind): i.value}, nil
}

// UnmarshalYAML accepts a mapping with exactly one of app, path or name.
func (i *Icon) UnmarshalYAML(node *yaml.Node) error {
	var fields map[string]*string
	if err := node.Decode(&fields); err != nil {
		return &InvalidRequestError{Field: "icon", Reason: err.Error()}
	}
	return i.fromFields(fields)
}

// fromFields builds the icon from decoded keys. Null values count as absent.
func (i *Icon) fromFields(fields map[string]*string) error {
	var keys []string
	for k, v := range fields {
		switch IconKind(k) {
		case IconApp, IconPath, IconName:
		default:
			return &InvalidRequestError{Field: "icon", Reason: fmt.Sprintf("unknown icon key %q", k)}
		}
		if v != nil {
			keys = append(keys, k)
		}
	}
	if len(keys) != 1 {
		sort.Strings(keys)
		return &InvalidRequestError{
			Field:  "icon",
			Reason: fmt.Sprintf("exactly one of app, path or name must be set, got %d (%s)", len(keys), strings.Join(keys, ", ")),
		}
	}
	*i = Icon{kind: IconKind(keys[0]), value: *fields[keys[0]]}
	return nil
}
