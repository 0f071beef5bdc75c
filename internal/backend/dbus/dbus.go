// Package dbus delivers notifications to a freedesktop.org notification
// server over the D-Bus session bus.
package dbus

import (
	"context"
	"fmt"

	notifylib "github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"

	"github.com/xabinapal/desknotify/internal/notify"
)

// Name is the backend name used in configuration.
const Name = "dbus"

const (
	destination = "org.freedesktop.Notifications"
	objectPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall  = destination + ".Notify"

	// expireDefault lets the server pick the expiration timeout.
	expireDefault = int32(-1)
)

// Backend sends org.freedesktop.Notifications.Notify calls.
type Backend struct {
	appName string
	connect func(ctx context.Context) (*dbus.Conn, error)
}

// New creates a Backend that reports appName as the sending application.
func New(appName string) *Backend {
	return &Backend{
		appName: appName,
		connect: func(ctx context.Context) (*dbus.Conn, error) {
			return dbus.ConnectSessionBus(dbus.WithContext(ctx))
		},
	}
}

// Name implements notify.Backend.
func (b *Backend) Name() string {
	return Name
}

// Send implements notify.Backend. The success payload carries the
// server-assigned notification id.
func (b *Backend) Send(ctx context.Context, n notify.Notification) notify.Response {
	conn, err := b.connect(ctx)
	if err != nil {
		return notify.Failure(notify.CodeUnavailable, fmt.Sprintf("failed to connect to session bus: %v", err))
	}
	defer conn.Close()

	var id uint32
	call := NewCall(b.appName, n)
	obj := conn.Object(destination, objectPath)
	if err := obj.CallWithContext(ctx, notifyCall, 0, call.Args()...).Store(&id); err != nil {
		return notify.FailureFromError(notify.CodeRejected, err)
	}

	return notify.Success(map[string]uint32{"id": id})
}

// ServerInfo describes the running notification server.
type ServerInfo struct {
	Name         string   `json:"name"`
	Vendor       string   `json:"vendor"`
	Version      string   `json:"version"`
	SpecVersion  string   `json:"spec_version"`
	Capabilities []string `json:"capabilities"`
}

// ServerInfo queries the notification server's identity and capabilities.
func (b *Backend) ServerInfo(ctx context.Context) (ServerInfo, error) {
	conn, err := b.connect(ctx)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	info, err := notifylib.GetServerInformation(conn)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to query notification server: %w", err)
	}

	caps, err := notifylib.GetCapabilities(conn)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to query server capabilities: %w", err)
	}

	return ServerInfo{
		Name:         info.Name,
		Vendor:       info.Vendor,
		Version:      info.Version,
		SpecVersion:  info.SpecVersion,
		Capabilities: caps,
	}, nil
}

// Available reports whether a notification server answers on the session bus.
func (b *Backend) Available(ctx context.Context) error {
	_, err := b.ServerInfo(ctx)
	return err
}

// Call holds the arguments of one Notify method call.
type Call struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string
	Hints         map[string]dbus.Variant
	ExpireTimeout int32
}

// NewCall maps n onto the Notify arguments. A theme name or file URL goes to
// app_icon; an app icon becomes the desktop-entry hint; sound becomes the
// sound-name hint.
func NewCall(appName string, n notify.Notification) Call {
	c := Call{
		AppName:       appName,
		Summary:       n.Title,
		Body:          n.Message,
		Actions:       []string{},
		Hints:         map[string]dbus.Variant{},
		ExpireTimeout: expireDefault,
	}

	switch n.Icon.Kind() {
	case notify.IconName, notify.IconPath:
		c.AppIcon = n.Icon.Value()
	case notify.IconApp:
		c.Hints["desktop-entry"] = dbus.MakeVariant(n.Icon.Value())
	}

	if n.Sound != "" {
		c.Hints["sound-name"] = dbus.MakeVariant(n.Sound)
	}

	return c
}

// Args returns the arguments in method signature order (susssasa{sv}i).
func (c Call) Args() []any {
	return []any{c.AppName, c.ReplacesID, c.AppIcon, c.Summary, c.Body, c.Actions, c.Hints, c.ExpireTimeout}
}
