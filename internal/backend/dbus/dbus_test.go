package dbus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/xabinapal/desknotify/internal/notify"
)

func TestNewCall_Defaults(t *testing.T) {
	c := NewCall("desknotify", notify.Notification{
		Title:   "deno_notify",
		Message: "Build finished",
		Icon:    notify.NamedIcon("terminal"),
	})

	if c.AppName != "desknotify" {
		t.Errorf("expected app name desknotify, got %q", c.AppName)
	}
	if c.AppIcon != "terminal" {
		t.Errorf("expected app icon terminal, got %q", c.AppIcon)
	}
	if c.Summary != "deno_notify" || c.Body != "Build finished" {
		t.Errorf("unexpected summary/body %q / %q", c.Summary, c.Body)
	}
	if len(c.Hints) != 0 {
		t.Errorf("expected no hints, got %v", c.Hints)
	}
	if c.ExpireTimeout != -1 {
		t.Errorf("expected expire timeout -1, got %d", c.ExpireTimeout)
	}
	if c.ReplacesID != 0 {
		t.Errorf("expected replaces id 0, got %d", c.ReplacesID)
	}
}

func TestNewCall_Hints(t *testing.T) {
	c := NewCall("desknotify", notify.Notification{
		Title:   "t",
		Message: "m",
		Icon:    notify.AppIcon("org.gnome.Terminal"),
		Sound:   "message-new-instant",
	})

	if c.AppIcon != "" {
		t.Errorf("expected empty app icon for app variant, got %q", c.AppIcon)
	}

	entry, ok := c.Hints["desktop-entry"]
	if !ok || entry.Value() != "org.gnome.Terminal" {
		t.Errorf("expected desktop-entry hint, got %v", c.Hints)
	}
	sound, ok := c.Hints["sound-name"]
	if !ok || sound.Value() != "message-new-instant" {
		t.Errorf("expected sound-name hint, got %v", c.Hints)
	}
}

func TestNewCall_PathIcon(t *testing.T) {
	c := NewCall("", notify.Notification{Icon: notify.PathIcon("file:///tmp/icon.png")})
	if c.AppIcon != "file:///tmp/icon.png" {
		t.Errorf("expected file URL passed through, got %q", c.AppIcon)
	}
}

func TestCall_Args(t *testing.T) {
	c := NewCall("app", notify.DefaultNotification())
	args := c.Args()

	if len(args) != 8 {
		t.Fatalf("expected 8 args, got %d", len(args))
	}
	if _, ok := args[1].(uint32); !ok {
		t.Errorf("expected replaces_id to be uint32, got %T", args[1])
	}
	if _, ok := args[6].(map[string]dbus.Variant); !ok {
		t.Errorf("expected hints to be map[string]dbus.Variant, got %T", args[6])
	}
	if _, ok := args[7].(int32); !ok {
		t.Errorf("expected expire_timeout to be int32, got %T", args[7])
	}
}

func TestSend_ConnectFailure(t *testing.T) {
	b := &Backend{
		appName: "desknotify",
		connect: func(context.Context) (*dbus.Conn, error) {
			return nil, errors.New("dbus: DBUS_SESSION_BUS_ADDRESS not set")
		},
	}

	resp := b.Send(context.Background(), notify.DefaultNotification())
	if !resp.IsError() {
		t.Fatal("expected error envelope")
	}
	if resp.Err.Code != notify.CodeUnavailable {
		t.Errorf("expected code %q, got %q", notify.CodeUnavailable, resp.Err.Code)
	}
	if !strings.Contains(resp.Err.Message, "DBUS_SESSION_BUS_ADDRESS not set") {
		t.Errorf("unexpected message %q", resp.Err.Message)
	}

	if err := b.Available(context.Background()); err == nil {
		t.Error("expected Available to fail")
	}
}

func TestName(t *testing.T) {
	if New("x").Name() != "dbus" {
		t.Errorf("Name() = %q, want dbus", New("x").Name())
	}
}
