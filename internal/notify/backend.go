package notify

import "context"

// OpNotifySend names the boundary call made for every dispatch.
const OpNotifySend = "notify_send"

// Backend delivers a fully populated notification to the OS.
type Backend interface {
	// Name identifies the backend in logs and errors.
	Name() string
	// Send performs one notify_send call. It must not retry.
	Send(ctx context.Context, n Notification) Response
}
