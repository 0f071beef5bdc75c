// Package notify builds desktop notification requests and hands them to a backend.
//
// A request is either a PlainMessage or an Options record. Both are merged
// over the defaults (title "deno_notify", icon {name: "terminal"}) and sent
// through exactly one notify_send call on the configured Backend.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xabinapal/desknotify/internal/logging"
)

// Result marks a successful dispatch. It carries no payload.
type Result struct{}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch events.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTimeout bounds each backend call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// Dispatcher sends notification requests to a backend.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	backend Backend
	logger  *logging.Logger
	timeout time.Duration
}

// New creates a Dispatcher for backend.
func New(backend Backend, opts ...Option) *Dispatcher {
	d := &Dispatcher{backend: backend}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Backend returns the backend requests are sent to.
func (d *Dispatcher) Backend() Backend {
	return d.backend
}

// Notify sends a notification with only a message.
func (d *Dispatcher) Notify(ctx context.Context, message string) (Result, error) {
	return d.Dispatch(ctx, PlainMessage(message))
}

// NotifyWith sends a notification described by opts.
func (d *Dispatcher) NotifyWith(ctx context.Context, opts Options) (Result, error) {
	return d.Dispatch(ctx, opts)
}

// Dispatch normalizes in and performs a single notify_send call.
// Local misuse fails with *InvalidRequestError before the backend is reached;
// a backend failure is returned as *BackendDispatchError.
func (d *Dispatcher) Dispatch(ctx context.Context, in Input) (Result, error) {
	n, err := Normalize(in)
	if err != nil {
		return Result{}, err
	}

	if d.backend == nil {
		return Result{}, &BackendDispatchError{
			Op:      OpNotifySend,
			Code:    CodeUnavailable,
			Message: "no notification backend configured",
		}
	}

	name := d.backend.Name()
	d.logger.Debug("dispatching notification",
		logging.String("op", OpNotifySend),
		logging.String("backend", name),
		logging.String("title", n.Title),
		logging.String("icon", n.Icon.String()),
		logging.Bool("sound", n.Sound != ""),
	)

	start := time.Now()
	res, err := unwrapResponse(name, d.send(ctx, n))
	if err != nil {
		d.logger.Warn("notification dispatch failed",
			logging.String("backend", name),
			logging.Err(err),
		)
		return res, err
	}

	d.logger.Debug("notification dispatched",
		logging.String("backend", name),
		logging.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// send makes the boundary call. With a timeout the call runs in its own
// goroutine so a backend that ignores ctx cannot block the caller; the call
// is abandoned, never repeated.
func (d *Dispatcher) send(ctx context.Context, n Notification) Response {
	if err := ctx.Err(); err != nil {
		return contextFailure(err)
	}
	if d.timeout <= 0 {
		return d.backend.Send(ctx, n)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan Response, 1)
	go func() {
		done <- d.backend.Send(ctx, n)
	}()

	select {
	case resp := <-done:
		return resp
	case <-ctx.Done():
		return contextFailure(ctx.Err())
	}
}

func contextFailure(err error) Response {
	if errors.Is(err, context.DeadlineExceeded) {
		return Failure(CodeTimeout, fmt.Sprintf("notification was not delivered in time: %v", err))
	}
	return Failure(CodeCanceled, fmt.Sprintf("notification was canceled: %v", err))
}

var (
	defaultMu         sync.RWMutex
	defaultDispatcher = New(nil)
)

// SetDefault installs the dispatcher used by the package-level functions.
func SetDefault(d *Dispatcher) {
	if d == nil {
		d = New(nil)
	}
	defaultMu.Lock()
	defaultDispatcher = d
	defaultMu.Unlock()
}

// Default returns the dispatcher used by the package-level functions.
func Default() *Dispatcher {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultDispatcher
}

// Notify sends a message through the default dispatcher.
func Notify(ctx context.Context, message string) (Result, error) {
	return Default().Notify(ctx, message)
}

// NotifyWith sends opts through the default dispatcher.
func NotifyWith(ctx context.Context, opts Options) (Result, error) {
	return Default().NotifyWith(ctx, opts)
}
