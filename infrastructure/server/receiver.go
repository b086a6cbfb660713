// Package server assembles the receive path's single-threaded actors
// into a runnable unit: draining commands the conductor has written onto
// the receiver's proxy, and polling loss handlers on a fixed cadence.
package server

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mediadriver/infrastructure/driver"
	"mediadriver/infrastructure/proxy"
	"mediadriver/infrastructure/registry"
)

// DefaultPollInterval is the cadence at which loss handlers are polled
// and the conductor's command channel is drained when the caller does
// not specify one.
const DefaultPollInterval = 50 * time.Millisecond

// Logger is the narrow logging capability Receiver needs for commands
// that fail in a way the spec treats as non-fatal at the process level.
type Logger interface {
	Printf(format string, v ...any)
}

// Receiver runs the receiver thread's non-blocking event loop: it never
// suspends inside a frame handler (those run synchronously as datagrams
// arrive on the transport's own goroutine) but does, on a timer, drain
// the ReceiverProxy's ring buffer and poll every session's loss handler.
type Receiver struct {
	registry      *registry.Registry
	handler       *driver.DataFrameHandler
	receiverProxy *proxy.ReceiverProxy
	logger        Logger
	pollInterval  time.Duration
}

// NewReceiver builds a Receiver. logger may be nil. A non-positive
// pollInterval falls back to DefaultPollInterval.
func NewReceiver(reg *registry.Registry, handler *driver.DataFrameHandler, receiverProxy *proxy.ReceiverProxy, logger Logger, pollInterval time.Duration) *Receiver {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Receiver{
		registry:      reg,
		handler:       handler,
		receiverProxy: receiverProxy,
		logger:        logger,
		pollInterval:  pollInterval,
	}
}

// Run drives the command-drain loop and the loss-handler poll loop
// concurrently until ctx is cancelled; a failure in either stops both
// via the shared errgroup context.
func (r *Receiver) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return r.drainCommands(ctx) })
	eg.Go(func() error { return r.pollLossHandlers(ctx) })

	return eg.Wait()
}

func (r *Receiver) drainCommands(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.drainOnce()
		}
	}
}

func (r *Receiver) drainOnce() {
	for {
		cmd, ok := r.receiverProxy.DequeueCommand()
		if !ok {
			return
		}
		r.apply(cmd)
	}
}

func (r *Receiver) apply(cmd proxy.Command) {
	switch cmd.Type {
	case proxy.CmdAddSubscriber:
		r.handler.AddChannels(cmd.ChannelIDs)
	case proxy.CmdRemoveSubscriber:
		if err := r.handler.RemoveChannels(cmd.ChannelIDs); err != nil {
			r.logf("server: remove_channels: %v", err)
		}
	case proxy.CmdNewReceiveBufferNotification:
		event, lossHandler, ok := r.receiverProxy.DequeueReadyEvent()
		if !ok {
			r.logf("server: wake-up with no matching ready event")
			return
		}
		if err := r.handler.OnSubscriptionReady(event, lossHandler); err != nil {
			r.logf("server: on_subscription_ready: %v", err)
		}
	}
}

func (r *Receiver) pollLossHandlers(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.registry.PollLossHandlers()
		}
	}
}

func (r *Receiver) logf(format string, v ...any) {
	if r.logger != nil {
		r.logger.Printf(format, v...)
	}
}
