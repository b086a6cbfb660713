package registry

import (
	"fmt"
	"net/netip"

	"mediadriver/application"
)

// Registry is the receive path's channelId -> Subscription map. It is
// owned exclusively by the receiver thread: every method here runs
// single-threaded, after the caller has dequeued the corresponding
// command from the conductor's ring buffer, so plain maps and integers
// suffice without atomics or locks.
type Registry struct {
	destination   application.Destination
	subscriptions map[uint64]*Subscription
}

func New(dest application.Destination) *Registry {
	return &Registry{
		destination:   dest,
		subscriptions: make(map[uint64]*Subscription),
	}
}

// AddChannels creates or increments the reference count of a Subscription
// for each channelId.
func (r *Registry) AddChannels(channelIDs []uint64) {
	for _, id := range channelIDs {
		if sub, ok := r.subscriptions[id]; ok {
			sub.incRef()
			continue
		}
		r.subscriptions[id] = newSubscription(r.destination, id)
	}
}

// RemoveChannels decrements the reference count of each channelId's
// Subscription, closing and removing it once the count reaches zero. A
// channelId with no live Subscription is reported, not silently ignored.
func (r *Registry) RemoveChannels(channelIDs []uint64) error {
	for _, id := range channelIDs {
		sub, ok := r.subscriptions[id]
		if !ok {
			return fmt.Errorf("channel %d: %w", id, application.ErrSubscriptionNotRegistered)
		}
		if sub.decRef() == 0 {
			sub.close()
			delete(r.subscriptions, id)
		}
	}
	return nil
}

// ChannelCount returns the number of live subscriptions.
func (r *Registry) ChannelCount() int { return len(r.subscriptions) }

// PollLossHandlers asks every session's loss handler, across every
// subscription, to scan for gaps and emit NAKs subject to its own
// policy. Invoked on a fixed cadence by the receiver's event loop.
func (r *Registry) PollLossHandlers() {
	for _, sub := range r.subscriptions {
		sub.pollSessions()
	}
}

// Subscription looks up a channel's Subscription. The caller is expected
// to silently drop frames for an absent channel rather than treat it as
// an error: a unicast socket may be shared by interests this receiver
// does not have.
func (r *Registry) Subscription(channelID uint64) (*Subscription, bool) {
	sub, ok := r.subscriptions[channelID]
	return sub, ok
}

// ProvisionSession creates a new Provisioned Session for a first-seen
// (channelID, sessionID) pair observed from src, and registers it under
// the channel's Subscription. The caller must have already confirmed the
// Subscription exists.
func (r *Registry) ProvisionSession(sub *Subscription, sessionID uint64, src netip.AddrPort) *Session {
	sess := newProvisionedSession(sessionID, sub.ChannelID(), src)
	sub.addSession(sess)
	return sess
}

// BindSession looks up the Subscription and Session an on_subscription_ready
// event refers to. Absence of either is a fatal logic error: the
// conductor cannot report readiness for state the receiver never asked it
// to provision.
func (r *Registry) BindSession(channelID, sessionID uint64) (*Subscription, *Session, error) {
	sub, ok := r.Subscription(channelID)
	if !ok {
		return nil, nil, fmt.Errorf("channel %d: %w", channelID, ErrUnknownSubscription)
	}
	sess, ok := sub.session(sessionID)
	if !ok {
		return nil, nil, fmt.Errorf("channel %d session %d: %w", channelID, sessionID, ErrUnknownSession)
	}
	return sub, sess, nil
}
