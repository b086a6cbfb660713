package registry

import "errors"

var (
	// ErrSessionNotActive is returned by rebuild attempts against a
	// session whose term buffer has not yet been bound.
	ErrSessionNotActive = errors.New("registry: session not active")

	// ErrUnknownSubscription is a fatal logic error: the conductor
	// reported a subscription-ready event for a channel the receiver has
	// no record of.
	ErrUnknownSubscription = errors.New("registry: unknown subscription for ready event")

	// ErrUnknownSession is a fatal logic error: the conductor reported a
	// subscription-ready event for a session the receiver has no record of.
	ErrUnknownSession = errors.New("registry: unknown session for ready event")
)
