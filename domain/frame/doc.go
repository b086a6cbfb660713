// Package frame implements zero-copy flyweight views over the on-wire
// frame layouts exchanged between publishers and the receive path: the
// common header shared by every frame type, and the Data, Status Message
// and NAK extensions built on top of it.
//
// A flyweight never copies bytes out of the backing buffer. Wrap performs
// a single bounds check against the buffer's length; every accessor after
// that trusts the check and reads/writes directly through the slice.
package frame
