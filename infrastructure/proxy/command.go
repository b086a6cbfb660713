// Package proxy implements the single-producer/single-consumer command
// channels that cross the receiver/conductor thread boundary: a ring
// buffer of small, length-prefixed commands, plus a bounded queue for the
// one event too large (and too non-POD) to travel through the ring
// buffer directly.
package proxy

import (
	"encoding/binary"
	"fmt"
)

// CommandType identifies which of the internal IPC messages a Command
// carries.
type CommandType uint8

const (
	// CmdAddSubscriber mirrors ADD_SUBSCRIBER: destination + channel ids.
	CmdAddSubscriber CommandType = iota + 1
	// CmdRemoveSubscriber mirrors REMOVE_SUBSCRIBER: destination + channel ids.
	CmdRemoveSubscriber
	// CmdNewReceiveBufferNotification is the wake-up tag for
	// NEW_RECEIVE_BUFFER_NOTIFICATION; the event itself travels on the
	// bounded EventQueue, not in this command's payload.
	CmdNewReceiveBufferNotification
	// CmdCreateTermBuffer is the receiver -> conductor fire-and-forget
	// request to provision a term buffer.
	CmdCreateTermBuffer
)

// Command is one message on a proxy ring buffer. Which fields are
// meaningful depends on Type.
type Command struct {
	Type        CommandType
	Destination string
	ChannelIDs  []uint64

	SessionID uint64
	ChannelID uint64
	TermID    uint64
}

// MarshalBinary encodes c as: type(1) + destination(u32 len-prefixed utf8)
// + channel id count(u32) + channel ids(u64 each) + sessionId + channelId
// + termId (u64 each, present for every command for a fixed-size layout).
func (c Command) MarshalBinary() ([]byte, error) {
	dest := []byte(c.Destination)
	size := 1 + 4 + len(dest) + 4 + 8*len(c.ChannelIDs) + 8*3
	buf := make([]byte, size)

	buf[0] = byte(c.Type)
	off := 1
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(dest)))
	off += 4
	off += copy(buf[off:], dest)

	binary.LittleEndian.PutUint32(buf[off:], uint32(len(c.ChannelIDs)))
	off += 4
	for _, id := range c.ChannelIDs {
		binary.LittleEndian.PutUint64(buf[off:], id)
		off += 8
	}

	binary.LittleEndian.PutUint64(buf[off:], c.SessionID)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], c.ChannelID)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], c.TermID)

	return buf, nil
}

// UnmarshalCommand decodes the layout MarshalBinary produces.
func UnmarshalCommand(data []byte) (Command, error) {
	if len(data) < 1+4+4+24 {
		return Command{}, fmt.Errorf("proxy: command too short (%d bytes)", len(data))
	}
	c := Command{Type: CommandType(data[0])}
	off := 1

	destLen := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	if off+destLen > len(data) {
		return Command{}, fmt.Errorf("proxy: destination length %d exceeds buffer", destLen)
	}
	c.Destination = string(data[off : off+destLen])
	off += destLen

	if off+4 > len(data) {
		return Command{}, fmt.Errorf("proxy: truncated channel id count")
	}
	count := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	if off+8*count+24 > len(data) {
		return Command{}, fmt.Errorf("proxy: truncated channel ids")
	}
	if count > 0 {
		c.ChannelIDs = make([]uint64, count)
		for i := range c.ChannelIDs {
			c.ChannelIDs[i] = binary.LittleEndian.Uint64(data[off:])
			off += 8
		}
	}

	c.SessionID = binary.LittleEndian.Uint64(data[off:])
	off += 8
	c.ChannelID = binary.LittleEndian.Uint64(data[off:])
	off += 8
	c.TermID = binary.LittleEndian.Uint64(data[off:])

	return c, nil
}
