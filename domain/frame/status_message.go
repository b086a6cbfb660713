package frame

import "encoding/binary"

// StatusMessageHeader is a zero-copy view over an SM frame: the common
// header followed by session_id, channel_id, term_id (64-bit), then
// highest_contiguous_term_offset and receiver_window (32-bit), all
// little-endian.
type StatusMessageHeader struct {
	Header
	buf []byte
}

// WrapStatusMessageHeader binds a StatusMessageHeader view to buf. buf
// must be at least StatusMessageHeaderLength bytes.
func WrapStatusMessageHeader(buf []byte) (StatusMessageHeader, error) {
	if len(buf) < StatusMessageHeaderLength {
		return StatusMessageHeader{}, ErrBufferOverflow
	}
	h, err := WrapHeader(buf)
	if err != nil {
		return StatusMessageHeader{}, err
	}
	return StatusMessageHeader{Header: h, buf: buf}, nil
}

func (s StatusMessageHeader) SessionID() uint64 { return binary.LittleEndian.Uint64(s.buf[12:20]) }

func (s StatusMessageHeader) SetSessionID(v uint64) { binary.LittleEndian.PutUint64(s.buf[12:20], v) }

func (s StatusMessageHeader) ChannelID() uint64 { return binary.LittleEndian.Uint64(s.buf[20:28]) }

func (s StatusMessageHeader) SetChannelID(v uint64) { binary.LittleEndian.PutUint64(s.buf[20:28], v) }

func (s StatusMessageHeader) TermID() uint64 { return binary.LittleEndian.Uint64(s.buf[28:36]) }

func (s StatusMessageHeader) SetTermID(v uint64) { binary.LittleEndian.PutUint64(s.buf[28:36], v) }

func (s StatusMessageHeader) HighestContiguousTermOffset() uint32 {
	return binary.LittleEndian.Uint32(s.buf[36:40])
}

func (s StatusMessageHeader) SetHighestContiguousTermOffset(v uint32) {
	binary.LittleEndian.PutUint32(s.buf[36:40], v)
}

func (s StatusMessageHeader) ReceiverWindow() uint32 {
	return binary.LittleEndian.Uint32(s.buf[40:44])
}

func (s StatusMessageHeader) SetReceiverWindow(v uint32) {
	binary.LittleEndian.PutUint32(s.buf[40:44], v)
}
