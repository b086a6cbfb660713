package frame

import "encoding/binary"

// DataHeader is a zero-copy view over a Data frame: the common header
// followed by session_id, channel_id and term_id, all little-endian
// 64-bit fields. Payload, if any, follows at DataHeaderLength.
type DataHeader struct {
	Header
	buf []byte
}

// WrapDataHeader binds a DataHeader view to buf. buf must be at least
// DataHeaderLength bytes.
func WrapDataHeader(buf []byte) (DataHeader, error) {
	if len(buf) < DataHeaderLength {
		return DataHeader{}, ErrBufferOverflow
	}
	h, err := WrapHeader(buf)
	if err != nil {
		return DataHeader{}, err
	}
	return DataHeader{Header: h, buf: buf}, nil
}

func (d DataHeader) SessionID() uint64 { return binary.LittleEndian.Uint64(d.buf[12:20]) }

func (d DataHeader) SetSessionID(v uint64) { binary.LittleEndian.PutUint64(d.buf[12:20], v) }

func (d DataHeader) ChannelID() uint64 { return binary.LittleEndian.Uint64(d.buf[20:28]) }

func (d DataHeader) SetChannelID(v uint64) { binary.LittleEndian.PutUint64(d.buf[20:28], v) }

func (d DataHeader) TermID() uint64 { return binary.LittleEndian.Uint64(d.buf[28:36]) }

func (d DataHeader) SetTermID(v uint64) { binary.LittleEndian.PutUint64(d.buf[28:36], v) }

// Payload returns the frame's payload: the bytes between DataHeaderLength
// and FrameLength. It is a subslice of the wrapped buffer, not a copy.
// The caller must have already validated FrameLength against len(buf).
func (d DataHeader) Payload() []byte {
	return d.buf[DataHeaderLength:d.Header.FrameLength()]
}

// HasPayload reports whether this frame carries application bytes beyond
// the header, i.e. it is not a bare heartbeat.
func (d DataHeader) HasPayload() bool {
	return d.Header.FrameLength() > DataHeaderLength
}
