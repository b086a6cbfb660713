package frame

import "encoding/binary"

// NakHeader is a zero-copy view over a NAK frame: the common header
// followed by session_id, channel_id, term_id (64-bit), then term_offset
// and length (32-bit), all little-endian.
type NakHeader struct {
	Header
	buf []byte
}

// WrapNakHeader binds a NakHeader view to buf. buf must be at least
// NakHeaderLength bytes.
func WrapNakHeader(buf []byte) (NakHeader, error) {
	if len(buf) < NakHeaderLength {
		return NakHeader{}, ErrBufferOverflow
	}
	h, err := WrapHeader(buf)
	if err != nil {
		return NakHeader{}, err
	}
	return NakHeader{Header: h, buf: buf}, nil
}

func (n NakHeader) SessionID() uint64 { return binary.LittleEndian.Uint64(n.buf[12:20]) }

func (n NakHeader) SetSessionID(v uint64) { binary.LittleEndian.PutUint64(n.buf[12:20], v) }

func (n NakHeader) ChannelID() uint64 { return binary.LittleEndian.Uint64(n.buf[20:28]) }

func (n NakHeader) SetChannelID(v uint64) { binary.LittleEndian.PutUint64(n.buf[20:28], v) }

func (n NakHeader) TermID() uint64 { return binary.LittleEndian.Uint64(n.buf[28:36]) }

func (n NakHeader) SetTermID(v uint64) { binary.LittleEndian.PutUint64(n.buf[28:36], v) }

func (n NakHeader) TermOffset() uint32 { return binary.LittleEndian.Uint32(n.buf[36:40]) }

func (n NakHeader) SetTermOffset(v uint32) { binary.LittleEndian.PutUint32(n.buf[36:40], v) }

func (n NakHeader) Length() uint32 { return binary.LittleEndian.Uint32(n.buf[40:44]) }

func (n NakHeader) SetLength(v uint32) { binary.LittleEndian.PutUint32(n.buf[40:44], v) }
