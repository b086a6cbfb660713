package frame

import "encoding/binary"

// Header is a zero-copy view over the 12-byte common header shared by
// every frame type: version, flags, type, frame_length and term_offset,
// all little-endian.
//
// Concurrency: NOT safe for concurrent use on the same underlying buffer;
// callers serialize access the way the rest of the receive path does.
type Header struct {
	buf []byte
}

// WrapHeader binds a Header view to buf. buf must be at least
// HeaderLength bytes; the bound is checked once, here.
func WrapHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderLength {
		return Header{}, ErrBufferOverflow
	}
	return Header{buf: buf[:HeaderLength]}, nil
}

func (h Header) Version() uint8 { return h.buf[0] }

func (h Header) SetVersion(v uint8) { h.buf[0] = v }

func (h Header) Flags() Flags { return Flags(h.buf[1]) }

func (h Header) SetFlags(f Flags) { h.buf[1] = byte(f) }

func (h Header) Type() Type { return Type(binary.LittleEndian.Uint16(h.buf[2:4])) }

func (h Header) SetType(t Type) { binary.LittleEndian.PutUint16(h.buf[2:4], uint16(t)) }

// FrameLength returns the unpadded, logical length of the frame. The
// reserved top bit is never interpreted as part of the value.
func (h Header) FrameLength() uint32 {
	return binary.LittleEndian.Uint32(h.buf[4:8]) &^ reservedBitMask
}

// SetFrameLength rejects values with the reserved top bit set.
func (h Header) SetFrameLength(n uint32) error {
	if n&reservedBitMask != 0 {
		return ErrReservedBitSet
	}
	binary.LittleEndian.PutUint32(h.buf[4:8], n)
	return nil
}

// TermOffset returns the raw term_offset field of the common header. Only
// Data frames give this field protocol meaning; SM and NAK frames carry
// their own, differently-positioned term-offset fields.
func (h Header) TermOffset() uint32 {
	return binary.LittleEndian.Uint32(h.buf[8:12]) &^ reservedBitMask
}

func (h Header) SetTermOffset(n uint32) error {
	if n&reservedBitMask != 0 {
		return ErrReservedBitSet
	}
	binary.LittleEndian.PutUint32(h.buf[8:12], n)
	return nil
}

// Bytes returns the backing 12-byte region.
func (h Header) Bytes() []byte { return h.buf }
