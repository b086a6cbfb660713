package frame

import "errors"

var (
	// ErrBufferOverflow is returned when a flyweight is wrapped around (or
	// would read/write past) a buffer shorter than the header it models.
	ErrBufferOverflow = errors.New("frame: buffer too short for header")

	// ErrInvalidHeaderLength is a configuration-time error: a configured
	// frame header length is shorter than the minimum of 12 bytes.
	ErrInvalidHeaderLength = errors.New("frame: header length below minimum")

	// ErrInvalidFrameAlignment is a configuration-time error: a configured
	// length is not aligned as the protocol requires.
	ErrInvalidFrameAlignment = errors.New("frame: length not aligned")

	// ErrReservedBitSet is returned when a caller attempts to set
	// frame_length or term_offset with the reserved top bit on.
	ErrReservedBitSet = errors.New("frame: reserved bit set")

	// ErrUnknownType is returned when a common header carries a type this
	// package does not model.
	ErrUnknownType = errors.New("frame: unknown frame type")
)
