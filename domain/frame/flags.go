package frame

// Flags marks fragment boundaries inside a Data frame. SM and NAK frames
// carry FlagNone.
type Flags uint8

const (
	FlagNone Flags = 0
	// FlagEnd marks the last fragment of a message.
	FlagEnd Flags = 1 << 6
	// FlagBegin marks the first fragment of a message.
	FlagBegin Flags = 1 << 7
	// FlagUnfragmented marks a message that fits in a single frame.
	FlagUnfragmented = FlagBegin | FlagEnd
)

func (f Flags) Begin() bool { return f&FlagBegin != 0 }
func (f Flags) End() bool   { return f&FlagEnd != 0 }

// Unfragmented reports whether both BEGIN and END are set.
func (f Flags) Unfragmented() bool { return f&FlagUnfragmented == FlagUnfragmented }

func (f Flags) String() string {
	switch {
	case f.Unfragmented():
		return "UNFRAGMENTED"
	case f.Begin():
		return "BEGIN"
	case f.End():
		return "END"
	default:
		return "NONE"
	}
}
