package frame

import (
	"errors"
	"testing"
)

func TestStatusMessageHeader_RoundTrip(t *testing.T) {
	buf := make([]byte, StatusMessageHeaderLength)
	s, err := WrapStatusMessageHeader(buf)
	if err != nil {
		t.Fatalf("WrapStatusMessageHeader: %v", err)
	}

	s.SetVersion(CurrentVersion)
	s.SetType(TypeSM)
	s.SetFlags(FlagNone)
	s.SetSessionID(42)
	s.SetChannelID(17)
	s.SetTermID(7)
	s.SetHighestContiguousTermOffset(0)
	s.SetReceiverWindow(1000)
	if err := s.SetFrameLength(StatusMessageHeaderLength); err != nil {
		t.Fatalf("SetFrameLength: %v", err)
	}

	if s.Type() != TypeSM {
		t.Errorf("Type = %v, want SM", s.Type())
	}
	if s.SessionID() != 42 || s.ChannelID() != 17 || s.TermID() != 7 {
		t.Fatalf("identity fields mismatch: %d/%d/%d", s.SessionID(), s.ChannelID(), s.TermID())
	}
	if s.HighestContiguousTermOffset() != 0 {
		t.Errorf("HighestContiguousTermOffset = %d, want 0", s.HighestContiguousTermOffset())
	}
	if s.ReceiverWindow() != 1000 {
		t.Errorf("ReceiverWindow = %d, want 1000", s.ReceiverWindow())
	}
}

func TestWrapStatusMessageHeader_TooShort(t *testing.T) {
	_, err := WrapStatusMessageHeader(make([]byte, StatusMessageHeaderLength-1))
	if !errors.Is(err, ErrBufferOverflow) {
		t.Fatalf("expected ErrBufferOverflow, got %v", err)
	}
}
