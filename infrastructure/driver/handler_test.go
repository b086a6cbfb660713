package driver

import (
	"net/netip"
	"testing"

	"mediadriver/application"
	"mediadriver/domain/frame"
	"mediadriver/infrastructure/registry"
)

type fakeTransport struct {
	sent []sentFrame
	n    int // 0 means "send the full buffer"; overridden per-test when short-send is needed
}
type sentFrame struct {
	buf    []byte
	remote netip.AddrPort
}

func (f *fakeTransport) SendTo(buf []byte, remote netip.AddrPort) (int, error) {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	f.sent = append(f.sent, sentFrame{buf: cp, remote: remote})
	if f.n != 0 {
		return f.n, nil
	}
	return len(buf), nil
}

func (f *fakeTransport) Close() error { return nil }

type fakeConductor struct {
	calls []createCall
}
type createCall struct {
	dest      application.Destination
	sessionID uint64
	channelID uint64
	termID    uint64
}

func (f *fakeConductor) CreateTermBuffer(dest application.Destination, sessionID, channelID, termID uint64) error {
	f.calls = append(f.calls, createCall{dest, sessionID, channelID, termID})
	return nil
}

func buildDataFrame(t *testing.T, sessionID, channelID, termID uint64, termOffset uint32, flags frame.Flags, payload []byte) []byte {
	t.Helper()
	buf := make([]byte, frame.DataHeaderLength+len(payload))
	h, err := frame.WrapDataHeader(buf)
	if err != nil {
		t.Fatalf("WrapDataHeader: %v", err)
	}
	h.SetVersion(frame.CurrentVersion)
	h.SetFlags(flags)
	h.SetType(frame.TypeData)
	if err := h.SetFrameLength(uint32(frame.DataHeaderLength + len(payload))); err != nil {
		t.Fatalf("SetFrameLength: %v", err)
	}
	if err := h.SetTermOffset(termOffset); err != nil {
		t.Fatalf("SetTermOffset: %v", err)
	}
	h.SetSessionID(sessionID)
	h.SetChannelID(channelID)
	h.SetTermID(termID)
	copy(buf[frame.DataHeaderLength:], payload)
	return buf
}

func testSrc() netip.AddrPort { return netip.MustParseAddrPort("10.0.0.1:5000") }

// S1: first data frame creates a Provisioned session, requests a term
// buffer, and writes no payload.
func TestOnDataFrame_FirstFrameProvisionsSession(t *testing.T) {
	local := netip.MustParseAddrPort("0.0.0.0:40000")
	reg := registry.New(application.NewDestination(netip.AddrPort{}, local, false))
	reg.AddChannels([]uint64{17})
	conductor := &fakeConductor{}
	h := New(reg, &fakeTransport{}, conductor, nil)

	buf := buildDataFrame(t, 42, 17, 7, 0, frame.FlagNone, nil)
	if err := h.OnDataFrame(buf, len(buf), testSrc()); err != nil {
		t.Fatalf("OnDataFrame: %v", err)
	}

	if len(conductor.calls) != 1 {
		t.Fatalf("len(calls) = %d, want 1", len(conductor.calls))
	}
	call := conductor.calls[0]
	if call.sessionID != 42 || call.channelID != 17 || call.termID != 7 {
		t.Fatalf("unexpected create_term_buffer call: %+v", call)
	}
	// the destination passed to create_term_buffer carries the
	// subscription's own local/multicast identity, stamped with the
	// source address this session was first observed from.
	if call.dest.Remote() != testSrc() || call.dest.Local() != local || call.dest.Multicast() {
		t.Fatalf("unexpected create_term_buffer destination: %+v", call.dest)
	}

	sub, ok := reg.Subscription(17)
	if !ok {
		t.Fatal("expected subscription 17 to exist")
	}
	sess, ok := sub.Session(42)
	if !ok {
		t.Fatal("expected session 42 to be provisioned")
	}
	if sess.IsActive() {
		t.Fatal("expected session to remain Provisioned, not Active")
	}
}

// S2: once the conductor reports subscription-ready, an initial SM is
// sent.
func TestOnSubscriptionReady_SendsInitialStatusMessage(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	reg.AddChannels([]uint64{17})
	transport := &fakeTransport{}
	h := New(reg, transport, &fakeConductor{}, nil)

	buf := buildDataFrame(t, 42, 17, 7, 0, frame.FlagNone, nil)
	if err := h.OnDataFrame(buf, len(buf), testSrc()); err != nil {
		t.Fatalf("OnDataFrame: %v", err)
	}

	termBuf := application.NewTermBuffer(7, make([]byte, 4096))
	event := application.SubscriptionReadyEvent{ChannelID: 17, SessionID: 42, TermID: 7, Buffer: termBuf}
	if err := h.OnSubscriptionReady(event, nil); err != nil {
		t.Fatalf("OnSubscriptionReady: %v", err)
	}

	if len(transport.sent) != 1 {
		t.Fatalf("len(sent) = %d, want 1", len(transport.sent))
	}
	sm, err := frame.WrapStatusMessageHeader(transport.sent[0].buf)
	if err != nil {
		t.Fatalf("WrapStatusMessageHeader: %v", err)
	}
	if sm.Type() != frame.TypeSM || sm.Version() != frame.CurrentVersion {
		t.Fatalf("unexpected SM header: type=%v version=%v", sm.Type(), sm.Version())
	}
	if sm.SessionID() != 42 || sm.ChannelID() != 17 || sm.TermID() != 7 {
		t.Fatalf("unexpected SM ids: session=%d channel=%d term=%d", sm.SessionID(), sm.ChannelID(), sm.TermID())
	}
	if sm.HighestContiguousTermOffset() != 0 || sm.ReceiverWindow() != DefaultReceiverWindow {
		t.Fatalf("unexpected SM window fields: offset=%d window=%d", sm.HighestContiguousTermOffset(), sm.ReceiverWindow())
	}
	if transport.sent[0].remote != testSrc() {
		t.Fatalf("SM sent to %v, want %v", transport.sent[0].remote, testSrc())
	}
}

// S3: once Active, payload is reassembled into the bound term buffer.
func TestOnDataFrame_ReassemblesPayload(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	reg.AddChannels([]uint64{17})
	h := New(reg, &fakeTransport{}, &fakeConductor{}, nil)

	first := buildDataFrame(t, 42, 17, 7, 0, frame.FlagNone, nil)
	if err := h.OnDataFrame(first, len(first), testSrc()); err != nil {
		t.Fatalf("OnDataFrame: %v", err)
	}

	termBuf := application.NewTermBuffer(7, make([]byte, 4096))
	event := application.SubscriptionReadyEvent{ChannelID: 17, SessionID: 42, TermID: 7, Buffer: termBuf}
	if err := h.OnSubscriptionReady(event, nil); err != nil {
		t.Fatalf("OnSubscriptionReady: %v", err)
	}

	payload := []byte("hello")
	data := buildDataFrame(t, 42, 17, 7, 64, frame.FlagUnfragmented, payload)
	if err := h.OnDataFrame(data, len(data), testSrc()); err != nil {
		t.Fatalf("OnDataFrame: %v", err)
	}

	got := termBuf.Bytes()[64:69]
	if string(got) != "hello" {
		t.Fatalf("term buffer[64:69] = %q, want %q", got, "hello")
	}
}

// S4: a loss handler reporting a gap produces exactly one NAK with the
// expected fields.
func TestSendNak_EmitsExpectedFrame(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	reg.AddChannels([]uint64{17})
	transport := &fakeTransport{}
	h := New(reg, transport, &fakeConductor{}, nil)

	first := buildDataFrame(t, 42, 17, 7, 0, frame.FlagNone, nil)
	if err := h.OnDataFrame(first, len(first), testSrc()); err != nil {
		t.Fatalf("OnDataFrame: %v", err)
	}
	termBuf := application.NewTermBuffer(7, make([]byte, 4096))
	event := application.SubscriptionReadyEvent{ChannelID: 17, SessionID: 42, TermID: 7, Buffer: termBuf}
	if err := h.OnSubscriptionReady(event, nil); err != nil {
		t.Fatalf("OnSubscriptionReady: %v", err)
	}

	if err := h.SendNak(17, 42, 7, 64, 128); err != nil {
		t.Fatalf("SendNak: %v", err)
	}

	if len(transport.sent) != 2 { // initial SM + the NAK
		t.Fatalf("len(sent) = %d, want 2", len(transport.sent))
	}
	nak, err := frame.WrapNakHeader(transport.sent[1].buf)
	if err != nil {
		t.Fatalf("WrapNakHeader: %v", err)
	}
	if nak.Type() != frame.TypeNak || nak.Flags() != frame.FlagNone || nak.Version() != frame.CurrentVersion {
		t.Fatalf("unexpected NAK header: type=%v flags=%v version=%v", nak.Type(), nak.Flags(), nak.Version())
	}
	if nak.TermID() != 7 || nak.TermOffset() != 64 || nak.Length() != 128 {
		t.Fatalf("unexpected NAK fields: term=%d offset=%d length=%d", nak.TermID(), nak.TermOffset(), nak.Length())
	}
}

func TestSendNak_ShortSendIsFatal(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	reg.AddChannels([]uint64{17})
	transport := &fakeTransport{n: 1}
	h := New(reg, transport, &fakeConductor{}, nil)

	first := buildDataFrame(t, 42, 17, 7, 0, frame.FlagNone, nil)
	if err := h.OnDataFrame(first, len(first), testSrc()); err != nil {
		t.Fatalf("OnDataFrame: %v", err)
	}
	termBuf := application.NewTermBuffer(7, make([]byte, 4096))
	event := application.SubscriptionReadyEvent{ChannelID: 17, SessionID: 42, TermID: 7, Buffer: termBuf}
	_ = h.OnSubscriptionReady(event, nil) // first send (the initial SM) also short-sends; ignore here

	if err := h.SendNak(17, 42, 7, 64, 128); err == nil {
		t.Fatal("expected short send to surface an error")
	}
}

func TestOnDataFrame_UnknownChannelIsDroppedSilently(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	conductor := &fakeConductor{}
	h := New(reg, &fakeTransport{}, conductor, nil)

	buf := buildDataFrame(t, 1, 999, 1, 0, frame.FlagNone, nil)
	if err := h.OnDataFrame(buf, len(buf), testSrc()); err != nil {
		t.Fatalf("OnDataFrame: %v", err)
	}
	if len(conductor.calls) != 0 {
		t.Fatalf("expected no conductor calls for unknown channel, got %d", len(conductor.calls))
	}
}

func TestOnSubscriptionReady_UnknownSubscriptionIsFatal(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	h := New(reg, &fakeTransport{}, &fakeConductor{}, nil)

	event := application.SubscriptionReadyEvent{ChannelID: 1, SessionID: 2, TermID: 3}
	if err := h.OnSubscriptionReady(event, nil); err == nil {
		t.Fatal("expected a fatal logic error for an unknown subscription")
	}
}
