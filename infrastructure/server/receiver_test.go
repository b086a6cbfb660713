package server

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"mediadriver/application"
	"mediadriver/infrastructure/driver"
	"mediadriver/infrastructure/proxy"
	"mediadriver/infrastructure/registry"
	"mediadriver/infrastructure/settings"
)

type fakeTransport struct{}

func (fakeTransport) SendTo(buf []byte, remote netip.AddrPort) (int, error) { return len(buf), nil }
func (fakeTransport) Close() error                                         { return nil }

type fakeConductor struct{}

func (fakeConductor) CreateTermBuffer(dest application.Destination, sessionID, channelID, termID uint64) error {
	return nil
}

func TestReceiver_DrainsAddSubscriberCommand(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	handler := driver.New(reg, fakeTransport{}, fakeConductor{}, nil)
	rp := proxy.NewDefaultReceiverProxy("127.0.0.1:9000")

	recv := NewReceiver(reg, handler, rp, nil, 5*time.Millisecond)

	if err := rp.AddChannels([]uint64{1, 2, 3}); err != nil {
		t.Fatalf("AddChannels: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_ = recv.Run(ctx)

	if reg.ChannelCount() != 3 {
		t.Fatalf("ChannelCount = %d, want 3", reg.ChannelCount())
	}
}

func TestReceiver_DrainsNewReceiveBufferNotification(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	reg.AddChannels([]uint64{17})
	handler := driver.New(reg, fakeTransport{}, fakeConductor{}, nil)
	rp := proxy.NewDefaultReceiverProxy("127.0.0.1:9000")

	// provision the session the way a first data frame would.
	sub, _ := reg.Subscription(17)
	reg.ProvisionSession(sub, 42, netip.MustParseAddrPort("10.0.0.1:5000"))

	termBuf := application.NewTermBuffer(7, make([]byte, settings.DefaultTermBufferLength))
	event := application.SubscriptionReadyEvent{ChannelID: 17, SessionID: 42, TermID: 7, Buffer: termBuf}
	if !rp.NewReceiveBuffer(event, nil) {
		t.Fatal("expected NewReceiveBuffer to succeed")
	}

	recv := NewReceiver(reg, handler, rp, nil, 5*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_ = recv.Run(ctx)

	sess, ok := sub.Session(42)
	if !ok || !sess.IsActive() {
		t.Fatalf("expected session to be Active after notification drained, ok=%v", ok)
	}
	if sess.TermID() != 7 {
		t.Fatalf("TermID = %d, want 7", sess.TermID())
	}
}

func TestReceiver_StopsOnContextCancellation(t *testing.T) {
	reg := registry.New(application.NewDestination(netip.AddrPort{}, netip.AddrPort{}, false))
	handler := driver.New(reg, fakeTransport{}, fakeConductor{}, nil)
	rp := proxy.NewDefaultReceiverProxy("127.0.0.1:9000")
	recv := NewReceiver(reg, handler, rp, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- recv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected context-cancellation error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
