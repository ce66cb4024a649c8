package udpconn

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestDialInvalidAddress(t *testing.T) {
	_, err := Dial(context.Background(), Options{Server: "not an address"})
	if !errors.Is(err, ErrConnectionUnavailable) {
		t.Errorf("expected ErrConnectionUnavailable, got %v", err)
	}
}

func TestSendRecv(t *testing.T) {
	peer, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("peer listen: %s", err)
	}
	defer peer.Close()

	conn, err := Dial(context.Background(), Options{
		Server:   peer.LocalAddr().String(),
		HopLimit: 64,
		TOS:      0x10,
	})
	if err != nil {
		t.Fatalf("Dial: %s", err)
	}
	defer conn.Close()

	if err := conn.Send([]byte("ping")); err != nil {
		t.Fatalf("Send: %s", err)
	}

	buf := make([]byte, 64)
	peer.SetReadDeadline(time.Now().Add(time.Second))
	n, from, err := peer.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("peer read: %s", err)
	}
	if string(buf[:n]) != "ping" {
		t.Errorf("peer received %q", buf[:n])
	}

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan []byte, 1)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- conn.ReadLoop(ctx, func(b []byte) { received <- b })
	}()

	if _, err := peer.WriteToUDP([]byte("pong"), from); err != nil {
		t.Fatalf("peer write: %s", err)
	}

	select {
	case b := <-received:
		if string(b) != "pong" {
			t.Errorf("received %q", b)
		}
	case <-time.After(time.Second):
		t.Fatal("reply not delivered")
	}

	cancel()
	select {
	case err := <-loopErr:
		if err != nil {
			t.Errorf("ReadLoop returned %s", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ReadLoop did not stop")
	}
}
