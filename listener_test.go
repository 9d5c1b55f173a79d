package rasta

import (
	"net"
	"testing"
)

func TestListenerRejectsSequenceMismatch(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	listener := NewListener(ID(1))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listener.Serve(serverSide, func(Message) []byte { return nil })
	}()

	client := NewConnection(ID(2), clientSide, WithInitialSequenceNumber(5))
	if err := client.Open(ID(1)); err != nil {
		t.Fatalf("open: %v", err)
	}

	// Forge a heartbeat with a bogus confirmed sequence number to trigger
	// the listener's sequence check.
	bogus := NewHeartbeat(ID(1), ID(2), 999, 999, 1, 1)
	if err := client.writeMessage(bogus); err != nil {
		t.Fatalf("write bogus heartbeat: %v", err)
	}

	err := <-serveErr
	if !IsSequenceError(err) {
		t.Fatalf("expected sequence error, got %v", err)
	}
}

func TestListenerIgnoresUnconnectedHeartbeat(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	listener := NewListener(ID(1))
	if listener.Connected(ID(99)) {
		t.Fatalf("expected no peers connected initially")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listener.Serve(serverSide, func(Message) []byte { return nil })
	}()

	// A heartbeat from an unknown, never-connected sender should be
	// silently ignored rather than acknowledged.
	hb := NewHeartbeat(ID(1), ID(99), 1, 0, 1, 0)
	buf := Encode(hb)
	if _, err := clientSide.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	clientSide.Close()
	serverSide.Close()
	<-serveErr
}
