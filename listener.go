package rasta

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ctiedt/rasta-rs/internal"
	"github.com/ctiedt/rasta-rs/internal/metrics"
)

// Acceptor yields accepted streams one at a time, matching net.Listener's
// Accept shape but over the narrower Stream contract.
type Acceptor interface {
	Accept() (Stream, error)
}

// Listener is the server-role RaSTA state machine: accept a stream,
// dispatch incoming messages by type, respond, and maintain the set of
// connected peer ids. A Listener handles one accepted stream at a time to
// completion (spec §4.4, §5); it does not itself spawn goroutines.
type Listener struct {
	mu    sync.Mutex
	id    ID
	clock Clock
	log   internal.Logger

	peers   map[ID]struct{}
	metrics *metrics.ConnectionCollector
}

// NewListener constructs a Listener identified by id.
func NewListener(id ID) *Listener {
	return &Listener{
		id:    id,
		clock: SystemClock{},
		peers: make(map[ID]struct{}),
	}
}

// SetLogger attaches a structured logger.
func (l *Listener) SetLogger(log *slog.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = internal.Logger{Log: log}
}

// SetClock overrides the wall-clock source, primarily for tests.
func (l *Listener) SetClock(clk Clock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clock = clk
}

// SetMetrics attaches a collector that tracks per-peer connection state and
// heartbeat/timeout counters as this listener serves sessions.
func (l *Listener) SetMetrics(collector *metrics.ConnectionCollector) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.metrics = collector
}

// Connected reports whether peer currently has an open session.
func (l *Listener) Connected(peer ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.peers[peer]
	return ok
}

// Listen repeatedly accepts a stream from acc and serves it to completion
// before accepting the next, per the serial single-stream-at-a-time model
// of spec §5. It returns only when acc.Accept returns an error.
func (l *Listener) Listen(acc Acceptor, onData func(Message) []byte) error {
	for {
		stream, err := acc.Accept()
		if err != nil {
			return fmt.Errorf("rasta: accept: %w", err)
		}
		if err := l.Serve(stream, onData); err != nil {
			l.log.Warn("session ended with error", slog.String("err", err.Error()))
		}
	}
}

// Serve runs the receive/dispatch loop for a single accepted stream until
// the peer disconnects, the stream errs, or a fatal protocol violation
// occurs. onData is invoked for each Data message from a known sender; its
// return value, if non-nil, is sent back as a Data reply, otherwise a
// heartbeat is sent.
func (l *Listener) Serve(stream Stream, onData func(Message) []byte) error {
	var (
		lastSeqNr    uint32
		lastSeqNrSet bool
		lastMsgTime  = time.Now()
		sender       ID
		senderKnown  bool
	)
	for {
		buf, err := readFrameBytes(stream)
		if err != nil {
			if errors.Is(err, ErrTimeout) || errors.Is(err, io.EOF) {
				if senderKnown {
					l.removePeer(sender)
					if l.metrics != nil {
						l.metrics.SetState(uint32(sender), uint8(StateClosed))
					}
				}
				if errors.Is(err, ErrTimeout) && l.metrics != nil {
					l.metrics.IncTimeout(uint32(l.id))
				}
				l.log.Debug("peer session ended", slog.String("reason", err.Error()))
				return nil
			}
			return err
		}
		msg, err := Decode(buf)
		if err != nil {
			return err
		}
		sender = msg.Sender
		senderKnown = true

		if lastSeqNrSet && msg.ConfirmedSequenceNumber != lastSeqNr {
			if l.metrics != nil {
				l.metrics.IncSequenceError(uint32(l.id))
			}
			return &SequenceError{Want: lastSeqNr, Got: msg.ConfirmedSequenceNumber}
		}
		now := time.Now()
		if now.Sub(lastMsgTime) > Timeout {
			disc := NewDisconnectRequest(msg.Sender, l.id, msg.SequenceNumber+1, msg.SequenceNumber, l.clock.Now(), msg.Timestamp)
			if werr := writeMessageTo(stream, disc); werr != nil {
				return werr
			}
			l.log.Info("session stale, sent disconnect", slog.Uint64("peer", uint64(msg.Sender)))
			l.removePeer(msg.Sender)
			return nil
		}
		lastMsgTime = now
		lastSeqNr = msg.SequenceNumber
		lastSeqNrSet = true

		switch msg.Type {
		case MessageTypeConnReq:
			resp := NewConnectionResponse(msg.Sender, l.id, msg.SequenceNumber, l.clock.Now(), msg.Timestamp, NSendMax)
			if err := writeMessageTo(stream, resp); err != nil {
				return err
			}
			l.addPeer(msg.Sender)
			lastSeqNr = msg.SequenceNumber + 1
			l.log.Info("accepted connection", slog.Uint64("peer", uint64(msg.Sender)))
			if l.metrics != nil {
				l.metrics.SetState(uint32(msg.Sender), uint8(StateUp))
			}

		case MessageTypeConnResp:
			// Not expected at a listener; ignore.

		case MessageTypeDiscReq:
			l.removePeer(msg.Sender)
			if l.metrics != nil {
				l.metrics.SetState(uint32(msg.Sender), uint8(StateClosed))
			}
			return nil

		case MessageTypeHB:
			if l.Connected(msg.Sender) {
				if l.metrics != nil {
					l.metrics.IncHeartbeatReceived(uint32(msg.Sender))
				}
				reply := NewHeartbeat(msg.Sender, l.id, lastSeqNr+1, msg.SequenceNumber, l.clock.Now(), msg.Timestamp)
				if err := writeMessageTo(stream, reply); err != nil {
					return err
				}
				lastSeqNr++
				if l.metrics != nil {
					l.metrics.IncHeartbeatSent(uint32(msg.Sender))
				}
			}

		case MessageTypeData:
			if l.Connected(msg.Sender) {
				respData := onData(msg)
				var reply Message
				if respData != nil {
					reply = NewDataMessage(msg.Sender, l.id, lastSeqNr+1, msg.SequenceNumber, l.clock.Now(), msg.Timestamp, respData)
				} else {
					reply = NewHeartbeat(msg.Sender, l.id, lastSeqNr+1, msg.SequenceNumber, l.clock.Now(), msg.Timestamp)
				}
				if err := writeMessageTo(stream, reply); err != nil {
					return err
				}
				lastSeqNr++
			}

		case MessageTypeRetrReq, MessageTypeRetrResp, MessageTypeRetrData:
			return newMalformed(fmt.Sprintf("retransmission message type %s is delegated to the transport and unreachable here", msg.Type))
		}
	}
}

func (l *Listener) addPeer(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.peers[id] = struct{}{}
}

func (l *Listener) removePeer(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.peers, id)
}

func writeMessageTo(w io.Writer, m Message) error {
	_, err := w.Write(Encode(m))
	if err != nil {
		return fmt.Errorf("rasta: write: %w", err)
	}
	return nil
}
