package rasta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ctiedt/rasta-rs/internal"
	"github.com/ctiedt/rasta-rs/internal/metrics"
)

// Stream is the transport contract a Connection and Listener require: a
// reliable, ordered, bidirectional byte stream supporting a read deadline.
// Any net.Conn satisfies Stream.
type Stream interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
}

// Command drives Connection.Run's loop, mirroring the RaSTA Data/Wait/Disconnect
// control flow from spec §4.3.
type Command struct {
	Kind CommandKind
	Data []byte
}

type CommandKind uint8

const (
	CommandData CommandKind = iota
	CommandWait
	CommandDisconnect
)

// DataCommand builds a Command that sends data.
func DataCommand(data []byte) Command { return Command{Kind: CommandData, Data: data} }

// WaitCommand builds a Command that sends a heartbeat and sleeps.
func WaitCommand() Command { return Command{Kind: CommandWait} }

// DisconnectCommand builds a Command that closes the connection and ends the loop.
func DisconnectCommand() Command { return Command{Kind: CommandDisconnect} }

// Connection is the client-role RaSTA state machine: open, send data,
// heartbeat, close, with sequence-number and timestamp bookkeeping. A
// Connection owns its Stream exclusively for its lifetime.
type Connection struct {
	mu     sync.Mutex
	state  State
	id     ID
	peer   ID
	seqNr  uint32
	confTs uint32
	stream Stream
	clock  Clock
	log    internal.Logger

	initialSeqNr uint32
	randomSeed   uint32
	useRandom    bool

	metrics *metrics.ConnectionCollector
}

// Option configures a Connection at construction time.
type Option func(*Connection)

// WithLogger attaches a structured logger. A nil logger (the default)
// discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connection) { c.log = internal.Logger{Log: l} }
}

// WithClock overrides the wall-clock source, primarily for tests.
func WithClock(clk Clock) Option {
	return func(c *Connection) { c.clock = clk }
}

// WithInitialSequenceNumber fixes the sequence number connection_request
// will use, overriding the package default InitialSequenceNumber.
func WithInitialSequenceNumber(n uint32) Option {
	return func(c *Connection) { c.initialSeqNr = n; c.useRandom = false }
}

// WithRandomInitialSequenceNumber derives the initial sequence number from
// seed via internal.Prand32 instead of using a fixed constant, matching the
// reference's "rand" feature flag (see spec Open Questions). The derived
// value is still chosen once and held stable for the life of the
// connection.
func WithRandomInitialSequenceNumber(seed uint32) Option {
	return func(c *Connection) { c.randomSeed = seed; c.useRandom = true }
}

// WithMetrics registers the connection with collector, keeping its state
// gauge and heartbeat/timeout counters up to date for the connection's
// lifetime.
func WithMetrics(collector *metrics.ConnectionCollector) Option {
	return func(c *Connection) {
		c.metrics = collector
		collector.Add(uint32(c.id))
	}
}

// NewConnection constructs a Connection in StateDown, owning stream for its
// lifetime.
func NewConnection(id ID, stream Stream, opts ...Option) *Connection {
	c := &Connection{
		state:        StateDown,
		id:           id,
		stream:       stream,
		clock:        SystemClock{},
		initialSeqNr: InitialSequenceNumber,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLogger attaches a structured logger after construction.
func (c *Connection) SetLogger(l *slog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = internal.Logger{Log: l}
}

// State returns the connection's current state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ID returns the connection's own local id.
func (c *Connection) ID() ID { return c.id }

func (c *Connection) nextSeqPair() (confirmed, next uint32) {
	c.seqNr++
	return c.seqNr - 1, c.seqNr
}

func (c *Connection) seed() uint32 {
	if c.useRandom {
		return internal.Prand32(c.randomSeed)
	}
	return c.initialSeqNr
}

// Open performs the RaSTA handshake against peer. Precondition: StateDown.
func (c *Connection) Open(peer ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDown {
		return fmt.Errorf("rasta: open: %w", ErrStateError)
	}
	initial := c.seed()
	req := NewConnectionRequest(peer, c.id, c.clock.Now(), initial, NSendMax)
	if err := c.writeMessage(req); err != nil {
		return err
	}
	c.log.Debug("sent connection request", slog.Uint64("peer", uint64(peer)), slog.Uint64("seq", uint64(initial)))
	resp, err := c.readMessage()
	if err != nil {
		return err
	}
	if resp.Type != MessageTypeConnResp {
		return newMalformed(fmt.Sprintf("expected ConnResp, got %s", resp.Type))
	}
	if len(resp.Data) < 4 || [4]byte(resp.Data[:4]) != RASTAVersion {
		return fmt.Errorf("rasta: open: %w", ErrVersionMismatch)
	}
	c.state = StateUp
	c.peer = resp.Sender
	c.log.Info("connection up", slog.Uint64("peer", uint64(c.peer)), slog.Uint64("seq", uint64(c.seqNr)))
	if c.metrics != nil {
		c.metrics.SetState(uint32(c.id), uint8(c.state))
	}
	return nil
}

// SendData sends a Data message. Precondition: StateUp. Does not await a
// reply; read it via ReceiveMessage or the Run loop.
func (c *Connection) SendData(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUp {
		return fmt.Errorf("rasta: send_data: %w", ErrStateError)
	}
	confirmed, next := c.nextSeqPair()
	msg := NewDataMessage(c.peer, c.id, next, confirmed, c.clock.Now(), c.confTs, data)
	return c.writeMessage(msg)
}

// SendHeartbeat sends a HB message and awaits the single HB reply.
func (c *Connection) SendHeartbeat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUp {
		return fmt.Errorf("rasta: send_heartbeat: %w", ErrStateError)
	}
	confirmed, next := c.nextSeqPair()
	msg := NewHeartbeat(c.peer, c.id, next, confirmed, c.clock.Now(), c.confTs)
	if err := c.writeMessage(msg); err != nil {
		return err
	}
	if c.metrics != nil {
		c.metrics.IncHeartbeatSent(uint32(c.id))
	}
	_, err := c.readMessage()
	if err == nil && c.metrics != nil {
		c.metrics.IncHeartbeatReceived(uint32(c.id))
	}
	return err
}

// Close is a no-op unless the connection is Up, in which case it sends
// DiscReq and transitions to StateClosed. Close is idempotent and does not
// itself close the underlying Stream; callers that own the Stream should
// close it separately once done, matching the scoped-release contract of
// spec §9 (Go has no destructors, so release is explicit).
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUp {
		return nil
	}
	confirmed, next := c.nextSeqPair()
	msg := NewDisconnectRequest(c.peer, c.id, next, confirmed, c.clock.Now(), c.confTs)
	err := c.writeMessage(msg)
	c.state = StateClosed
	if c.metrics != nil {
		c.metrics.SetState(uint32(c.id), uint8(c.state))
	}
	if err != nil {
		c.log.Warn("error sending disconnect request", slog.String("err", err.Error()))
	}
	return nil
}

// ReceiveMessage reads one frame worth of bytes and parses it, reading by
// length rather than relying on a single read returning a complete frame
// (see DESIGN.md Open Question 3).
func (c *Connection) ReceiveMessage() (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readMessage()
}

func (c *Connection) writeMessage(m Message) error {
	buf := Encode(m)
	c.log.Trace("write frame", slog.String("type", m.Type.String()), slog.Uint64("seq", uint64(m.SequenceNumber)), slog.Int("len", len(buf)))
	_, err := c.stream.Write(buf)
	if err != nil {
		return fmt.Errorf("rasta: write: %w", err)
	}
	return nil
}

func (c *Connection) readMessage() (Message, error) {
	buf, err := readFrameBytes(c.stream)
	if err != nil {
		if c.metrics != nil && errors.Is(err, ErrTimeout) {
			c.metrics.IncTimeout(uint32(c.id))
		}
		return Message{}, err
	}
	msg, err := Decode(buf)
	if err != nil {
		return Message{}, err
	}
	c.log.Trace("read frame", slog.String("type", msg.Type.String()), slog.Uint64("seq", uint64(msg.SequenceNumber)))
	// Every message received from the peer becomes the baseline the next
	// message we send must confirm, matching the listener's symmetric
	// bookkeeping in Serve.
	c.seqNr = msg.SequenceNumber
	c.confTs = msg.Timestamp
	return msg, nil
}

// readFrameBytes reads a complete RaSTA frame from r: the 2-byte length
// prefix, then exactly length-2 more bytes. A read that times out (per r's
// deadline) surfaces as ErrTimeout; any other I/O error or a zero-length
// read surfaces as-is.
func readFrameBytes(r Stream) ([]byte, error) {
	if err := r.SetReadDeadline(time.Now().Add(Timeout)); err != nil {
		return nil, fmt.Errorf("rasta: set deadline: %w", err)
	}
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, classifyReadErr(err)
	}
	length := binary.LittleEndian.Uint16(lenBuf[:])
	if int(length) < minMessageLength {
		return nil, newMalformed(fmt.Sprintf("length field %d smaller than minimum frame size %d", length, minMessageLength))
	}
	buf := make([]byte, length)
	copy(buf[:2], lenBuf[:])
	if err := r.SetReadDeadline(time.Now().Add(Timeout)); err != nil {
		return nil, fmt.Errorf("rasta: set deadline: %w", err)
	}
	if _, err := io.ReadFull(r, buf[2:]); err != nil {
		return nil, classifyReadErr(err)
	}
	return buf, nil
}

func classifyReadErr(err error) error {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("rasta: %w", ErrTimeout)
	}
	return fmt.Errorf("rasta: read: %w", err)
}

// Run opens the connection to peer and then repeatedly invokes next with
// the most recently received Data payload (nil on the first iteration),
// driving the loop with the Command it returns. See spec §4.3.
func (c *Connection) Run(peer ID, next func(lastData []byte) Command) error {
	if err := c.Open(peer); err != nil {
		return err
	}
	var lastData []byte
	for {
		cmd := next(lastData)
		switch cmd.Kind {
		case CommandData:
			if err := c.SendData(cmd.Data); err != nil {
				return err
			}
			msg, err := c.ReceiveMessage()
			if err != nil {
				return err
			}
			if msg.Type == MessageTypeData {
				lastData = msg.Data
			} else {
				lastData = nil
			}
		case CommandWait:
			if err := c.SendHeartbeat(); err != nil {
				return err
			}
			time.Sleep(Timeout / 2)
		case CommandDisconnect:
			return c.Close()
		}
	}
}
