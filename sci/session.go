package sci

import (
	"fmt"
	"time"

	rasta "github.com/ctiedt/rasta-rs"
	"github.com/ctiedt/rasta-rs/internal/metrics"
)

// Command drives Session.Run's loop, the SCI-level equivalent of
// rasta.Command: send a telegram and await the reply, send a heartbeat and
// wait, or disconnect and stop.
type Command struct {
	Kind     CommandKind
	Telegram Telegram
}

type CommandKind uint8

const (
	CommandTelegram CommandKind = iota
	CommandWait
	CommandDisconnect
)

func TelegramCommand(t Telegram) Command { return Command{Kind: CommandTelegram, Telegram: t} }
func WaitCommand() Command                { return Command{Kind: CommandWait} }
func DisconnectCommand() Command          { return Command{Kind: CommandDisconnect} }

// Session carries SCI telegrams over a rasta.Connection, resolving a
// telegram's receiver name to a RaSTA peer id via a caller-supplied
// mapping. One Session drives exactly one rasta.Connection.
type Session struct {
	conn     *rasta.Connection
	name     string
	nameToID map[string]rasta.ID
	metrics  *metrics.ConnectionCollector
	localID  rasta.ID
}

// NewSession wraps conn for use by a local endpoint identified by name,
// resolving peers through nameToID. Precondition: conn is in StateDown.
func NewSession(conn *rasta.Connection, name string, nameToID map[string]rasta.ID) (*Session, error) {
	if conn.State() != rasta.StateDown {
		return nil, fmt.Errorf("sci: new_session: %w", ErrStateError)
	}
	return &Session{conn: conn, name: name, nameToID: nameToID, localID: conn.ID()}, nil
}

// Name returns the session's local SCI endpoint name.
func (s *Session) Name() string { return s.name }

// SetMetrics attaches a collector that counts telegrams sent and received by
// this session, by sub-protocol.
func (s *Session) SetMetrics(collector *metrics.ConnectionCollector) {
	s.metrics = collector
}

// SendTelegram opens the underlying connection to t.Receiver if it is not
// already up, then sends t as a RaSTA data message.
func (s *Session) SendTelegram(t Telegram) error {
	if s.conn.State() == rasta.StateDown {
		peer, ok := s.nameToID[t.Receiver]
		if !ok {
			return fmt.Errorf("sci: send_telegram: %w", ErrMissingRastaID)
		}
		if err := s.conn.Open(peer); err != nil {
			return err
		}
	}
	if err := s.conn.SendData(Encode(t)); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncTelegramSent(uint32(s.localID), t.ProtocolType.String())
	}
	return nil
}

// ReceiveTelegram reads and decodes the next RaSTA data message as a
// Telegram.
func (s *Session) ReceiveTelegram() (Telegram, error) {
	msg, err := s.conn.ReceiveMessage()
	if err != nil {
		return Telegram{}, err
	}
	tg, err := Decode(msg.Data)
	if err != nil {
		return Telegram{}, err
	}
	if s.metrics != nil {
		s.metrics.IncTelegramReceived(uint32(s.localID), tg.ProtocolType.String())
	}
	return tg, nil
}

// Run opens the connection to peer if needed, then repeatedly invokes next
// with the most recently received Telegram (nil on the first iteration),
// driving the loop with the Command it returns. Mirrors rasta.Connection's
// Run at telegram granularity.
func (s *Session) Run(peer string, next func(last *Telegram) Command) error {
	if s.conn.State() == rasta.StateDown {
		id, ok := s.nameToID[peer]
		if !ok {
			return fmt.Errorf("sci: run: %w", ErrMissingRastaID)
		}
		if err := s.conn.Open(id); err != nil {
			return err
		}
	}
	var last *Telegram
	for {
		cmd := next(last)
		switch cmd.Kind {
		case CommandTelegram:
			if err := s.SendTelegram(cmd.Telegram); err != nil {
				return err
			}
			tg, err := s.ReceiveTelegram()
			if err != nil {
				return err
			}
			last = &tg
		case CommandWait:
			if err := s.conn.SendHeartbeat(); err != nil {
				return err
			}
			time.Sleep(rasta.Timeout / 2)
			last = nil
		case CommandDisconnect:
			return s.conn.Close()
		}
	}
}

// Close closes the underlying RaSTA connection.
func (s *Session) Close() error {
	return s.conn.Close()
}
