package sci

import (
	rasta "github.com/ctiedt/rasta-rs"
	"github.com/ctiedt/rasta-rs/internal/metrics"
)

// Listener is a listening SCI endpoint built on a rasta.Listener: it
// decodes each accepted Data message as a Telegram, hands it to onReceive,
// and encodes whatever Telegram it returns (if any) as the reply.
type Listener struct {
	listener *rasta.Listener
	name     string
	metrics  *metrics.ConnectionCollector
}

// NewListener wraps listener for use by the local endpoint identified by name.
func NewListener(listener *rasta.Listener, name string) *Listener {
	return &Listener{listener: listener, name: name}
}

// Name returns the listener's local SCI endpoint name.
func (l *Listener) Name() string { return l.name }

// SetMetrics attaches a collector that counts telegrams by sub-protocol,
// keyed by the RaSTA id of the peer that sent or received them.
func (l *Listener) SetMetrics(collector *metrics.ConnectionCollector) {
	l.metrics = collector
}

// Listen accepts streams from acc and serves each to completion, decoding
// Data payloads as Telegrams and re-encoding onReceive's non-nil replies.
// A malformed telegram is dropped without logging, and answered like a nil
// reply, rather than terminating the session, since a framing-level error
// belongs to RaSTA, not SCI.
func (l *Listener) Listen(acc rasta.Acceptor, onReceive func(Telegram) *Telegram) error {
	return l.listener.Listen(acc, func(msg rasta.Message) []byte {
		tg, err := Decode(msg.Data)
		if err != nil {
			return nil
		}
		if l.metrics != nil {
			l.metrics.IncTelegramReceived(uint32(msg.Sender), tg.ProtocolType.String())
		}
		reply := onReceive(tg)
		if reply == nil {
			return nil
		}
		if l.metrics != nil {
			l.metrics.IncTelegramSent(uint32(msg.Sender), reply.ProtocolType.String())
		}
		return Encode(*reply)
	})
}
