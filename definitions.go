// Package rasta implements a simplified RaSTA (Rail Safe Transport
// Application) transport: framed binary messages over a reliable byte
// stream, a sequence-number discipline, heartbeats, and a connection
// lifecycle shared between a client-role Connection and a server-role
// Listener.
package rasta

import "time"

// ID identifies a RaSTA endpoint within a network.
type ID uint32

// MessageType is the wire code identifying a RaSTA message's kind.
type MessageType uint16

// Message type codes as they appear on the wire, at header offset 3.
const (
	MessageTypeConnReq  MessageType = 6200
	MessageTypeConnResp MessageType = 6201
	MessageTypeRetrReq  MessageType = 6212
	MessageTypeRetrResp MessageType = 6213
	MessageTypeDiscReq  MessageType = 6216
	MessageTypeHB       MessageType = 6220
	MessageTypeData     MessageType = 6240
	MessageTypeRetrData MessageType = 6241
)

func (m MessageType) String() string {
	switch m {
	case MessageTypeConnReq:
		return "ConnReq"
	case MessageTypeConnResp:
		return "ConnResp"
	case MessageTypeRetrReq:
		return "RetrReq"
	case MessageTypeRetrResp:
		return "RetrResp"
	case MessageTypeDiscReq:
		return "DiscReq"
	case MessageTypeHB:
		return "HB"
	case MessageTypeData:
		return "Data"
	case MessageTypeRetrData:
		return "RetrData"
	default:
		return "MessageType(unknown)"
	}
}

// State enumerates the states a RaSTA connection progresses through.
type State uint8

const (
	// StateClosed is the terminal state; a connection in this state has
	// sent its DiscReq and will not reopen. The Stream itself is closed by
	// its owner, not by the Connection.
	StateClosed State = iota
	// StateDown is the state a freshly constructed Connection starts in.
	StateDown
	// StateStart is reserved by the specification. This implementation
	// never assigns it.
	StateStart
	// StateUp is reached after a successful handshake; data and
	// heartbeats may flow.
	StateUp
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateDown:
		return "Down"
	case StateStart:
		return "Start"
	case StateUp:
		return "Up"
	default:
		return "State(unknown)"
	}
}

// IsUp reports whether the connection has completed its handshake.
func (s State) IsUp() bool { return s == StateUp }

// IsClosed reports whether the connection has been torn down.
func (s State) IsClosed() bool { return s == StateClosed }

// Protocol constants, see spec §6.
const (
	// NSendMax is the advertised receive window exchanged in ConnReq/ConnResp.
	NSendMax uint16 = 65535

	// Timeout bounds a read on the wire and the idle-disconnect threshold.
	Timeout = 500 * time.Millisecond

	// InitialSequenceNumber is the default fixed initial sequence number
	// used for connection_request when neither WithInitialSequenceNumber
	// nor WithRandomInitialSequenceNumber is supplied. See DESIGN.md, Open Question 1.
	InitialSequenceNumber uint32 = 4

	// SCIVersion is the version byte exchanged between SCI endpoints,
	// unrelated to RASTAVersion but defined alongside it in the
	// specification's external interfaces.
	SCIVersion byte = 0x01
)

// RASTAVersion is the 4-byte version string exchanged at offset 0 of the
// data area of ConnReq/ConnResp, ASCII "0301".
var RASTAVersion = [4]byte{0x30, 0x33, 0x30, 0x31}

// Wire layout constants. The header occupies bytes [0, headerSize); data
// occupies [headerSize, length-securityCodeSize); the security code
// occupies the trailing securityCodeSize bytes. The reference's own
// constructors disagree with its documented 8-byte security code (its
// `length - 36` decode formula only leaves room for 2 trailing bytes once
// data starts at headerSize); this implementation follows the reference's
// actual, working arithmetic rather than its stated field width. See
// DESIGN.md.
const (
	headerSize       = 34
	securityCodeSize = 2
	minMessageLength = headerSize + securityCodeSize

	// connDataSize is the size of the data area carried by ConnReq and
	// ConnResp: a 4-byte version at offset 0, a 2-byte n_sendmax at
	// offset 5, and 7 reserved trailing zero bytes.
	connDataSize = 14

	// discReqLength is DiscReq's declared length, fixed independently of
	// its (empty) data per the reference.
	discReqLength = 40
)

// Clock abstracts the wall-clock source used to stamp messages, returning
// seconds since the Unix epoch. Exists so tests can supply a deterministic
// source instead of time.Now.
type Clock interface {
	Now() uint32
}

// SystemClock is a Clock backed by the host's real-time clock.
type SystemClock struct{}

func (SystemClock) Now() uint32 { return uint32(time.Now().Unix()) }
