package rasta

import (
	"encoding/binary"
	"fmt"
)

// byteOrder is the endianness used for every multi-byte header field and
// for the data area's n_sendmax field. The reference implementation uses
// host-native order; spec §9 calls that non-portable and recommends
// pinning little-endian, which is what this implementation does. The tests
// read header fields back through byteOrder and check the SCI telegram
// bytes carried by one Data frame; no test compares a whole header byte
// for byte.
var byteOrder = binary.LittleEndian

// Frame is a RaSTA message: a fixed-offset header, a variable-length data
// area, and a trailing security code, all backed by a single byte slice.
// Frame performs no I/O; it is the pure wire codec described in spec §4.1.
type Frame struct {
	buf []byte
}

// NewFrame wraps buf as a Frame without validating its contents beyond a
// minimum-length check. Use Decode to parse and fully validate a frame
// read off the wire.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < minMessageLength {
		return Frame{}, newMalformed(fmt.Sprintf("buffer too short: %d bytes, want at least %d", len(buf), minMessageLength))
	}
	return Frame{buf: buf}, nil
}

// RawData returns the underlying slice the Frame was built on.
func (f Frame) RawData() []byte { return f.buf }

func (f Frame) Length() uint16 { return byteOrder.Uint16(f.buf[0:2]) }

func (f Frame) MessageType() MessageType {
	return MessageType(byteOrder.Uint16(f.buf[3:5]))
}

func (f Frame) Receiver() ID { return ID(byteOrder.Uint32(f.buf[6:10])) }

func (f Frame) Sender() ID { return ID(byteOrder.Uint32(f.buf[10:14])) }

func (f Frame) SequenceNumber() uint32 { return byteOrder.Uint32(f.buf[15:19]) }

func (f Frame) ConfirmedSequenceNumber() uint32 { return byteOrder.Uint32(f.buf[19:23]) }

func (f Frame) Timestamp() uint32 { return byteOrder.Uint32(f.buf[24:28]) }

func (f Frame) ConfirmedTimestamp() uint32 { return byteOrder.Uint32(f.buf[29:33]) }

// Data returns the message-type-dependent payload, computed from the
// authoritative Length field: [headerSize, Length-securityCodeSize).
func (f Frame) Data() []byte {
	end := int(f.Length()) - securityCodeSize
	if end < headerSize {
		return nil
	}
	return f.buf[headerSize:end]
}

func (f Frame) SecurityCode() []byte {
	l := int(f.Length())
	return f.buf[l-securityCodeSize : l]
}

func (f Frame) setLength(v uint16)                  { byteOrder.PutUint16(f.buf[0:2], v) }
func (f Frame) setMessageType(v MessageType)        { byteOrder.PutUint16(f.buf[3:5], uint16(v)) }
func (f Frame) setReceiver(v ID)                    { byteOrder.PutUint32(f.buf[6:10], uint32(v)) }
func (f Frame) setSender(v ID)                      { byteOrder.PutUint32(f.buf[10:14], uint32(v)) }
func (f Frame) setSequenceNumber(v uint32)          { byteOrder.PutUint32(f.buf[15:19], v) }
func (f Frame) setConfirmedSequenceNumber(v uint32) { byteOrder.PutUint32(f.buf[19:23], v) }
func (f Frame) setTimestamp(v uint32)               { byteOrder.PutUint32(f.buf[24:28], v) }
func (f Frame) setConfirmedTimestamp(v uint32)      { byteOrder.PutUint32(f.buf[29:33], v) }

// Message is the decoded, caller-facing form of a Frame: the same fields,
// copied out of the wire buffer so callers don't hold a reference into a
// read buffer that may be reused.
type Message struct {
	Length                  uint16
	Type                    MessageType
	Receiver                ID
	Sender                  ID
	SequenceNumber          uint32
	ConfirmedSequenceNumber uint32
	Timestamp               uint32
	ConfirmedTimestamp      uint32
	Data                    []byte
}

// Decode parses buf into a Message, validating length consistency and the
// message-type code. buf shorter than the minimum frame size, or whose
// length prefix disagrees with len(buf), or whose message type code is
// unrecognized, yields a *MalformedError.
func Decode(buf []byte) (Message, error) {
	frm, err := NewFrame(buf)
	if err != nil {
		return Message{}, err
	}
	length := frm.Length()
	if int(length) != len(buf) {
		return Message{}, newMalformed(fmt.Sprintf("length field %d disagrees with buffer size %d", length, len(buf)))
	}
	if int(length) < minMessageLength {
		return Message{}, newMalformed(fmt.Sprintf("length field %d smaller than minimum frame size %d", length, minMessageLength))
	}
	mt := frm.MessageType()
	if !mt.valid() {
		return Message{}, newMalformed(fmt.Sprintf("unknown message type code %d", uint16(mt)))
	}
	data := frm.Data()
	var dataCopy []byte
	if len(data) > 0 {
		dataCopy = make([]byte, len(data))
		copy(dataCopy, data)
	}
	return Message{
		Length:                  length,
		Type:                    mt,
		Receiver:                frm.Receiver(),
		Sender:                  frm.Sender(),
		SequenceNumber:          frm.SequenceNumber(),
		ConfirmedSequenceNumber: frm.ConfirmedSequenceNumber(),
		Timestamp:               frm.Timestamp(),
		ConfirmedTimestamp:      frm.ConfirmedTimestamp(),
		Data:                    dataCopy,
	}, nil
}

func (m MessageType) valid() bool {
	switch m {
	case MessageTypeConnReq, MessageTypeConnResp, MessageTypeRetrReq, MessageTypeRetrResp,
		MessageTypeDiscReq, MessageTypeHB, MessageTypeData, MessageTypeRetrData:
		return true
	default:
		return false
	}
}

// Encode serializes m into a freshly allocated byte slice, computing the
// length field as headerSize+len(m.Data)+securityCodeSize and zero-filling
// the trailing security code. DiscReq is the one fixed-length kind whose
// declared length (40) the reference sets independently of its (empty)
// data, a quirk this implementation reproduces rather than silently
// correcting; the extra bytes it implies stay zero-filled.
func Encode(m Message) []byte {
	length := headerSize + len(m.Data) + securityCodeSize
	if m.Type == MessageTypeDiscReq {
		length = discReqLength
	}
	buf := make([]byte, length)
	frm := Frame{buf: buf}
	frm.setLength(uint16(length))
	frm.setMessageType(m.Type)
	frm.setReceiver(m.Receiver)
	frm.setSender(m.Sender)
	frm.setSequenceNumber(m.SequenceNumber)
	frm.setConfirmedSequenceNumber(m.ConfirmedSequenceNumber)
	frm.setTimestamp(m.Timestamp)
	frm.setConfirmedTimestamp(m.ConfirmedTimestamp)
	copy(buf[headerSize:], m.Data)
	// security code left zero-filled.
	return buf
}

// --- Message factory, spec §4.2 ---

func connData(sequenceSeed uint16) []byte {
	data := make([]byte, connDataSize)
	copy(data[0:4], RASTAVersion[:])
	byteOrder.PutUint16(data[5:7], sequenceSeed)
	return data
}

// NewConnectionRequest builds a ConnReq message. initialSeqNr is the
// sequence number the connection will hold stable across the handshake;
// see InitialSequenceNumber and Connection's sequence-number options.
func NewConnectionRequest(receiver, sender ID, timestamp uint32, initialSeqNr uint32, nSendMax uint16) Message {
	return Message{
		Length:                  minMessageLength + connDataSize,
		Type:                    MessageTypeConnReq,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          initialSeqNr,
		ConfirmedSequenceNumber: 0,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      0,
		Data:                    connData(nSendMax),
	}
}

// NewConnectionResponse builds a ConnResp message. Its sequence number is
// defined as confirmedSeqNr+1, per spec §4.2.
func NewConnectionResponse(receiver, sender ID, confirmedSeqNr, timestamp, confirmedTimestamp uint32, nSendMax uint16) Message {
	return Message{
		Length:                  minMessageLength + connDataSize,
		Type:                    MessageTypeConnResp,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          confirmedSeqNr + 1,
		ConfirmedSequenceNumber: confirmedSeqNr,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      confirmedTimestamp,
		Data:                    connData(nSendMax),
	}
}

func NewHeartbeat(receiver, sender ID, seqNr, confirmedSeqNr, timestamp, confirmedTimestamp uint32) Message {
	return Message{
		Length:                  minMessageLength,
		Type:                    MessageTypeHB,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          seqNr,
		ConfirmedSequenceNumber: confirmedSeqNr,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      confirmedTimestamp,
	}
}

func NewDisconnectRequest(receiver, sender ID, seqNr, confirmedSeqNr, timestamp, confirmedTimestamp uint32) Message {
	return Message{
		Length:                  discReqLength,
		Type:                    MessageTypeDiscReq,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          seqNr,
		ConfirmedSequenceNumber: confirmedSeqNr,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      confirmedTimestamp,
	}
}

func NewDataMessage(receiver, sender ID, seqNr, confirmedSeqNr, timestamp, confirmedTimestamp uint32, data []byte) Message {
	return Message{
		Length:                  uint16(minMessageLength + len(data)),
		Type:                    MessageTypeData,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          seqNr,
		ConfirmedSequenceNumber: confirmedSeqNr,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      confirmedTimestamp,
		Data:                    data,
	}
}

func NewRetransmissionRequest(receiver, sender ID, seqNr, confirmedSeqNr, timestamp, confirmedTimestamp uint32) Message {
	return Message{
		Length:                  minMessageLength,
		Type:                    MessageTypeRetrReq,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          seqNr,
		ConfirmedSequenceNumber: confirmedSeqNr,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      confirmedTimestamp,
	}
}

func NewRetransmissionResponse(receiver, sender ID, seqNr, confirmedSeqNr, timestamp, confirmedTimestamp uint32) Message {
	return Message{
		Length:                  minMessageLength,
		Type:                    MessageTypeRetrResp,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          seqNr,
		ConfirmedSequenceNumber: confirmedSeqNr,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      confirmedTimestamp,
	}
}

func NewRetransmittedDataMessage(receiver, sender ID, seqNr, confirmedSeqNr, timestamp, confirmedTimestamp uint32, data []byte) Message {
	return Message{
		Length:                  uint16(minMessageLength + len(data)),
		Type:                    MessageTypeRetrData,
		Receiver:                receiver,
		Sender:                  sender,
		SequenceNumber:          seqNr,
		ConfirmedSequenceNumber: confirmedSeqNr,
		Timestamp:               timestamp,
		ConfirmedTimestamp:      confirmedTimestamp,
		Data:                    data,
	}
}
