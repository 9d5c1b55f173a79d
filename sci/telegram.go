package sci

import (
	"encoding/binary"
	"fmt"
)

const (
	nameSize        = 20
	payloadCapacity = 85
	telegramHeaderSize = 1 + 2 + nameSize + nameSize // protocol + message type + sender + receiver
)

// padName returns name truncated to nameSize bytes, or right-padded with
// underscores to nameSize bytes if shorter, matching the reference
// implementation's fixed-width sender/receiver encoding.
func padName(name string) [nameSize]byte {
	var out [nameSize]byte
	for i := range out {
		out[i] = '_'
	}
	copy(out[:], name)
	return out
}

func trimName(buf []byte) string {
	end := len(buf)
	for end > 0 && buf[end-1] == '_' {
		end--
	}
	return string(buf[:end])
}

// Telegram is a decoded SCI message: a sub-protocol tag, a protocol-scoped
// message type code, fixed-width sender/receiver names, and a payload of
// up to 85 bytes.
type Telegram struct {
	ProtocolType ProtocolType
	MessageType  uint16
	Sender       string
	Receiver     string
	Payload      []byte
}

// Encode serializes t to its wire form: 1-byte protocol type, 2-byte
// little-endian message type, 20-byte sender, 20-byte receiver, then the
// payload verbatim (omitted entirely when empty, matching the reference).
func Encode(t Telegram) []byte {
	buf := make([]byte, telegramHeaderSize, telegramHeaderSize+len(t.Payload))
	buf[0] = byte(t.ProtocolType)
	binary.LittleEndian.PutUint16(buf[1:3], t.MessageType)
	sender := padName(t.Sender)
	copy(buf[3:23], sender[:])
	receiver := padName(t.Receiver)
	copy(buf[23:43], receiver[:])
	if len(t.Payload) > 0 {
		buf = append(buf, t.Payload...)
	}
	return buf
}

// Decode parses buf as a Telegram. buf shorter than the fixed header, or
// carrying an unrecognized protocol type byte, is an error; the payload is
// whatever bytes remain, and more than payloadCapacity of them (the
// reference's fixed 85-byte payload buffer) is also an error.
func Decode(buf []byte) (Telegram, error) {
	if len(buf) < telegramHeaderSize {
		return Telegram{}, fmt.Errorf("sci: telegram too short: %d bytes, want at least %d", len(buf), telegramHeaderSize)
	}
	protocol, err := ParseProtocolType(buf[0])
	if err != nil {
		return Telegram{}, err
	}
	messageType := binary.LittleEndian.Uint16(buf[1:3])
	sender := trimName(buf[3:23])
	receiver := trimName(buf[23:43])
	payload := buf[43:]
	if len(payload) > payloadCapacity {
		return Telegram{}, fmt.Errorf("sci: telegram payload too large: %d bytes, max %d", len(payload), payloadCapacity)
	}
	payloadCopy := make([]byte, len(payload))
	copy(payloadCopy, payload)
	return Telegram{
		ProtocolType: protocol,
		MessageType:  messageType,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      payloadCopy,
	}, nil
}
