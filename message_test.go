package rasta

import (
	"bytes"
	"testing"

	"github.com/go-test/deep"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
	}{
		{"connreq", NewConnectionRequest(1, 2, 1000, InitialSequenceNumber, NSendMax)},
		{"connresp", NewConnectionResponse(1, 2, 7, 1000, 999, NSendMax)},
		{"heartbeat", NewHeartbeat(1, 2, 8, 7, 1001, 1000)},
		{"data", NewDataMessage(1, 2, 10, 9, 1003, 1002, []byte("hello rasta"))},
		{"data-empty", NewDataMessage(1, 2, 10, 9, 1003, 1002, nil)},
		{"retrreq", NewRetransmissionRequest(1, 2, 11, 10, 1004, 1003)},
		{"retrresp", NewRetransmissionResponse(1, 2, 12, 11, 1005, 1004)},
		{"retrdata", NewRetransmittedDataMessage(1, 2, 13, 12, 1006, 1005, []byte("retransmitted"))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf := Encode(c.msg)
			if len(buf) < minMessageLength {
				t.Fatalf("encoded length %d below minimum %d", len(buf), minMessageLength)
			}
			got, err := Decode(buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := deep.Equal(c.msg, got); diff != nil {
				t.Errorf("round trip mismatch: %v", diff)
			}
		})
	}
}

// DiscReq's declared length (40) implies 4 bytes of data under the general
// length-36 decode formula even though the constructor writes none; decode
// surfaces those as zero bytes rather than nil, reproducing the reference's
// own inconsistency instead of papering over it.
func TestDiscReqRoundTrip(t *testing.T) {
	msg := NewDisconnectRequest(1, 2, 9, 8, 1002, 1001)
	buf := Encode(msg)
	if len(buf) != discReqLength {
		t.Fatalf("encoded DiscReq length = %d, want %d", len(buf), discReqLength)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := msg
	want.Data = make([]byte, 4)
	if diff := deep.Equal(want, got); diff != nil {
		t.Errorf("round trip mismatch: %v", diff)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	buf := Encode(NewHeartbeat(1, 2, 1, 0, 1, 0))
	buf = append(buf, 0xFF)
	if _, err := Decode(buf); !IsMalformed(err) {
		t.Fatalf("expected malformed error for mismatched length, got %v", err)
	}
}

func TestDecodeTooShort(t *testing.T) {
	if _, err := Decode(make([]byte, minMessageLength-1)); !IsMalformed(err) {
		t.Fatalf("expected malformed error for short buffer, got %v", err)
	}
}

func TestDecodeUnknownMessageType(t *testing.T) {
	buf := Encode(NewHeartbeat(1, 2, 1, 0, 1, 0))
	byteOrder.PutUint16(buf[3:5], 9999)
	if _, err := Decode(buf); !IsMalformed(err) {
		t.Fatalf("expected malformed error for unknown message type, got %v", err)
	}
}

func TestMessageTypeString(t *testing.T) {
	if got := MessageTypeData.String(); got == "" {
		t.Fatalf("expected non-empty string for known message type")
	}
	if got := MessageType(1).String(); got == "" {
		t.Fatalf("expected non-empty fallback string for unknown message type")
	}
}

// TestLengthInvariant asserts each message kind's exact declared length,
// not merely a lower bound, so a regression to the wrong per-kind overhead
// fails here instead of only surfacing as an interop failure.
func TestLengthInvariant(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want int
	}{
		{"connreq", NewConnectionRequest(1, 2, 1000, InitialSequenceNumber, NSendMax), 50},
		{"connresp", NewConnectionResponse(1, 2, 7, 1000, 999, NSendMax), 50},
		{"heartbeat", NewHeartbeat(1, 2, 8, 7, 1001, 1000), 36},
		{"discreq", NewDisconnectRequest(1, 2, 9, 8, 1002, 1001), 40},
		{"retrreq", NewRetransmissionRequest(1, 2, 11, 10, 1004, 1003), 36},
		{"retrresp", NewRetransmissionResponse(1, 2, 12, 11, 1005, 1004), 36},
		{"data-empty", NewDataMessage(1, 2, 10, 9, 1003, 1002, nil), 36},
		{"data-47", NewDataMessage(1, 2, 10, 9, 1003, 1002, make([]byte, 47)), 83},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf := Encode(c.msg)
			if len(buf) != c.want {
				t.Fatalf("encoded length = %d, want %d", len(buf), c.want)
			}
			if got := byteOrder.Uint16(buf[0:2]); int(got) != c.want {
				t.Fatalf("length field = %d, want %d", got, c.want)
			}
		})
	}
}

// TestS1PointChangePositive exercises the point-change scenario end to end:
// an SCI-P ChangeLocation telegram (protocol byte, little-endian message
// type, underscore-padded names, then the raw location byte) riding inside
// a RaSTA Data message comes out to length=36+payload-length and type=6240.
func TestS1PointChangePositive(t *testing.T) {
	sender := append([]byte("C"), bytes.Repeat([]byte("_"), 19)...)
	receiver := append([]byte("S"), bytes.Repeat([]byte("_"), 19)...)
	var payload []byte
	payload = append(payload, 0x40)       // protocol type P
	payload = append(payload, 0x01, 0x00) // message type ChangeLocation, little-endian
	payload = append(payload, sender...)
	payload = append(payload, receiver...)
	payload = append(payload, 0x02) // TargetLocationLeft

	msg := NewDataMessage(1337, 42, 5, 4, 1000, 999, payload)
	buf := Encode(msg)

	wantLength := 36 + len(payload)
	if got := int(byteOrder.Uint16(buf[0:2])); got != wantLength {
		t.Fatalf("length field = %d, want %d", got, wantLength)
	}
	if got := byteOrder.Uint16(buf[3:5]); MessageType(got) != MessageTypeData {
		t.Fatalf("message type = %d, want %d", got, MessageTypeData)
	}

	data := buf[headerSize : headerSize+len(payload)]
	wantPrefix := []byte{0x40, 0x01, 0x00, 'C', '_', '_'}
	if diff := deep.Equal(data[:len(wantPrefix)], wantPrefix); diff != nil {
		t.Errorf("telegram prefix mismatch: %v", diff)
	}
	if got, want := data[23], byte('S'); got != want {
		t.Errorf("receiver name byte[0] = %q, want %q", got, want)
	}
	if got := data[len(data)-1]; got != 0x02 {
		t.Errorf("trailing payload byte = %#02x, want 0x02", got)
	}

	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := deep.Equal(got.Data, payload); diff != nil {
		t.Errorf("payload round trip mismatch: %v", diff)
	}
}
