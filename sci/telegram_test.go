package sci

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func TestTelegramRoundTrip(t *testing.T) {
	cases := []Telegram{
		VersionCheck(ProtocolP, "interlocking", "point7", Version),
		VersionResponse(ProtocolP, "point7", "interlocking", Version, VersionsAreEqual, nil),
		Close(ProtocolLS, "signal3", "interlocking", CloseReasonNormalClose),
		ChangeLocation("interlocking", "point7", 0x01),
		TDPStatus("tds1", "interlocking", 0x02, 0x01),
	}
	for _, tg := range cases {
		t.Run(tg.Sender+"->"+tg.Receiver, func(t *testing.T) {
			buf := Encode(tg)
			got, err := Decode(buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := deep.Equal(tg, got); diff != nil {
				t.Errorf("round trip mismatch: %v", diff)
			}
		})
	}
}

func TestTelegramNameTruncationAndPadding(t *testing.T) {
	long := strings.Repeat("x", 30)
	tg := Telegram{ProtocolType: ProtocolP, MessageType: MessageTypeVersionCheck, Sender: long, Receiver: "short"}
	buf := Encode(tg)
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Sender != long[:nameSize] {
		t.Fatalf("expected sender truncated to %d bytes, got %q", nameSize, got.Sender)
	}
	if got.Receiver != "short" {
		t.Fatalf("expected receiver %q, got %q", "short", got.Receiver)
	}
}

func TestDecodeTooShort(t *testing.T) {
	if _, err := Decode(make([]byte, telegramHeaderSize-1)); err == nil {
		t.Fatalf("expected error decoding short buffer")
	}
}

func TestDecodeUnknownProtocol(t *testing.T) {
	buf := Encode(Telegram{ProtocolType: ProtocolP, MessageType: MessageTypeVersionCheck, Sender: "a", Receiver: "b"})
	buf[0] = 0x77
	if _, err := Decode(buf); err == nil {
		t.Fatalf("expected error decoding unknown protocol type")
	}
}

func TestParseVersionCheckResult(t *testing.T) {
	cases := map[uint8]VersionCheckResult{
		0: NotAllowedToUse,
		1: VersionsAreNotEqual,
		2: VersionsAreEqual,
	}
	for in, want := range cases {
		got, err := ParseVersionCheckResult(in)
		if err != nil {
			t.Fatalf("ParseVersionCheckResult(%d): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseVersionCheckResult(%d) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseVersionCheckResult(3); err == nil {
		t.Fatalf("expected error for value 3")
	}
}

func TestMessageTypeName(t *testing.T) {
	if name := MessageTypeName(ProtocolP, MessageTypeVersionCheck); name != "VersionCheck" {
		t.Errorf("got %q, want VersionCheck", name)
	}
	if name := MessageTypeName(ProtocolP, 0x0001); name != "ChangeLocation" {
		t.Errorf("got %q, want ChangeLocation", name)
	}
	if name := MessageTypeName(ProtocolLS, 0x0001); name != "ShowSignalAspect" {
		t.Errorf("got %q, want ShowSignalAspect", name)
	}
	if name := MessageTypeName(ProtocolTDS, 0x0007); name != "OccupancyStatus" {
		t.Errorf("got %q, want OccupancyStatus", name)
	}
	if name := MessageTypeName(ProtocolP, 0xBEEF); !strings.HasPrefix(name, "MessageType(") {
		t.Errorf("expected fallback name for unknown code, got %q", name)
	}
}
