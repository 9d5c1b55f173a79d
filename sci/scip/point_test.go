package scip

import "testing"

func TestChangeLocationRoundTrip(t *testing.T) {
	for _, target := range []TargetLocation{TargetLocationRight, TargetLocationLeft} {
		got, err := DecodeChangeLocation(EncodeChangeLocation(target))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != target {
			t.Errorf("got %v, want %v", got, target)
		}
	}
}

func TestLocationStatusRoundTrip(t *testing.T) {
	for _, loc := range []Location{LocationRight, LocationLeft, LocationNoTarget, LocationBumped} {
		got, err := DecodeLocationStatus(EncodeLocationStatus(loc))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != loc {
			t.Errorf("got %v, want %v", got, loc)
		}
	}
}

func TestDecodeChangeLocationRejectsUnknown(t *testing.T) {
	if _, err := DecodeChangeLocation([]byte{0xEE}); err == nil {
		t.Fatalf("expected error for unknown target location")
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	if _, err := DecodeChangeLocation(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := DecodeLocationStatus(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestMessageTypeName(t *testing.T) {
	if name, ok := MessageTypeName(MessageTypeChangeLocation); !ok || name != "ChangeLocation" {
		t.Errorf("got (%q, %v), want (ChangeLocation, true)", name, ok)
	}
	if _, ok := MessageTypeName(0x9999); ok {
		t.Errorf("expected ok=false for unknown code")
	}
}
