package scitds

import (
	"testing"

	"github.com/go-test/deep"
)

func TestToBCD(t *testing.T) {
	cases := []struct {
		digits [4]uint8
		want   uint16
	}{
		{[4]uint8{0, 0, 0, 1}, 1},
		{[4]uint8{0, 0, 1, 1}, 17},
		{[4]uint8{0, 1, 1, 1}, 273},
		{[4]uint8{1, 1, 1, 1}, 4369},
	}
	for _, c := range cases {
		got, err := ToBCD(c.digits)
		if err != nil {
			t.Fatalf("ToBCD(%v): %v", c.digits, err)
		}
		if got != c.want {
			t.Errorf("ToBCD(%v) = %d, want %d", c.digits, got, c.want)
		}
	}
}

func TestToBCDRejectsOutOfRangeDigit(t *testing.T) {
	if _, err := ToBCD([4]uint8{0, 0, 0, 10}); err == nil {
		t.Fatalf("expected error for digit 10, got nil")
	}
}

func TestEncodeAdditionalInformationPropagatesBCDError(t *testing.T) {
	if _, err := EncodeAdditionalInformation([4]uint8{9, 9, 9, 9}, [4]uint8{0, 0, 0, 99}); err == nil {
		t.Fatalf("expected error from invalid wheel diameter digit")
	}
}

func TestOccupancyStatusRoundTrip(t *testing.T) {
	cases := []OccupancyStatusPayload{
		{OccupancyVacant, false, 0, POMOk, DisturbanceOperational, ChangeTriggerPassingDetected},
		{OccupancyOccupied, true, 12345, POMNotOk, DisturbanceTechnical, ChangeTriggerInternalTrigger},
		{OccupancyDisturbed, true, 65535, POMNotApplicable, DisturbanceNotApplicable, ChangeTriggerNotApplicable},
	}
	for _, c := range cases {
		buf := EncodeOccupancyStatus(c)
		if len(buf) != occupancyStatusSize {
			t.Fatalf("encoded length %d, want %d", len(buf), occupancyStatusSize)
		}
		got, err := DecodeOccupancyStatus(buf)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := deep.Equal(c, got); diff != nil {
			t.Errorf("round trip mismatch: %v", diff)
		}
	}
}

func TestDecodeOccupancyStatusBadLength(t *testing.T) {
	if _, err := DecodeOccupancyStatus(make([]byte, occupancyStatusSize-1)); err == nil {
		t.Fatalf("expected error for short payload")
	}
}

func TestDecodeOccupancyStatusBadForcedClearFlag(t *testing.T) {
	buf := EncodeOccupancyStatus(OccupancyStatusPayload{OccupancyVacant, false, 0, POMOk, DisturbanceOperational, ChangeTriggerPassingDetected})
	buf[1] = 0xFF
	if _, err := DecodeOccupancyStatus(buf); err == nil {
		t.Fatalf("expected error for invalid force-clear flag byte")
	}
}

func TestTDPStatusRoundTrip(t *testing.T) {
	state, dir, err := DecodeTDPStatus(EncodeTDPStatus(StateOfPassingPassed, DirectionReference))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state != StateOfPassingPassed || dir != DirectionReference {
		t.Errorf("got (%v, %v), want (%v, %v)", state, dir, StateOfPassingPassed, DirectionReference)
	}
}

func TestMessageTypeName(t *testing.T) {
	if name, ok := MessageTypeName(MessageTypeOccupancyStatus); !ok || name != "OccupancyStatus" {
		t.Errorf("got (%q, %v), want (OccupancyStatus, true)", name, ok)
	}
}
