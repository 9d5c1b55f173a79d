package scils

import (
	"testing"

	"github.com/go-test/deep"
)

func TestSignalAspectRoundTrip(t *testing.T) {
	aspect := SignalAspect{
		Main:                          MainKs1,
		Additional:                    AdditionalZs1,
		Zs3:                           Zs3(0x05),
		Zs3v:                          Zs3Off,
		Zs2:                           Zs2(0x03),
		Zs2v:                          Zs2Off,
		DepreciationInformation:       DepreciationType2,
		UpstreamDrivewayInformation:   DrivewayWay2,
		DownstreamDrivewayInformation: DrivewayWay3,
		DarkSwitching:                 DarkSwitchingShow,
	}
	copy(aspect.NationallySpecifiedInformation[:], []byte{1, 2, 3, 4, 5, 6, 7, 8, 9})

	buf := Encode(aspect)
	if len(buf) != signalAspectSize {
		t.Fatalf("encoded length %d, want %d", len(buf), signalAspectSize)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := deep.Equal(aspect, got); diff != nil {
		t.Errorf("round trip mismatch: %v", diff)
	}
}

func TestSignalAspectDrivewayNibblePacking(t *testing.T) {
	aspect := SignalAspect{
		Main:                          MainOff,
		Additional:                    AdditionalOff,
		Zs3:                           Zs3Off,
		Zs3v:                          Zs3Off,
		Zs2:                           Zs2Off,
		Zs2v:                          Zs2Off,
		DepreciationInformation:       DepreciationNoInformation,
		UpstreamDrivewayInformation:   DrivewayWay1,
		DownstreamDrivewayInformation: DrivewayWay4,
		DarkSwitching:                 DarkSwitchingDark,
	}
	buf := Encode(aspect)
	if buf[7] != 0x41 {
		t.Fatalf("packed driveway byte = %#02x, want 0x41", buf[7])
	}
}

func TestDecodeSignalAspectTooShort(t *testing.T) {
	if _, err := Decode(make([]byte, signalAspectSize-1)); err == nil {
		t.Fatalf("expected error for short payload")
	}
}

func TestDecodeSignalAspectInvalidField(t *testing.T) {
	buf := make([]byte, signalAspectSize)
	buf[0] = 0xEE // not a valid Main value
	if _, err := Decode(buf); err == nil {
		t.Fatalf("expected error for invalid main signal aspect")
	}
}

func TestBrightnessRoundTrip(t *testing.T) {
	for _, b := range []Brightness{BrightnessDay, BrightnessNight, BrightnessUndefined} {
		got, err := DecodeBrightness(EncodeBrightness(b))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != b {
			t.Errorf("got %v, want %v", got, b)
		}
	}
}
