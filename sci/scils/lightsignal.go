// Package scils implements the SCI-LS (light signal) sub-protocol payloads:
// commanding and reporting a signal's aspect, and its brightness. Grounded
// on original_source/sci-rs/src/scils.rs.
package scils

import "fmt"

// Message type codes, scoped to protocol type LS (0x30).
const (
	MessageTypeShowSignalAspect   uint16 = 0x0001
	MessageTypeChangeBrightness   uint16 = 0x0002
	MessageTypeSignalAspectStatus uint16 = 0x0003
	MessageTypeBrightnessStatus   uint16 = 0x0004
)

// Main is the aspect of a main signal.
type Main uint8

const (
	MainHp0                        Main = 0x01
	MainHp0PlusSh1                 Main = 0x02
	MainHp0WithDrivingIndicator    Main = 0x03
	MainKs1                        Main = 0x04
	MainKs1Flashing                Main = 0x05
	MainKs1FlashingWithAddlLight   Main = 0x06
	MainKs2                        Main = 0x07
	MainKs2WithAddlLight           Main = 0x08
	MainSh1                        Main = 0x09
	MainIDLight                    Main = 0x0A
	MainHp0Hv                      Main = 0xA0
	MainHp1                        Main = 0xA1
	MainHp2                        Main = 0xA2
	MainVr0                        Main = 0xB0
	MainVr1                        Main = 0xB1
	MainVr2                        Main = 0xB2
	MainOff                        Main = 0xFF
)

func parseMain(v uint8) (Main, error) {
	switch Main(v) {
	case MainHp0, MainHp0PlusSh1, MainHp0WithDrivingIndicator, MainKs1, MainKs1Flashing,
		MainKs1FlashingWithAddlLight, MainKs2, MainKs2WithAddlLight, MainSh1, MainIDLight,
		MainHp0Hv, MainHp1, MainHp2, MainVr0, MainVr1, MainVr2, MainOff:
		return Main(v), nil
	default:
		return 0, fmt.Errorf("scils: invalid main signal aspect %#02x", v)
	}
}

// Additional is the aspect of an additional signal, excluding Zs2(v) and
// Zs3(v) which carry extra information and are represented separately.
type Additional uint8

const (
	AdditionalZs1  Additional = 0x01
	AdditionalZs7  Additional = 0x02
	AdditionalZs8  Additional = 0x03
	AdditionalZs6  Additional = 0x04
	AdditionalZs13 Additional = 0x05
	AdditionalOff  Additional = 0xFF
)

func parseAdditional(v uint8) (Additional, error) {
	switch Additional(v) {
	case AdditionalZs1, AdditionalZs7, AdditionalZs8, AdditionalZs6, AdditionalZs13, AdditionalOff:
		return Additional(v), nil
	default:
		return 0, fmt.Errorf("scils: invalid additional signal aspect %#02x", v)
	}
}

// Zs3 is the indicated value of a Zs3 or Zs3v signal (speed or gradient
// index, 1-15, or Off).
type Zs3 uint8

const Zs3Off Zs3 = 0xFF

func parseZs3(v uint8) (Zs3, error) {
	if v >= 0x01 && v <= 0x0F {
		return Zs3(v), nil
	}
	if v == 0xFF {
		return Zs3Off, nil
	}
	return 0, fmt.Errorf("scils: invalid zs3 aspect %#02x", v)
}

// Zs2 is the indicated value of a Zs2 or Zs2v signal (a letter A-Z, or Off).
type Zs2 uint8

const Zs2Off Zs2 = 0xFF

func parseZs2(v uint8) (Zs2, error) {
	if v >= 0x01 && v <= 0x1A {
		return Zs2(v), nil
	}
	if v == 0xFF {
		return Zs2Off, nil
	}
	return 0, fmt.Errorf("scils: invalid zs2 aspect %#02x", v)
}

// DepreciationInformation annotates a reduced-trust signal indication.
type DepreciationInformation uint8

const (
	DepreciationType1         DepreciationInformation = 0x01
	DepreciationType2         DepreciationInformation = 0x02
	DepreciationType3         DepreciationInformation = 0x03
	DepreciationNoInformation DepreciationInformation = 0xFF
)

func parseDepreciation(v uint8) (DepreciationInformation, error) {
	switch DepreciationInformation(v) {
	case DepreciationType1, DepreciationType2, DepreciationType3, DepreciationNoInformation:
		return DepreciationInformation(v), nil
	default:
		return 0, fmt.Errorf("scils: invalid depreciation information %#02x", v)
	}
}

// DrivewayInformation identifies one of up to four driveways a signal
// protects, packed as a nibble on the wire.
type DrivewayInformation uint8

const (
	DrivewayWay1          DrivewayInformation = 0x1
	DrivewayWay2          DrivewayInformation = 0x2
	DrivewayWay3          DrivewayInformation = 0x3
	DrivewayWay4          DrivewayInformation = 0x4
	DrivewayNoInformation DrivewayInformation = 0xF
)

func parseDriveway(v uint8) (DrivewayInformation, error) {
	switch DrivewayInformation(v) {
	case DrivewayWay1, DrivewayWay2, DrivewayWay3, DrivewayWay4, DrivewayNoInformation:
		return DrivewayInformation(v), nil
	default:
		return 0, fmt.Errorf("scils: invalid driveway information %#02x", v)
	}
}

// DarkSwitching reports whether a signal is lit or dark-switched.
type DarkSwitching uint8

const (
	DarkSwitchingShow DarkSwitching = 0x01
	DarkSwitchingDark DarkSwitching = 0xFF
)

func parseDarkSwitching(v uint8) (DarkSwitching, error) {
	switch DarkSwitching(v) {
	case DarkSwitchingShow, DarkSwitchingDark:
		return DarkSwitching(v), nil
	default:
		return 0, fmt.Errorf("scils: invalid dark switching value %#02x", v)
	}
}

// Brightness is a signal's lamp brightness level. Undefined is only valid
// in a BrightnessStatus report, never in a ChangeBrightness command.
type Brightness uint8

const (
	BrightnessDay       Brightness = 0x01
	BrightnessNight     Brightness = 0x02
	BrightnessUndefined Brightness = 0xFF
)

func parseBrightness(v uint8) (Brightness, error) {
	switch Brightness(v) {
	case BrightnessDay, BrightnessNight, BrightnessUndefined:
		return Brightness(v), nil
	default:
		return 0, fmt.Errorf("scils: invalid brightness %#02x", v)
	}
}

// signalAspectSize is the wire size of a SignalAspect payload: nine
// single-byte fields (the driveway pair packed into one byte) plus nine
// bytes of nationally specified information.
const signalAspectSize = 18

// SignalAspect is a complete commanded or reported signal aspect.
type SignalAspect struct {
	Main                           Main
	Additional                     Additional
	Zs3                            Zs3
	Zs3v                           Zs3
	Zs2                            Zs2
	Zs2v                           Zs2
	DepreciationInformation        DepreciationInformation
	UpstreamDrivewayInformation    DrivewayInformation
	DownstreamDrivewayInformation  DrivewayInformation
	DarkSwitching                  DarkSwitching
	NationallySpecifiedInformation [9]byte
}

// Encode serializes a into the fixed 18-byte SignalAspect payload.
func Encode(a SignalAspect) []byte {
	buf := make([]byte, signalAspectSize)
	buf[0] = byte(a.Main)
	buf[1] = byte(a.Additional)
	buf[2] = byte(a.Zs3)
	buf[3] = byte(a.Zs3v)
	buf[4] = byte(a.Zs2)
	buf[5] = byte(a.Zs2v)
	buf[6] = byte(a.DepreciationInformation)
	buf[7] = byte(a.DownstreamDrivewayInformation)<<4 | byte(a.UpstreamDrivewayInformation)&0x0F
	buf[8] = byte(a.DarkSwitching)
	copy(buf[9:18], a.NationallySpecifiedInformation[:])
	return buf
}

// Decode parses the full 18-byte SignalAspect payload. This supersedes the
// reference implementation, which only ever wrote and read the first 9
// bytes of what it documented as an 18-byte payload; the nationally
// specified information here round-trips in full.
func Decode(payload []byte) (SignalAspect, error) {
	if len(payload) < signalAspectSize {
		return SignalAspect{}, fmt.Errorf("scils: signal_aspect: payload too short: %d bytes, want %d", len(payload), signalAspectSize)
	}
	var a SignalAspect
	var err error
	if a.Main, err = parseMain(payload[0]); err != nil {
		return SignalAspect{}, err
	}
	if a.Additional, err = parseAdditional(payload[1]); err != nil {
		return SignalAspect{}, err
	}
	if a.Zs3, err = parseZs3(payload[2]); err != nil {
		return SignalAspect{}, err
	}
	if a.Zs3v, err = parseZs3(payload[3]); err != nil {
		return SignalAspect{}, err
	}
	if a.Zs2, err = parseZs2(payload[4]); err != nil {
		return SignalAspect{}, err
	}
	if a.Zs2v, err = parseZs2(payload[5]); err != nil {
		return SignalAspect{}, err
	}
	if a.DepreciationInformation, err = parseDepreciation(payload[6]); err != nil {
		return SignalAspect{}, err
	}
	if a.DownstreamDrivewayInformation, err = parseDriveway((payload[7] & 0xF0) >> 4); err != nil {
		return SignalAspect{}, err
	}
	if a.UpstreamDrivewayInformation, err = parseDriveway(payload[7] & 0x0F); err != nil {
		return SignalAspect{}, err
	}
	if a.DarkSwitching, err = parseDarkSwitching(payload[8]); err != nil {
		return SignalAspect{}, err
	}
	copy(a.NationallySpecifiedInformation[:], payload[9:18])
	return a, nil
}

// EncodeBrightness returns the 1-byte ChangeBrightness/BrightnessStatus payload.
func EncodeBrightness(b Brightness) []byte {
	return []byte{byte(b)}
}

// DecodeBrightness parses a ChangeBrightness/BrightnessStatus payload.
func DecodeBrightness(payload []byte) (Brightness, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("scils: brightness: payload too short")
	}
	return parseBrightness(payload[0])
}

// MessageTypeName resolves a protocol-LS-scoped message type code to its
// name, for debugging/logging.
func MessageTypeName(code uint16) (string, bool) {
	switch code {
	case MessageTypeShowSignalAspect:
		return "ShowSignalAspect", true
	case MessageTypeChangeBrightness:
		return "ChangeBrightness", true
	case MessageTypeSignalAspectStatus:
		return "SignalAspectStatus", true
	case MessageTypeBrightnessStatus:
		return "BrightnessStatus", true
	default:
		return "", false
	}
}
