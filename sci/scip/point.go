// Package scip implements the SCI-P (points) sub-protocol payloads:
// commanding a point (rail switch) to a target location and reporting its
// current location. Grounded on original_source/sci-rs/src/scip.rs.
package scip

import "fmt"

// Message type codes, scoped to protocol type P (0x40).
const (
	MessageTypeChangeLocation uint16 = 0x0001
	MessageTypeLocationStatus uint16 = 0x000B
)

// TargetLocation is the payload of a ChangeLocation telegram: the location
// a point is commanded to move to.
type TargetLocation uint8

const (
	TargetLocationRight TargetLocation = 0x01
	TargetLocationLeft  TargetLocation = 0x02
)

func (t TargetLocation) String() string {
	switch t {
	case TargetLocationRight:
		return "Right"
	case TargetLocationLeft:
		return "Left"
	default:
		return fmt.Sprintf("TargetLocation(%#02x)", uint8(t))
	}
}

// Location is the payload of a LocationStatus telegram: a point's current,
// observed location.
type Location uint8

const (
	LocationRight    Location = 0x01
	LocationLeft     Location = 0x02
	LocationNoTarget Location = 0x03
	LocationBumped   Location = 0x04
)

func (l Location) String() string {
	switch l {
	case LocationRight:
		return "Right"
	case LocationLeft:
		return "Left"
	case LocationNoTarget:
		return "NoTarget"
	case LocationBumped:
		return "Bumped"
	default:
		return fmt.Sprintf("Location(%#02x)", uint8(l))
	}
}

// EncodeChangeLocation returns the 1-byte ChangeLocation payload.
func EncodeChangeLocation(target TargetLocation) []byte {
	return []byte{byte(target)}
}

// DecodeChangeLocation parses a ChangeLocation payload.
func DecodeChangeLocation(payload []byte) (TargetLocation, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("scip: change_location: payload too short")
	}
	switch TargetLocation(payload[0]) {
	case TargetLocationRight, TargetLocationLeft:
		return TargetLocation(payload[0]), nil
	default:
		return 0, fmt.Errorf("scip: change_location: unknown value %#02x", payload[0])
	}
}

// EncodeLocationStatus returns the 1-byte LocationStatus payload.
func EncodeLocationStatus(loc Location) []byte {
	return []byte{byte(loc)}
}

// DecodeLocationStatus parses a LocationStatus payload.
func DecodeLocationStatus(payload []byte) (Location, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("scip: location_status: payload too short")
	}
	switch Location(payload[0]) {
	case LocationRight, LocationLeft, LocationNoTarget, LocationBumped:
		return Location(payload[0]), nil
	default:
		return 0, fmt.Errorf("scip: location_status: unknown value %#02x", payload[0])
	}
}

// MessageTypeName resolves a protocol-P-scoped message type code to its
// name, for debugging/logging.
func MessageTypeName(code uint16) (string, bool) {
	switch code {
	case MessageTypeChangeLocation:
		return "ChangeLocation", true
	case MessageTypeLocationStatus:
		return "LocationStatus", true
	default:
		return "", false
	}
}
