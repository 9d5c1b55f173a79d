// Package scitds implements the SCI-TDS (train detection system)
// sub-protocol payloads: force-clear commands, occupancy status reports,
// additional axle information, and train-detection-point passing status.
// Grounded on original_source/sci-rs/src/scitds.rs.
package scitds

import "fmt"

// Message type codes, scoped to protocol type TDS (0x20).
const (
	MessageTypeFC                  uint16 = 0x0001
	MessageTypeUpdateFillingLevel  uint16 = 0x0002
	MessageTypeDRFC                uint16 = 0x0003
	MessageTypeCommandRejected     uint16 = 0x0006
	MessageTypeOccupancyStatus     uint16 = 0x0007
	MessageTypeCancel              uint16 = 0x0008
	MessageTypeTDPStatus           uint16 = 0x000B
	MessageTypeFCPFailed           uint16 = 0x0010
	MessageTypeFCPAFailed          uint16 = 0x0011
	MessageTypeAdditionalInfo      uint16 = 0x0012
)

// FCMode is the requested force-clear mode of an FC command.
type FCMode uint8

const (
	FCModeU   FCMode = 0x01
	FCModeC   FCMode = 0x02
	FCModePA  FCMode = 0x03
	FCModeP   FCMode = 0x04
	FCModeAck FCMode = 0x05
)

func ParseFCMode(v uint8) (FCMode, error) {
	switch FCMode(v) {
	case FCModeU, FCModeC, FCModePA, FCModeP, FCModeAck:
		return FCMode(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown force clear mode %#02x", v)
	}
}

func EncodeFC(mode FCMode) []byte { return []byte{byte(mode)} }

func DecodeFC(payload []byte) (FCMode, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("scitds: fc: payload too short")
	}
	return ParseFCMode(payload[0])
}

// OccupancyStatus is a detection section's reported occupancy.
type OccupancyStatus uint8

const (
	OccupancyVacant                  OccupancyStatus = 0x01
	OccupancyOccupied                OccupancyStatus = 0x02
	OccupancyDisturbed               OccupancyStatus = 0x03
	OccupancyWaitingForSweepingTrain OccupancyStatus = 0x04
	OccupancyWaitingForAck           OccupancyStatus = 0x05
	OccupancySweepingTrainDetected   OccupancyStatus = 0x06
)

func parseOccupancyStatus(v uint8) (OccupancyStatus, error) {
	switch OccupancyStatus(v) {
	case OccupancyVacant, OccupancyOccupied, OccupancyDisturbed, OccupancyWaitingForSweepingTrain,
		OccupancyWaitingForAck, OccupancySweepingTrainDetected:
		return OccupancyStatus(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown occupancy status %#02x", v)
	}
}

// POMStatus is a point-of-measurement health indicator.
type POMStatus uint8

const (
	POMOk            POMStatus = 0x01
	POMNotOk         POMStatus = 0x02
	POMNotApplicable POMStatus = 0xFF
)

func parsePOMStatus(v uint8) (POMStatus, error) {
	switch POMStatus(v) {
	case POMOk, POMNotOk, POMNotApplicable:
		return POMStatus(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown POM status %#02x", v)
	}
}

// DisturbanceStatus classifies an active disturbance.
type DisturbanceStatus uint8

const (
	DisturbanceOperational   DisturbanceStatus = 0x01
	DisturbanceTechnical     DisturbanceStatus = 0x02
	DisturbanceNotApplicable DisturbanceStatus = 0xFF
)

func parseDisturbanceStatus(v uint8) (DisturbanceStatus, error) {
	switch DisturbanceStatus(v) {
	case DisturbanceOperational, DisturbanceTechnical, DisturbanceNotApplicable:
		return DisturbanceStatus(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown disturbance status %#02x", v)
	}
}

// ChangeTrigger records why an occupancy status changed.
type ChangeTrigger uint8

const (
	ChangeTriggerPassingDetected                 ChangeTrigger = 0x01
	ChangeTriggerCommandFromEILAccepted          ChangeTrigger = 0x02
	ChangeTriggerCommandFromMaintainerAccepted   ChangeTrigger = 0x03
	ChangeTriggerTechnicalFailure                ChangeTrigger = 0x04
	ChangeTriggerInitialSectionState             ChangeTrigger = 0x05
	ChangeTriggerInternalTrigger                 ChangeTrigger = 0x06
	ChangeTriggerNotApplicable                   ChangeTrigger = 0xFF
)

func parseChangeTrigger(v uint8) (ChangeTrigger, error) {
	switch ChangeTrigger(v) {
	case ChangeTriggerPassingDetected, ChangeTriggerCommandFromEILAccepted, ChangeTriggerCommandFromMaintainerAccepted,
		ChangeTriggerTechnicalFailure, ChangeTriggerInitialSectionState, ChangeTriggerInternalTrigger, ChangeTriggerNotApplicable:
		return ChangeTrigger(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown change trigger %#02x", v)
	}
}

// RejectionReason explains a CommandRejected response.
type RejectionReason uint8

const (
	RejectionOperational RejectionReason = 0x01
	RejectionTechnical    RejectionReason = 0x02
)

func parseRejectionReason(v uint8) (RejectionReason, error) {
	switch RejectionReason(v) {
	case RejectionOperational, RejectionTechnical:
		return RejectionReason(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown rejection reason %#02x", v)
	}
}

func EncodeCommandRejected(reason RejectionReason) []byte { return []byte{byte(reason)} }

func DecodeCommandRejected(payload []byte) (RejectionReason, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("scitds: command_rejected: payload too short")
	}
	return parseRejectionReason(payload[0])
}

// FCPFailureReason explains a failed force-clear procedure.
type FCPFailureReason uint8

const (
	FCPFailureIncorrectCountOfSweepingTrain    FCPFailureReason = 0x01
	FCPFailureTimeout                          FCPFailureReason = 0x02
	FCPFailureIllegalBoundingDetectionPoint    FCPFailureReason = 0x03
	FCPFailureIntentionallyDeleted             FCPFailureReason = 0x04
	FCPFailureOutgoingAxleBeforeMinTimerExpiry FCPFailureReason = 0x05
	FCPFailureProcessCancelled                 FCPFailureReason = 0x06
)

func parseFCPFailureReason(v uint8) (FCPFailureReason, error) {
	switch FCPFailureReason(v) {
	case FCPFailureIncorrectCountOfSweepingTrain, FCPFailureTimeout, FCPFailureIllegalBoundingDetectionPoint,
		FCPFailureIntentionallyDeleted, FCPFailureOutgoingAxleBeforeMinTimerExpiry, FCPFailureProcessCancelled:
		return FCPFailureReason(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown FCP failure reason %#02x", v)
	}
}

func EncodeFCPFailed(reason FCPFailureReason) []byte { return []byte{byte(reason)} }

func DecodeFCPFailed(payload []byte) (FCPFailureReason, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("scitds: fc_p_failed: payload too short")
	}
	return parseFCPFailureReason(payload[0])
}

// StateOfPassing reports whether a train passed a detection point cleanly.
type StateOfPassing uint8

const (
	StateOfPassingNotPassed StateOfPassing = 0x01
	StateOfPassingPassed    StateOfPassing = 0x02
	StateOfPassingDisturbed StateOfPassing = 0x03
)

func parseStateOfPassing(v uint8) (StateOfPassing, error) {
	switch StateOfPassing(v) {
	case StateOfPassingNotPassed, StateOfPassingPassed, StateOfPassingDisturbed:
		return StateOfPassing(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown state of passing %#02x", v)
	}
}

// DirectionOfPassing reports the direction a train passed a detection point.
type DirectionOfPassing uint8

const (
	DirectionReference                DirectionOfPassing = 0x01
	DirectionAgainstReference         DirectionOfPassing = 0x02
	DirectionWithoutIndicatedDirection DirectionOfPassing = 0x03
)

func parseDirectionOfPassing(v uint8) (DirectionOfPassing, error) {
	switch DirectionOfPassing(v) {
	case DirectionReference, DirectionAgainstReference, DirectionWithoutIndicatedDirection:
		return DirectionOfPassing(v), nil
	default:
		return 0, fmt.Errorf("scitds: unknown direction of passing %#02x", v)
	}
}

func EncodeTDPStatus(state StateOfPassing, dir DirectionOfPassing) []byte {
	return []byte{byte(state), byte(dir)}
}

func DecodeTDPStatus(payload []byte) (StateOfPassing, DirectionOfPassing, error) {
	if len(payload) < 2 {
		return 0, 0, fmt.Errorf("scitds: tdp_status: payload too short")
	}
	state, err := parseStateOfPassing(payload[0])
	if err != nil {
		return 0, 0, err
	}
	dir, err := parseDirectionOfPassing(payload[1])
	if err != nil {
		return 0, 0, err
	}
	return state, dir, nil
}

// occupancyStatusSize is the wire size of an OccupancyStatus payload:
// status, force-clear flag, 2-byte big-endian filling level, POM status,
// disturbance status, change trigger.
const occupancyStatusSize = 7

// OccupancyStatusPayload is a detection section's full occupancy report.
type OccupancyStatusPayload struct {
	OccupancyStatus    OccupancyStatus
	CanBeForcedToClear bool
	FillingLevel       uint16
	POMStatus          POMStatus
	DisturbanceStatus  DisturbanceStatus
	ChangeTrigger      ChangeTrigger
}

// forcedClearByte encodes CanBeForcedToClear as 2 for true, 1 for false.
// The reference implementation's two constructors for this payload disagree
// on this mapping; this package standardizes on the convention its own
// decoder uses (OccupancyStatusPayload's TryFrom<SCIPayload>: 1 is false, 2
// is true) since that is the one actually exercised on the receive path.
func forcedClearByte(b bool) byte {
	if b {
		return 2
	}
	return 1
}

func parseForcedClearByte(v byte) (bool, error) {
	switch v {
	case 1:
		return false, nil
	case 2:
		return true, nil
	default:
		return false, fmt.Errorf("scitds: occupancy_status: invalid force-clear flag %#02x", v)
	}
}

// EncodeOccupancyStatus serializes p into the fixed 7-byte payload.
func EncodeOccupancyStatus(p OccupancyStatusPayload) []byte {
	buf := make([]byte, occupancyStatusSize)
	buf[0] = byte(p.OccupancyStatus)
	buf[1] = forcedClearByte(p.CanBeForcedToClear)
	buf[2] = byte(p.FillingLevel >> 8)
	buf[3] = byte(p.FillingLevel)
	buf[4] = byte(p.POMStatus)
	buf[5] = byte(p.DisturbanceStatus)
	buf[6] = byte(p.ChangeTrigger)
	return buf
}

// DecodeOccupancyStatus parses the fixed 7-byte OccupancyStatus payload.
func DecodeOccupancyStatus(payload []byte) (OccupancyStatusPayload, error) {
	if len(payload) != occupancyStatusSize {
		return OccupancyStatusPayload{}, fmt.Errorf("scitds: occupancy_status: bad payload length %d, want %d", len(payload), occupancyStatusSize)
	}
	var p OccupancyStatusPayload
	var err error
	if p.OccupancyStatus, err = parseOccupancyStatus(payload[0]); err != nil {
		return OccupancyStatusPayload{}, err
	}
	if p.CanBeForcedToClear, err = parseForcedClearByte(payload[1]); err != nil {
		return OccupancyStatusPayload{}, err
	}
	p.FillingLevel = uint16(payload[2])<<8 | uint16(payload[3])
	if p.POMStatus, err = parsePOMStatus(payload[4]); err != nil {
		return OccupancyStatusPayload{}, err
	}
	if p.DisturbanceStatus, err = parseDisturbanceStatus(payload[5]); err != nil {
		return OccupancyStatusPayload{}, err
	}
	if p.ChangeTrigger, err = parseChangeTrigger(payload[6]); err != nil {
		return OccupancyStatusPayload{}, err
	}
	return p, nil
}

// ToBCD packs four decimal digits into a big-endian BCD uint16, two digits
// per byte. Unlike the reference implementation, which panics on an
// out-of-range digit, this returns an error: a malformed telegram field is
// not a programmer bug, it's data to reject.
func ToBCD(digits [4]uint8) (uint16, error) {
	for _, d := range digits {
		if d > 9 {
			return 0, fmt.Errorf("scitds: bcd digit %d out of range 0-9", d)
		}
	}
	hi := digits[0]<<4 | digits[1]
	lo := digits[2]<<4 | digits[3]
	return uint16(hi)<<8 | uint16(lo), nil
}

// EncodeAdditionalInformation BCD-encodes speed and wheelDiameter, each as
// four decimal digits, into the fixed 4-byte payload.
func EncodeAdditionalInformation(speed, wheelDiameter [4]uint8) ([]byte, error) {
	speedBCD, err := ToBCD(speed)
	if err != nil {
		return nil, fmt.Errorf("scitds: additional_information: speed: %w", err)
	}
	diameterBCD, err := ToBCD(wheelDiameter)
	if err != nil {
		return nil, fmt.Errorf("scitds: additional_information: wheel_diameter: %w", err)
	}
	return []byte{byte(speedBCD >> 8), byte(speedBCD), byte(diameterBCD >> 8), byte(diameterBCD)}, nil
}

// MessageTypeName resolves a protocol-TDS-scoped message type code to its
// name, for debugging/logging.
func MessageTypeName(code uint16) (string, bool) {
	switch code {
	case MessageTypeFC:
		return "FC", true
	case MessageTypeUpdateFillingLevel:
		return "UpdateFillingLevel", true
	case MessageTypeDRFC:
		return "DRFC", true
	case MessageTypeCommandRejected:
		return "CommandRejected", true
	case MessageTypeOccupancyStatus:
		return "OccupancyStatus", true
	case MessageTypeCancel:
		return "Cancel", true
	case MessageTypeTDPStatus:
		return "TDPStatus", true
	case MessageTypeFCPFailed:
		return "FCPFailed", true
	case MessageTypeFCPAFailed:
		return "FCPAFailed", true
	case MessageTypeAdditionalInfo:
		return "AdditionalInformation", true
	default:
		return "", false
	}
}
