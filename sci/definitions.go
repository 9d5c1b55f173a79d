// Package sci implements the generic SCI (Standard Communication Interface)
// telegram layer: protocol identification, the PDI (protocol data
// interface) control messages common to every SCI sub-protocol, and a
// Session that carries SCI telegrams over a rasta.Connection. Grounded on
// original_source/sci-rs/src/lib.rs.
package sci

import (
	"fmt"

	"github.com/ctiedt/rasta-rs/sci/scils"
	"github.com/ctiedt/rasta-rs/sci/scip"
	"github.com/ctiedt/rasta-rs/sci/scitds"
)

// Version is the SCI protocol version this implementation speaks.
const Version byte = 0x01

// ProtocolType identifies which SCI sub-protocol a Telegram belongs to,
// scoping its MessageType code.
type ProtocolType uint8

const (
	ProtocolAIS ProtocolType = 0x01
	ProtocolTDS ProtocolType = 0x20
	ProtocolLS  ProtocolType = 0x30
	ProtocolP   ProtocolType = 0x40
	ProtocolRBC ProtocolType = 0x50
	ProtocolLX  ProtocolType = 0x60
	ProtocolTCS ProtocolType = 0x70
	ProtocolGIO ProtocolType = 0x90
	ProtocolELX ProtocolType = 0xC0
)

func (p ProtocolType) String() string {
	switch p {
	case ProtocolAIS:
		return "AIS"
	case ProtocolTDS:
		return "TDS"
	case ProtocolLS:
		return "LS"
	case ProtocolP:
		return "P"
	case ProtocolRBC:
		return "RBC"
	case ProtocolLX:
		return "LX"
	case ProtocolTCS:
		return "TCS"
	case ProtocolGIO:
		return "GIO"
	case ProtocolELX:
		return "ELX"
	default:
		return fmt.Sprintf("ProtocolType(%#02x)", uint8(p))
	}
}

// ParseProtocolType validates v as a known ProtocolType. Only TDS, LS and P
// have sub-protocol payload codecs in this implementation; for the others
// MessageTypeName resolves only the generic PDI codes, and the
// scip/scils/scitds packages do not apply.
func ParseProtocolType(v uint8) (ProtocolType, error) {
	switch ProtocolType(v) {
	case ProtocolAIS, ProtocolTDS, ProtocolLS, ProtocolP, ProtocolRBC, ProtocolLX, ProtocolTCS, ProtocolGIO, ProtocolELX:
		return ProtocolType(v), nil
	default:
		return 0, fmt.Errorf("sci: unknown protocol type %#02x", v)
	}
}

// Generic PDI (protocol data interface) message type codes, shared across
// every SCI sub-protocol.
const (
	MessageTypeVersionCheck             uint16 = 0x0024
	MessageTypeVersionResponse          uint16 = 0x0025
	MessageTypeInitialisationRequest    uint16 = 0x0021
	MessageTypeInitialisationResponse   uint16 = 0x0022
	MessageTypeInitialisationCompleted  uint16 = 0x0023
	MessageTypeClose                    uint16 = 0x0027
	MessageTypeReleaseForMaintenance    uint16 = 0x0028
	MessageTypeAvailable                uint16 = 0x0029
	MessageTypeNotAvailable             uint16 = 0x002A
	MessageTypeReset                    uint16 = 0x002B
	MessageTypeTimeout                  uint16 = 0x000C
)

func genericMessageTypeName(code uint16) (string, bool) {
	switch code {
	case MessageTypeVersionCheck:
		return "VersionCheck", true
	case MessageTypeVersionResponse:
		return "VersionResponse", true
	case MessageTypeInitialisationRequest:
		return "InitialisationRequest", true
	case MessageTypeInitialisationResponse:
		return "InitialisationResponse", true
	case MessageTypeInitialisationCompleted:
		return "InitialisationCompleted", true
	case MessageTypeClose:
		return "Close", true
	case MessageTypeReleaseForMaintenance:
		return "ReleaseForMaintenance", true
	case MessageTypeAvailable:
		return "Available", true
	case MessageTypeNotAvailable:
		return "NotAvailable", true
	case MessageTypeReset:
		return "Reset", true
	case MessageTypeTimeout:
		return "Timeout", true
	default:
		return "", false
	}
}

// MessageTypeName resolves a telegram's (ProtocolType, MessageType) pair to
// a human-readable name, checking the generic PDI codes first and then
// delegating to the sub-protocol package for protocol, falling back to
// "MessageType(code)" for protocols without a registered codec or for a
// code unknown to both.
func MessageTypeName(protocol ProtocolType, code uint16) string {
	if name, ok := genericMessageTypeName(code); ok {
		return name
	}
	var name string
	var ok bool
	switch protocol {
	case ProtocolP:
		name, ok = scip.MessageTypeName(code)
	case ProtocolLS:
		name, ok = scils.MessageTypeName(code)
	case ProtocolTDS:
		name, ok = scitds.MessageTypeName(code)
	}
	if ok {
		return name
	}
	return fmt.Sprintf("MessageType(%#04x)", code)
}

// VersionCheckResult is the outcome a receiver reports for a VersionCheck
// telegram's proposed version.
type VersionCheckResult uint8

const (
	NotAllowedToUse     VersionCheckResult = 0
	VersionsAreNotEqual VersionCheckResult = 1
	VersionsAreEqual    VersionCheckResult = 2
)

func (r VersionCheckResult) String() string {
	switch r {
	case NotAllowedToUse:
		return "NotAllowedToUse"
	case VersionsAreNotEqual:
		return "VersionsAreNotEqual"
	case VersionsAreEqual:
		return "VersionsAreEqual"
	default:
		return fmt.Sprintf("VersionCheckResult(%d)", uint8(r))
	}
}

// ParseVersionCheckResult maps the wire byte to a VersionCheckResult. This
// corrects the reference implementation, which maps both 1 and 2 to
// VersionsAreEqual, making VersionsAreNotEqual unreachable: here 1 maps to
// VersionsAreNotEqual, as its name and the surrounding protocol (a receiver
// reporting a version mismatch) require.
func ParseVersionCheckResult(v uint8) (VersionCheckResult, error) {
	switch v {
	case 0:
		return NotAllowedToUse, nil
	case 1:
		return VersionsAreNotEqual, nil
	case 2:
		return VersionsAreEqual, nil
	default:
		return 0, fmt.Errorf("sci: unknown version check result %d", v)
	}
}

// CloseReason explains why a Close telegram was sent.
type CloseReason uint8

const (
	CloseReasonProtocolError        CloseReason = 1
	CloseReasonFormalTelegramError  CloseReason = 2
	CloseReasonContentTelegramError CloseReason = 3
	CloseReasonNormalClose          CloseReason = 4
	CloseReasonOtherVersionRequired CloseReason = 5
	CloseReasonTimeout              CloseReason = 6
	CloseReasonChecksumMismatch     CloseReason = 7
)

func (r CloseReason) String() string {
	switch r {
	case CloseReasonProtocolError:
		return "ProtocolError"
	case CloseReasonFormalTelegramError:
		return "FormalTelegramError"
	case CloseReasonContentTelegramError:
		return "ContentTelegramError"
	case CloseReasonNormalClose:
		return "NormalClose"
	case CloseReasonOtherVersionRequired:
		return "OtherVersionRequired"
	case CloseReasonTimeout:
		return "Timeout"
	case CloseReasonChecksumMismatch:
		return "ChecksumMismatch"
	default:
		return fmt.Sprintf("CloseReason(%d)", uint8(r))
	}
}

func ParseCloseReason(v uint8) (CloseReason, error) {
	switch CloseReason(v) {
	case CloseReasonProtocolError, CloseReasonFormalTelegramError, CloseReasonContentTelegramError,
		CloseReasonNormalClose, CloseReasonOtherVersionRequired, CloseReasonTimeout, CloseReasonChecksumMismatch:
		return CloseReason(v), nil
	default:
		return 0, fmt.Errorf("sci: unknown close reason %d", v)
	}
}
