package sci

// VersionCheck builds a pdi_version_check telegram proposing version.
func VersionCheck(protocol ProtocolType, sender, receiver string, version byte) Telegram {
	return Telegram{
		ProtocolType: protocol,
		MessageType:  MessageTypeVersionCheck,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      []byte{version},
	}
}

// VersionResponse builds a pdi_version_response telegram answering a
// VersionCheck: the result, the version in force, and the supplied
// checksum preceded by its length byte (a nil checksum sends a length of
// zero and no checksum bytes).
func VersionResponse(protocol ProtocolType, sender, receiver string, version byte, result VersionCheckResult, checksum []byte) Telegram {
	payload := make([]byte, 3+len(checksum))
	payload[0] = byte(result)
	payload[1] = version
	payload[2] = byte(len(checksum))
	copy(payload[3:], checksum)
	return Telegram{
		ProtocolType: protocol,
		MessageType:  MessageTypeVersionResponse,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      payload,
	}
}

func InitialisationRequest(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeInitialisationRequest, Sender: sender, Receiver: receiver}
}

func InitialisationResponse(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeInitialisationResponse, Sender: sender, Receiver: receiver}
}

func InitialisationCompleted(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeInitialisationCompleted, Sender: sender, Receiver: receiver}
}

func Close(protocol ProtocolType, sender, receiver string, reason CloseReason) Telegram {
	return Telegram{
		ProtocolType: protocol,
		MessageType:  MessageTypeClose,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      []byte{byte(reason)},
	}
}

func ReleaseForMaintenance(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeReleaseForMaintenance, Sender: sender, Receiver: receiver}
}

func Available(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeAvailable, Sender: sender, Receiver: receiver}
}

func NotAvailable(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeNotAvailable, Sender: sender, Receiver: receiver}
}

func Reset(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeReset, Sender: sender, Receiver: receiver}
}

func Timeout(protocol ProtocolType, sender, receiver string) Telegram {
	return Telegram{ProtocolType: protocol, MessageType: MessageTypeTimeout, Sender: sender, Receiver: receiver}
}
