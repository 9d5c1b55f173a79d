package sci

import "github.com/ctiedt/rasta-rs/sci/scitds"

// FC builds a scitds_fc telegram commanding a force-clear mode.
func FC(sender, receiver string, mode scitds.FCMode) Telegram {
	return Telegram{
		ProtocolType: ProtocolTDS,
		MessageType:  scitds.MessageTypeFC,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scitds.EncodeFC(mode),
	}
}

func UpdateFillingLevel(sender, receiver string) Telegram {
	return Telegram{ProtocolType: ProtocolTDS, MessageType: scitds.MessageTypeUpdateFillingLevel, Sender: sender, Receiver: receiver}
}

func DRFC(sender, receiver string) Telegram {
	return Telegram{ProtocolType: ProtocolTDS, MessageType: scitds.MessageTypeDRFC, Sender: sender, Receiver: receiver}
}

func Cancel(sender, receiver string) Telegram {
	return Telegram{ProtocolType: ProtocolTDS, MessageType: scitds.MessageTypeCancel, Sender: sender, Receiver: receiver}
}

// CommandRejected builds a scitds_command_rejected telegram.
func CommandRejected(sender, receiver string, reason scitds.RejectionReason) Telegram {
	return Telegram{
		ProtocolType: ProtocolTDS,
		MessageType:  scitds.MessageTypeCommandRejected,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scitds.EncodeCommandRejected(reason),
	}
}

// TVPSOccupancyStatus builds a scitds_tvps_occupancy_status telegram
// reporting a detection section's occupancy.
func TVPSOccupancyStatus(sender, receiver string, status scitds.OccupancyStatusPayload) Telegram {
	return Telegram{
		ProtocolType: ProtocolTDS,
		MessageType:  scitds.MessageTypeOccupancyStatus,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scitds.EncodeOccupancyStatus(status),
	}
}

// TVPSFCPFailed builds a scitds_tvps_fc_p_failed telegram.
func TVPSFCPFailed(sender, receiver string, reason scitds.FCPFailureReason) Telegram {
	return Telegram{
		ProtocolType: ProtocolTDS,
		MessageType:  scitds.MessageTypeFCPFailed,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scitds.EncodeFCPFailed(reason),
	}
}

// TVPSFCPAFailed builds a scitds_tvps_fc_p_a_failed telegram.
func TVPSFCPAFailed(sender, receiver string, reason scitds.FCPFailureReason) Telegram {
	return Telegram{
		ProtocolType: ProtocolTDS,
		MessageType:  scitds.MessageTypeFCPAFailed,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scitds.EncodeFCPFailed(reason),
	}
}

// AdditionalInformation builds a scitds_additional_information telegram
// carrying BCD-encoded speed and wheel diameter.
func AdditionalInformation(sender, receiver string, speed, wheelDiameter [4]uint8) (Telegram, error) {
	payload, err := scitds.EncodeAdditionalInformation(speed, wheelDiameter)
	if err != nil {
		return Telegram{}, err
	}
	return Telegram{
		ProtocolType: ProtocolTDS,
		MessageType:  scitds.MessageTypeAdditionalInfo,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      payload,
	}, nil
}

// TDPStatus builds a scitds_tdp_status telegram reporting a train-detection
// point's passing status.
func TDPStatus(sender, receiver string, state scitds.StateOfPassing, dir scitds.DirectionOfPassing) Telegram {
	return Telegram{
		ProtocolType: ProtocolTDS,
		MessageType:  scitds.MessageTypeTDPStatus,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scitds.EncodeTDPStatus(state, dir),
	}
}
