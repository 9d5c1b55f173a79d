package sci

import "github.com/ctiedt/rasta-rs/sci/scip"

// ChangeLocation builds a scip_change_location telegram commanding a point
// to move.
func ChangeLocation(sender, receiver string, target scip.TargetLocation) Telegram {
	return Telegram{
		ProtocolType: ProtocolP,
		MessageType:  scip.MessageTypeChangeLocation,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scip.EncodeChangeLocation(target),
	}
}

// LocationStatus builds a scip_location_status telegram reporting a point's
// observed location.
func LocationStatus(sender, receiver string, loc scip.Location) Telegram {
	return Telegram{
		ProtocolType: ProtocolP,
		MessageType:  scip.MessageTypeLocationStatus,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scip.EncodeLocationStatus(loc),
	}
}
