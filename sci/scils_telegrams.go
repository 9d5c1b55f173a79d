package sci

import "github.com/ctiedt/rasta-rs/sci/scils"

// ShowSignalAspect builds a scils_show_signal_aspect telegram commanding a
// light signal to display aspect.
func ShowSignalAspect(sender, receiver string, aspect scils.SignalAspect) Telegram {
	return Telegram{
		ProtocolType: ProtocolLS,
		MessageType:  scils.MessageTypeShowSignalAspect,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scils.Encode(aspect),
	}
}

// ChangeBrightness builds a scils_change_brightness telegram.
func ChangeBrightness(sender, receiver string, brightness scils.Brightness) Telegram {
	return Telegram{
		ProtocolType: ProtocolLS,
		MessageType:  scils.MessageTypeChangeBrightness,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scils.EncodeBrightness(brightness),
	}
}

// SignalAspectStatus builds a scils_signal_aspect_status telegram reporting
// a light signal's displayed aspect.
func SignalAspectStatus(sender, receiver string, aspect scils.SignalAspect) Telegram {
	return Telegram{
		ProtocolType: ProtocolLS,
		MessageType:  scils.MessageTypeSignalAspectStatus,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scils.Encode(aspect),
	}
}

// BrightnessStatus builds a scils_brightness_status telegram.
func BrightnessStatus(sender, receiver string, brightness scils.Brightness) Telegram {
	return Telegram{
		ProtocolType: ProtocolLS,
		MessageType:  scils.MessageTypeBrightnessStatus,
		Sender:       sender,
		Receiver:     receiver,
		Payload:      scils.EncodeBrightness(brightness),
	}
}
