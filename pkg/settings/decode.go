package settings

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

var (
	ErrTooShort       = errors.New("message too short")
	ErrNotSysEx       = errors.New("invalid sysex")
	ErrUnknownVendor  = errors.New("not an Arturia MicroBrute message")
	ErrUnknownMessage = errors.New("unknown setting message")
)

// Decode maps bytes received from the device back to the command they set.
// It accepts the Local Control Control Change on any channel and a complete
// "set parameter" frame with any counter byte.
func Decode(data []byte) (Command, error) {
	if len(data) == 0 {
		return nil, ErrTooShort
	}
	if data[0] != SysExStart {
		return decodeControlChange(data)
	}

	if err := ValidateSyx(data); err != nil {
		return nil, err
	}
	if !IsArturiaSyx(data) {
		return nil, ErrUnknownVendor
	}
	if len(data) != SetFrameLen || data[4] != DeviceFamily || data[5] != DeviceSubID {
		return nil, fmt.Errorf("%w: % X", ErrUnknownMessage, data)
	}

	c, ok := decodeSet(Param(data[7]), data[8])
	if !ok {
		return nil, fmt.Errorf("%w: param 0x%02X value 0x%02X", ErrUnknownMessage, data[7], data[8])
	}
	return c, nil
}

func decodeControlChange(data []byte) (Command, error) {
	var ch, controller, value uint8
	if !midi.Message(data).GetControlChange(&ch, &controller, &value) || controller != ControllerLocalControl {
		return nil, fmt.Errorf("%w: % X", ErrUnknownMessage, data)
	}
	switch value {
	case 0:
		return LocalControlOff, nil
	case 127:
		return LocalControlOn, nil
	}
	return nil, fmt.Errorf("%w: local control value %d", ErrUnknownMessage, value)
}

func decodeSet(p Param, v byte) (SysexCommand, bool) {
	switch p {
	case ParamNotePriority:
		return match(notePriorities, v)
	case ParamVelocityResponse:
		return match(velocityResponses, v)
	case ParamPlayMode:
		return match(playModes, v)
	case ParamSeqRetrigger:
		return match(seqRetriggers, v)
	case ParamNextSequence:
		return match(nextSequences, v)
	case ParamStepMode:
		return match(stepModes, v)
	case ParamStepSize:
		return match(stepSizes, v)
	case ParamLFOKeyRetrigger:
		return match(lfoKeyRetriggers, v)
	case ParamEnvelopeLegato:
		return match(envelopeLegatos, v)
	case ParamGateLength:
		return match(gateLengths, v)
	case ParamSyncSource:
		return match(syncSources, v)
	case ParamTransmitChannel:
		if v < MaxChannel {
			return TransmitOn(int(v) + 1), true
		}
	case ParamReceiveChannel:
		if v == receiveAllByte {
			return ReceiveAll, true
		}
		if v < MaxChannel {
			return ReceiveOn(int(v) + 1), true
		}
	case ParamBendRange:
		if v >= MinBendRange && v <= MaxBendRange {
			return BendRangeOf(int(v)), true
		}
	}
	return nil, false
}

func match[T SysexCommand](values []T, v byte) (SysexCommand, bool) {
	for _, c := range values {
		if c.ValueByte() == v {
			return c, true
		}
	}
	return nil, false
}

// ValidateSyx checks SysEx framing and that every data byte is 7-bit.
func ValidateSyx(data []byte) error {
	if len(data) < 2 {
		return ErrTooShort
	}

	if data[0] != SysExStart {
		return fmt.Errorf("%w: expected start byte 0x%02X, got 0x%02X", ErrNotSysEx, SysExStart, data[0])
	}

	if data[len(data)-1] != SysExEnd {
		return fmt.Errorf("%w: expected end byte 0x%02X, got 0x%02X", ErrNotSysEx, SysExEnd, data[len(data)-1])
	}

	for i := 1; i < len(data)-1; i++ {
		if data[i] > 127 {
			return fmt.Errorf("%w: byte at position %d is > 127 (0x%02X)", ErrNotSysEx, i, data[i])
		}
	}

	return nil
}

// IsArturiaSyx reports whether data carries the Arturia manufacturer ID.
func IsArturiaSyx(data []byte) bool {
	return len(data) >= 5 &&
		data[0] == SysExStart &&
		bytes.Equal(data[1:4], ArturiaID)
}

// ParseHex reads bytes written as hex pairs. Whitespace, commas and a 0x
// prefix on each pair are ignored: "F0 00 20", "f00020" and "0xF0,0x00" all
// parse.
func ParseHex(s string) ([]byte, error) {
	s = strings.NewReplacer("0x", "", "0X", "", ",", " ").Replace(s)
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// FormatHex renders bytes as space separated upper-case hex pairs.
func FormatHex(data []byte) string {
	return fmt.Sprintf("% X", data)
}
