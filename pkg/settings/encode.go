package settings

import (
	"gitlab.com/gomidi/midi/v2"
)

// SysEx framing
const (
	SysExStart = 0xF0
	SysExEnd   = 0xF7
)

// ArturiaID is the extended manufacturer ID of Arturia.
var ArturiaID = []byte{0x00, 0x20, 0x6B}

// MicroBrute device identifiers and counters.
const (
	DeviceFamily = 0x05
	DeviceSubID  = 0x01

	// SetCounter is the counter byte of every outbound "set parameter" frame.
	SetCounter = 0x00
	// RequestSavedCounter is the counter byte of a "request saved settings"
	// frame. Device read-back is not implemented.
	RequestSavedCounter = 0x00

	// SetFrameLen is the length of a complete "set parameter" frame.
	SetFrameLen = 10
)

// Local Control is a channel mode message on a fixed channel.
const (
	ControllerLocalControl = 0x7A
	localControlChannel    = 0
)

// Param identifies a SysEx-settable parameter on the wire.
type Param byte

const (
	ParamReceiveChannel   Param = 0x05
	ParamTransmitChannel  Param = 0x07
	ParamNotePriority     Param = 0x0B
	ParamEnvelopeLegato   Param = 0x0D
	ParamLFOKeyRetrigger  Param = 0x0F
	ParamVelocityResponse Param = 0x11
	ParamStepMode         Param = 0x2A
	ParamBendRange        Param = 0x2C
	ParamPlayMode         Param = 0x2E
	ParamNextSequence     Param = 0x32
	ParamSeqRetrigger     Param = 0x34
	ParamGateLength       Param = 0x36
	ParamStepSize         Param = 0x38
	ParamSyncSource       Param = 0x3C
)

// receiveAllByte is the receive channel value meaning "all channels".
const receiveAllByte = 0x10

// Value byte tables, indexed by the enum value.
//
// The velocity response bytes for Logarithmic and AntiLogarithmic may be
// swapped on the device. Kept as observed until confirmed on hardware.
var (
	notePriorityBytes     = [...]byte{NotePriorityLow: 0x01, NotePriorityLast: 0x00, NotePriorityHigh: 0x02}
	velocityResponseBytes = [...]byte{VelocityLinear: 0x00, VelocityLogarithmic: 0x01, VelocityAntiLogarithmic: 0x02}
	playModeBytes         = [...]byte{PlayHold: 0x00, PlayNoteOn: 0x01}
	seqRetriggerBytes     = [...]byte{RetriggerReset: 0x00, RetriggerLegato: 0x01, RetriggerNone: 0x02}
	nextSequenceBytes     = [...]byte{NextSeqEnd: 0x00, NextSeqInstantReset: 0x01, NextSeqInstantContinuation: 0x02}
	stepModeBytes         = [...]byte{StepClock: 0x00, StepGate: 0x01}
	stepSizeBytes         = [...]byte{StepQuarter: 0x04, StepEighth: 0x08, StepSixteenth: 0x10, StepThirtySecond: 0x20}
	gateLengthBytes       = [...]byte{GateShort: 0x01, GateMedium: 0x02, GateLong: 0x03}
	syncSourceBytes       = [...]byte{SyncAuto: 0x00, SyncInternal: 0x01, SyncExternal: 0x02}
)

// CommandData returns the exact bytes that set c on the device: a Control
// Change triplet for a MidiCommand, a framed SysEx packet for a SysexCommand.
func CommandData(c Command) []byte {
	return c.appendTo(nil)
}

// appendSet appends the "set parameter" frame for c.
func appendSet(b []byte, c SysexCommand) []byte {
	b = append(b, SysExStart)
	b = append(b, ArturiaID...)
	b = append(b, DeviceFamily, DeviceSubID, SetCounter, byte(c.Param()), c.ValueByte())
	return append(b, SysExEnd)
}

func boolByte(on bool) byte {
	if on {
		return 0x01
	}
	return 0x00
}

// ControlChange returns the Local Control message. The channel is always the
// first one regardless of the configured transmit channel.
func (l LocalControl) ControlChange() midi.Message {
	var v uint8
	if l {
		v = 127
	}
	return midi.ControlChange(localControlChannel, ControllerLocalControl, v)
}

func (l LocalControl) appendTo(b []byte) []byte {
	return append(b, l.ControlChange().Bytes()...)
}

func (NotePriority) Param() Param { return ParamNotePriority }
func (VelocityResponse) Param() Param { return ParamVelocityResponse }
func (PlayMode) Param() Param { return ParamPlayMode }
func (SeqRetrigger) Param() Param { return ParamSeqRetrigger }
func (NextSequence) Param() Param { return ParamNextSequence }
func (StepMode) Param() Param { return ParamStepMode }
func (StepSize) Param() Param { return ParamStepSize }
func (MidiTransmitChannel) Param() Param { return ParamTransmitChannel }
func (MidiReceiveChannel) Param() Param { return ParamReceiveChannel }
func (LFOKeyRetrigger) Param() Param { return ParamLFOKeyRetrigger }
func (EnvelopeLegato) Param() Param { return ParamEnvelopeLegato }
func (PitchBendRange) Param() Param { return ParamBendRange }
func (GateLength) Param() Param { return ParamGateLength }
func (SyncSource) Param() Param { return ParamSyncSource }

func (p NotePriority) ValueByte() byte { return notePriorityBytes[p] }
func (v VelocityResponse) ValueByte() byte { return velocityResponseBytes[v] }
func (p PlayMode) ValueByte() byte { return playModeBytes[p] }
func (r SeqRetrigger) ValueByte() byte { return seqRetriggerBytes[r] }
func (n NextSequence) ValueByte() byte { return nextSequenceBytes[n] }
func (s StepMode) ValueByte() byte { return stepModeBytes[s] }
func (s StepSize) ValueByte() byte { return stepSizeBytes[s] }
func (l LFOKeyRetrigger) ValueByte() byte { return boolByte(bool(l)) }
func (e EnvelopeLegato) ValueByte() byte { return boolByte(bool(e)) }
func (b PitchBendRange) ValueByte() byte { return byte(b.Range.Int()) }
func (g GateLength) ValueByte() byte { return gateLengthBytes[g] }
func (s SyncSource) ValueByte() byte { return syncSourceBytes[s] }

// ValueByte is the zero-based channel number.
func (t MidiTransmitChannel) ValueByte() byte {
	return byte(t.Channel.Int() - 1)
}

// ValueByte is the zero-based channel number, or 0x10 for all channels.
func (r MidiReceiveChannel) ValueByte() byte {
	if r.all {
		return receiveAllByte
	}
	return byte(r.ch.Int() - 1)
}

func (p NotePriority) appendTo(b []byte) []byte { return appendSet(b, p) }
func (v VelocityResponse) appendTo(b []byte) []byte { return appendSet(b, v) }
func (p PlayMode) appendTo(b []byte) []byte { return appendSet(b, p) }
func (r SeqRetrigger) appendTo(b []byte) []byte { return appendSet(b, r) }
func (n NextSequence) appendTo(b []byte) []byte { return appendSet(b, n) }
func (s StepMode) appendTo(b []byte) []byte { return appendSet(b, s) }
func (s StepSize) appendTo(b []byte) []byte { return appendSet(b, s) }
func (t MidiTransmitChannel) appendTo(b []byte) []byte { return appendSet(b, t) }
func (r MidiReceiveChannel) appendTo(b []byte) []byte { return appendSet(b, r) }
func (l LFOKeyRetrigger) appendTo(b []byte) []byte { return appendSet(b, l) }
func (e EnvelopeLegato) appendTo(b []byte) []byte { return appendSet(b, e) }
func (p PitchBendRange) appendTo(b []byte) []byte { return appendSet(b, p) }
func (g GateLength) appendTo(b []byte) []byte { return appendSet(b, g) }
func (s SyncSource) appendTo(b []byte) []byte { return appendSet(b, s) }
