// Package settings models the global parameters of an Arturia MicroBrute:
// the closed set of commands, their display labels, their wire encoding and
// the registry that tracks which value is selected for each parameter.
package settings

import (
	"gitlab.com/gomidi/midi/v2"
)

// Command is one value of one settable parameter. The set of implementations
// is closed: every command is either a MidiCommand or a SysexCommand defined
// in this package.
type Command interface {
	// Name returns the human label of the parameter, e.g. "Bend Range".
	Name() string
	// Value returns the human label of the chosen value, e.g. "7".
	Value() string

	appendTo(b []byte) []byte
}

// MidiCommand is a command transmitted as a channel Control Change.
type MidiCommand interface {
	Command
	ControlChange() midi.Message
}

// SysexCommand is a command transmitted as a vendor "set parameter" SysEx frame.
type SysexCommand interface {
	Command
	Param() Param
	ValueByte() byte
}

// LocalControl switches the keyboard's connection to its own sound engine.
type LocalControl bool

const (
	LocalControlOff LocalControl = false
	LocalControlOn  LocalControl = true
)

// NotePriority decides which key sounds when several are held.
type NotePriority uint8

const (
	NotePriorityLow NotePriority = iota
	NotePriorityLast
	NotePriorityHigh
)

// VelocityResponse is the keyboard velocity curve.
type VelocityResponse uint8

const (
	VelocityLinear VelocityResponse = iota
	VelocityLogarithmic
	VelocityAntiLogarithmic
)

// PlayMode decides whether the sequencer runs latched or while a key is held.
type PlayMode uint8

const (
	PlayHold PlayMode = iota
	PlayNoteOn
)

// SeqRetrigger is how a new key press restarts the running sequence.
type SeqRetrigger uint8

const (
	RetriggerNone SeqRetrigger = iota
	RetriggerLegato
	RetriggerReset
)

// NextSequence is what happens when another sequence is selected during playback.
type NextSequence uint8

const (
	NextSeqEnd NextSequence = iota
	NextSeqInstantReset
	NextSeqInstantContinuation
)

// StepMode selects what advances the sequencer by one step.
type StepMode uint8

const (
	StepGate StepMode = iota
	StepClock
)

// StepSize is the note division of one sequencer step.
type StepSize uint8

const (
	StepQuarter StepSize = iota
	StepEighth
	StepSixteenth
	StepThirtySecond
)

// MidiTransmitChannel is the channel the keyboard transmits on.
type MidiTransmitChannel struct {
	Channel MidiChannel
}

// TransmitOn returns the transmit channel command for channel n, clamped to [1,16].
func TransmitOn(n int) MidiTransmitChannel {
	return MidiTransmitChannel{Channel: NewMidiChannel(n)}
}

// MidiReceiveChannel is the channel the sound engine listens on, or all channels.
type MidiReceiveChannel struct {
	ch  MidiChannel
	all bool
}

// ReceiveAll listens on every channel.
var ReceiveAll = MidiReceiveChannel{all: true}

// ReceiveOn returns the receive channel command for channel n, clamped to [1,16].
func ReceiveOn(n int) MidiReceiveChannel {
	return MidiReceiveChannel{ch: NewMidiChannel(n)}
}

// Channel returns the receive channel; ok is false for ReceiveAll.
func (r MidiReceiveChannel) Channel() (ch MidiChannel, ok bool) {
	return r.ch, !r.all
}

// LFOKeyRetrigger restarts the LFO on every key press.
type LFOKeyRetrigger bool

const (
	LFOKeyRetriggerOff LFOKeyRetrigger = false
	LFOKeyRetriggerOn  LFOKeyRetrigger = true
)

// EnvelopeLegato suppresses envelope retrigger on overlapping notes.
type EnvelopeLegato bool

const (
	EnvelopeLegatoOff EnvelopeLegato = false
	EnvelopeLegatoOn  EnvelopeLegato = true
)

// PitchBendRange is the pitch wheel range in semitones.
type PitchBendRange struct {
	Range BendRange
}

// BendRangeOf returns the bend range command for n semitones, clamped to [1,12].
func BendRangeOf(n int) PitchBendRange {
	return PitchBendRange{Range: NewBendRange(n)}
}

// GateLength is the sequencer gate time.
type GateLength uint8

const (
	GateShort GateLength = iota
	GateMedium
	GateLong
)

// SyncSource selects the tempo clock.
type SyncSource uint8

const (
	SyncAuto SyncSource = iota
	SyncInternal
	SyncExternal
)

// Every declared value per parameter, in presentation order.
var (
	localControls     = []LocalControl{LocalControlOn, LocalControlOff}
	notePriorities    = []NotePriority{NotePriorityLow, NotePriorityLast, NotePriorityHigh}
	velocityResponses = []VelocityResponse{VelocityLinear, VelocityLogarithmic, VelocityAntiLogarithmic}
	playModes         = []PlayMode{PlayHold, PlayNoteOn}
	seqRetriggers     = []SeqRetrigger{RetriggerNone, RetriggerLegato, RetriggerReset}
	nextSequences     = []NextSequence{NextSeqEnd, NextSeqInstantReset, NextSeqInstantContinuation}
	stepModes         = []StepMode{StepGate, StepClock}
	stepSizes         = []StepSize{StepQuarter, StepEighth, StepSixteenth, StepThirtySecond}
	lfoKeyRetriggers  = []LFOKeyRetrigger{LFOKeyRetriggerOn, LFOKeyRetriggerOff}
	envelopeLegatos   = []EnvelopeLegato{EnvelopeLegatoOn, EnvelopeLegatoOff}
	gateLengths       = []GateLength{GateShort, GateMedium, GateLong}
	syncSources       = []SyncSource{SyncAuto, SyncInternal, SyncExternal}
)

func transmitChannels() []MidiTransmitChannel {
	out := make([]MidiTransmitChannel, 0, MaxChannel)
	for n := MinChannel; n <= MaxChannel; n++ {
		out = append(out, TransmitOn(n))
	}
	return out
}

func receiveChannels() []MidiReceiveChannel {
	out := make([]MidiReceiveChannel, 0, MaxChannel+1)
	for n := MinChannel; n <= MaxChannel; n++ {
		out = append(out, ReceiveOn(n))
	}
	return append(out, ReceiveAll)
}

func bendRanges() []PitchBendRange {
	out := make([]PitchBendRange, 0, MaxBendRange)
	for n := MinBendRange; n <= MaxBendRange; n++ {
		out = append(out, BendRangeOf(n))
	}
	return out
}

func commands[T Command](values []T) []Command {
	out := make([]Command, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
