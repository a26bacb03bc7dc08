package settings

import (
	"strconv"
)

// OptionName returns the human label of the parameter c sets.
func OptionName(c Command) string {
	return c.Name()
}

// OptionValue returns the human label of the value c carries.
func OptionValue(c Command) string {
	return c.Value()
}

var paramNames = map[Param]string{
	ParamReceiveChannel:   "Receive Channel",
	ParamTransmitChannel:  "Transmit Channel",
	ParamNotePriority:     "Note Priority",
	ParamEnvelopeLegato:   "Envelope Legato",
	ParamLFOKeyRetrigger:  "LFO Key Retrigger",
	ParamVelocityResponse: "Velocity Response",
	ParamStepMode:         "Step On",
	ParamBendRange:        "Bend Range",
	ParamPlayMode:         "Play",
	ParamNextSequence:     "Next Sequence",
	ParamSeqRetrigger:     "Sequencer Retrigger",
	ParamGateLength:       "Gate Length",
	ParamStepSize:         "Step Size",
	ParamSyncSource:       "Sync",
}

// String returns the human label of the parameter.
func (p Param) String() string {
	if name, ok := paramNames[p]; ok {
		return name
	}
	return "Param(0x" + strconv.FormatUint(uint64(p), 16) + ")"
}

func label[T ~uint8](labels []string, v T, kind string) string {
	if int(v) < len(labels) {
		return labels[v]
	}
	return kind + "(" + strconv.Itoa(int(v)) + ")"
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

func (LocalControl) Name() string { return "Local Control" }
func (l LocalControl) Value() string { return onOff(bool(l)) }
func (NotePriority) Name() string { return ParamNotePriority.String() }
func (VelocityResponse) Name() string { return ParamVelocityResponse.String() }
func (PlayMode) Name() string { return ParamPlayMode.String() }
func (SeqRetrigger) Name() string { return ParamSeqRetrigger.String() }
func (NextSequence) Name() string { return ParamNextSequence.String() }
func (StepMode) Name() string { return ParamStepMode.String() }
func (StepSize) Name() string { return ParamStepSize.String() }
func (MidiTransmitChannel) Name() string { return ParamTransmitChannel.String() }
func (MidiReceiveChannel) Name() string { return ParamReceiveChannel.String() }
func (LFOKeyRetrigger) Name() string { return ParamLFOKeyRetrigger.String() }
func (EnvelopeLegato) Name() string { return ParamEnvelopeLegato.String() }
func (PitchBendRange) Name() string { return ParamBendRange.String() }
func (GateLength) Name() string { return ParamGateLength.String() }
func (SyncSource) Name() string { return ParamSyncSource.String() }

func (p NotePriority) Value() string {
	return label([]string{"Low", "Last", "High"}, p, "NotePriority")
}

func (v VelocityResponse) Value() string {
	return label([]string{"Linear", "Logarithmic", "Anti-Logarithmic"}, v, "VelocityResponse")
}

func (p PlayMode) Value() string {
	return label([]string{"Hold", "Note On"}, p, "PlayMode")
}

func (r SeqRetrigger) Value() string {
	return label([]string{"None", "Legato", "Reset"}, r, "SeqRetrigger")
}

func (n NextSequence) Value() string {
	return label([]string{"End", "Instant Reset", "Instant Continuation"}, n, "NextSequence")
}

func (s StepMode) Value() string {
	return label([]string{"Gate", "Clock"}, s, "StepMode")
}

// Value uses U+2044 FRACTION SLASH, as printed on the panel.
func (s StepSize) Value() string {
	return label([]string{"1⁄4", "1⁄8", "1⁄16", "1⁄32"}, s, "StepSize")
}

func (t MidiTransmitChannel) Value() string {
	return strconv.Itoa(t.Channel.Int())
}

func (r MidiReceiveChannel) Value() string {
	if r.all {
		return "All"
	}
	return strconv.Itoa(r.ch.Int())
}

func (l LFOKeyRetrigger) Value() string { return onOff(bool(l)) }
func (e EnvelopeLegato) Value() string { return onOff(bool(e)) }

func (b PitchBendRange) Value() string {
	return strconv.Itoa(b.Range.Int())
}

func (g GateLength) Value() string {
	return label([]string{"Short", "Medium", "Long"}, g, "GateLength")
}

func (s SyncSource) Value() string {
	return label([]string{"Auto", "Internal", "External"}, s, "SyncSource")
}
