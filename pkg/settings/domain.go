package settings

// Channel and bend range limits, inclusive.
const (
	MinChannel   = 1
	MaxChannel   = 16
	MinBendRange = 1
	MaxBendRange = 12
)

// MidiChannel is a MIDI channel number in [1,16].
// The zero value is channel 1.
type MidiChannel struct {
	idx uint8 // zero-based
}

// NewMidiChannel clamps n into [1,16].
func NewMidiChannel(n int) MidiChannel {
	return MidiChannel{idx: uint8(clamp(n, MinChannel, MaxChannel) - MinChannel)}
}

// Int returns the one-based channel number.
func (c MidiChannel) Int() int {
	return int(c.idx) + MinChannel
}

// BendRange is a pitch bend range in semitones, in [1,12].
// The zero value is a range of 1.
type BendRange struct {
	idx uint8
}

// NewBendRange clamps n into [1,12].
func NewBendRange(n int) BendRange {
	return BendRange{idx: uint8(clamp(n, MinBendRange, MaxBendRange) - MinBendRange)}
}

// Int returns the range in semitones.
func (b BendRange) Int() int {
	return int(b.idx) + MinBendRange
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
