package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "note-priority", Key("Note Priority"))
	assert.Equal(t, "lfo-key-retrigger", Key(" LFO Key Retrigger "))
}

func TestFind(t *testing.T) {
	r := InitialRegistry()
	tests := []struct {
		option string
		value  string
		want   Command
	}{
		{"Note Priority", "High", NotePriorityHigh},
		{"note-priority", "last", NotePriorityLast},
		{"velocity-response", "anti-logarithmic", VelocityAntiLogarithmic},
		{"Step Size", "1/16", StepSixteenth},
		{"step-size", "1⁄32", StepThirtySecond},
		{"receive-channel", "all", ReceiveAll},
		{"Receive Channel", "12", ReceiveOn(12)},
		{"bend-range", "2", BendRangeOf(2)},
		{"local control", "off", LocalControlOff},
		{"play", "note on", PlayNoteOn},
	}

	for _, tt := range tests {
		t.Run(tt.option+"="+tt.value, func(t *testing.T) {
			got, err := r.Find(tt.option, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindErrors(t *testing.T) {
	r := InitialRegistry()

	_, err := r.Find("arpeggiator", "on")
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = r.Find("bend-range", "13")
	assert.ErrorIs(t, err, ErrUnknownValue)

	_, err = r.Find("transmit-channel", "all")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestFindEveryCommandByLabels(t *testing.T) {
	r := InitialRegistry()
	for _, c := range r.Commands() {
		got, err := r.Find(c.Name(), c.Value())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}
