package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionName(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{LocalControlOn, "Local Control"},
		{BendRangeOf(3), "Bend Range"},
		{ReceiveAll, "Receive Channel"},
		{TransmitOn(2), "Transmit Channel"},
		{NotePriorityLast, "Note Priority"},
		{StepSixteenth, "Step Size"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OptionName(tt.cmd))
		})
	}
}

func TestOptionValue(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"local control on", LocalControlOn, "On"},
		{"local control off", LocalControlOff, "Off"},
		{"step quarter", StepQuarter, "1⁄4"},
		{"step thirty-second", StepThirtySecond, "1⁄32"},
		{"bend", BendRangeOf(9), "9"},
		{"transmit", TransmitOn(16), "16"},
		{"receive", ReceiveOn(3), "3"},
		{"receive all", ReceiveAll, "All"},
		{"velocity", VelocityAntiLogarithmic, "Anti-Logarithmic"},
		{"next", NextSeqInstantContinuation, "Instant Continuation"},
		{"play", PlayNoteOn, "Note On"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptionValue(tt.cmd))
		})
	}
}

func TestDisplayCoversEveryCommand(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range InitialRegistry().Commands() {
		name, value := OptionName(c), OptionValue(c)
		assert.NotEmpty(t, name, "%T", c)
		assert.NotEmpty(t, value, "%T", c)
		assert.NotContains(t, name, "Param(", "%T has no label", c)
		assert.NotContains(t, value, "(", "%T value has no label", c)

		pair := name + "=" + value
		assert.False(t, seen[pair], "duplicate display %q", pair)
		seen[pair] = true
	}
}

func TestParamStringFallback(t *testing.T) {
	assert.Equal(t, "Param(0x7f)", Param(0x7F).String())
	assert.Equal(t, "NotePriority(9)", NotePriority(9).Value())
}
