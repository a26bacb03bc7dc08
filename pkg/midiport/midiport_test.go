package midiport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPorts = []Port{
	{Number: 0, Name: "Midi Through:Midi Through Port-0 14:0"},
	{Number: 1, Name: "MicroBrute:MicroBrute MIDI 1 20:0"},
	{Number: 2, Name: "Launchpad X:Launchpad X LPX MIDI 24:1"},
}

func TestMatch(t *testing.T) {
	tests := []struct {
		fragment string
		want     int
	}{
		{"microbrute", 1},
		{"MICROBRUTE MIDI", 1},
		{"lpx", 2},
		{"2", 2},
		{" 0 ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			p, err := Match(testPorts, tt.fragment)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Number)
		})
	}
}

func TestMatchErrors(t *testing.T) {
	_, err := Match(nil, "microbrute")
	assert.ErrorIs(t, err, ErrNoPorts)

	_, err = Match(testPorts, "blofeld")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = Match(testPorts, "7")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestClosedOutput(t *testing.T) {
	o := &Output{name: "gone"}
	assert.ErrorIs(t, o.Send([]byte{0xB0, 0x7A, 0x00}), ErrPortClosed)
	assert.NoError(t, o.Close())
	assert.Equal(t, "gone", o.Name())
}
