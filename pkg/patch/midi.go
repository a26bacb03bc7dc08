package patch

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/james-see/bruteconfig/pkg/settings"
)

const (
	ticksPerQuarter = 480
	// spacing between messages so the device is not flooded on playback
	messageGap = 10
	trackName  = "MicroBrute settings"
)

// GenerateMIDI creates a single track Standard MIDI File that sends cmds in
// order from the start of the song.
func GenerateMIDI(cmds []settings.Command) ([]byte, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(trackName))

	var delta uint32
	for _, c := range cmds {
		track.Add(delta, settings.CommandData(c))
		delta = messageGap
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseMIDI collects the settings carried by any track of a Standard MIDI
// File, in track order.
func ParseMIDI(data []byte) ([]settings.Command, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	var cmds []settings.Command
	for _, track := range s.Tracks {
		for _, ev := range track {
			if ev.Message.IsMeta() {
				continue
			}
			if c, err := settings.Decode([]byte(ev.Message)); err == nil {
				cmds = append(cmds, c)
			}
		}
	}
	return cmds, nil
}
