// Package patch stores an ordered list of settings in a file: raw SysEx
// (.syx), one hex message per line, or a Standard MIDI File whose first track
// carries the messages.
package patch

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/bruteconfig/pkg/settings"
)

// Format represents a file format
type Format string

const (
	FormatSyx     Format = "syx"
	FormatMIDI    Format = "midi"
	FormatHex     Format = "hex"
	FormatUnknown Format = "unknown"
)

var ErrNoSettings = errors.New("no settings found")

// DetectFormat detects the format of a file based on its extension
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".syx":
		return FormatSyx
	case ".mid", ".midi":
		return FormatMIDI
	case ".hex", ".txt":
		return FormatHex
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 3 {
		return FormatUnknown
	}
	if bytes.HasPrefix(data, []byte("MThd")) {
		return FormatMIDI
	}
	if data[0] == settings.SysExStart || data[0]&0xF0 == 0xB0 {
		return FormatSyx
	}
	if _, err := settings.ParseHex(string(bytes.SplitN(data, []byte("\n"), 2)[0])); err == nil {
		return FormatHex
	}
	return FormatUnknown
}

// Split cuts a byte stream into SysEx and Control Change messages.
func Split(data []byte) ([][]byte, error) {
	var msgs [][]byte
	for i := 0; i < len(data); {
		switch b := data[i]; {
		case b == settings.SysExStart:
			end := bytes.IndexByte(data[i:], settings.SysExEnd)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated message at offset %d", settings.ErrNotSysEx, i)
			}
			msgs = append(msgs, data[i:i+end+1])
			i += end + 1
		case b&0xF0 == 0xB0:
			if i+3 > len(data) {
				return nil, fmt.Errorf("%w: control change at offset %d", settings.ErrTooShort, i)
			}
			msgs = append(msgs, data[i:i+3])
			i += 3
		default:
			return nil, fmt.Errorf("unexpected byte 0x%02X at offset %d", b, i)
		}
	}
	return msgs, nil
}

// Encode renders cmds in the given format.
func Encode(cmds []settings.Command, f Format) ([]byte, error) {
	switch f {
	case FormatSyx:
		var out []byte
		for _, c := range cmds {
			out = append(out, settings.CommandData(c)...)
		}
		return out, nil
	case FormatHex:
		var buf bytes.Buffer
		for _, c := range cmds {
			fmt.Fprintf(&buf, "%s\n", settings.FormatHex(settings.CommandData(c)))
		}
		return buf.Bytes(), nil
	case FormatMIDI:
		return GenerateMIDI(cmds)
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

// Decode reads the commands stored in data. Every message of a .syx or hex
// file must be a setting; a MIDI file may carry other events, which are
// skipped.
func Decode(data []byte, f Format) ([]settings.Command, error) {
	var cmds []settings.Command
	switch f {
	case FormatSyx:
		msgs, err := Split(data)
		if err != nil {
			return nil, err
		}
		for i, m := range msgs {
			c, err := settings.Decode(m)
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", i+1, err)
			}
			cmds = append(cmds, c)
		}
	case FormatHex:
		sc := bufio.NewScanner(bytes.NewReader(data))
		for line := 1; sc.Scan(); line++ {
			text := strings.TrimSpace(sc.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			m, err := settings.ParseHex(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			c, err := settings.Decode(m)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cmds = append(cmds, c)
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	case FormatMIDI:
		var err error
		if cmds, err = ParseMIDI(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}

	if len(cmds) == 0 {
		return nil, ErrNoSettings
	}
	return cmds, nil
}

// ReadFile reads a patch file, detecting its format from the extension and
// falling back to the content.
func ReadFile(path string) ([]settings.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	f := DetectFormat(path)
	if f == FormatUnknown {
		f = DetectFormatFromContent(data)
	}
	return Decode(data, f)
}

// WriteFile writes cmds to path in the format its extension names.
func WriteFile(path string, cmds []settings.Command) error {
	f := DetectFormat(path)
	if f == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}
	data, err := Encode(cmds, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// GetSupportedFormats returns the formats Encode and Decode accept.
func GetSupportedFormats() []Format {
	return []Format{FormatSyx, FormatHex, FormatMIDI}
}
