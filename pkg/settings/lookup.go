package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrUnknownValue  = errors.New("unknown value")
)

// Key returns the kebab-case form of a label: "Note Priority" -> "note-priority".
func Key(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "-")
}

// Setting returns the setting whose name or key matches option.
func (r Registry) Setting(option string) (Setting, bool) {
	for _, s := range r.Settings() {
		if strings.EqualFold(s.Name(), option) || Key(s.Name()) == Key(option) {
			return s, true
		}
	}
	return Setting{}, false
}

// Find resolves an option and value label to a command. Labels match without
// regard to case, and "/" stands in for the fraction slash of step sizes.
func (r Registry) Find(option, value string) (Command, error) {
	s, ok := r.Setting(option)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownOption, option)
	}
	want := normalizeValue(value)
	for _, c := range s.Allowed {
		if normalizeValue(c.Value()) == want {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w %q for %s", ErrUnknownValue, value, s.Name())
}

func normalizeValue(v string) string {
	v = strings.ReplaceAll(v, "⁄", "/")
	return strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(v, "-", " ")), " "))
}
