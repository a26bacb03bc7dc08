package settings

import (
	"fmt"
)

// Setting is one parameter: its allowed values and the one currently chosen.
// Allowed is shared between registry values and must not be modified.
type Setting struct {
	Selected Command // nil until a value is chosen
	Allowed  []Command
}

// Name returns the parameter label shared by every allowed value.
func (s Setting) Name() string {
	if len(s.Allowed) == 0 {
		return ""
	}
	return s.Allowed[0].Name()
}

// Owns reports whether c is one of the allowed values.
func (s Setting) Owns(c Command) bool {
	for _, a := range s.Allowed {
		if a == c {
			return true
		}
	}
	return false
}

// Group is a presentation grouping of settings.
type Group struct {
	Name     string
	Settings []Setting
}

// Registry is the ordered list of groups. Values are never modified in
// place; UpdateSetting returns a new Registry.
type Registry []Group

var initial = mustValidate(Registry{
	{
		Name: "Keyboard Parameters",
		Settings: []Setting{
			{Allowed: commands(notePriorities)},
			{Allowed: commands(velocityResponses)},
		},
	},
	{
		Name: "Sequencer Control",
		Settings: []Setting{
			{Allowed: commands(playModes)},
			{Allowed: commands(seqRetriggers)},
			{Allowed: commands(nextSequences)},
			{Allowed: commands(stepModes)},
			{Allowed: commands(stepSizes)},
			{Allowed: commands(gateLengths)},
			{Allowed: commands(syncSources)},
		},
	},
	{
		Name: "MIDI Channel Select",
		Settings: []Setting{
			{Allowed: commands(transmitChannels())},
			{Allowed: commands(receiveChannels())},
			{Allowed: commands(localControls)},
		},
	},
	{
		Name: "Module Parameters",
		Settings: []Setting{
			{Allowed: commands(lfoKeyRetriggers)},
			{Allowed: commands(envelopeLegatos)},
			{Allowed: commands(bendRanges())},
		},
	},
})

func mustValidate(r Registry) Registry {
	if err := Validate(r); err != nil {
		panic(fmt.Sprintf("settings: invalid registry: %v", err))
	}
	return r
}

// InitialRegistry returns the startup registry with nothing selected.
func InitialRegistry() Registry {
	return initial.Clone()
}

// Clone returns a copy of r that shares only the immutable Allowed slices.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for i, g := range r {
		out[i] = Group{Name: g.Name, Settings: append([]Setting(nil), g.Settings...)}
	}
	return out
}

// UpdateSetting returns a copy of r in which the setting that allows c has c
// selected. If no setting allows c the copy equals r.
func UpdateSetting(r Registry, c Command) Registry {
	out := r.Clone()
	for _, g := range out {
		for i, s := range g.Settings {
			if s.Owns(c) {
				g.Settings[i].Selected = c
			}
		}
	}
	return out
}

// Validate checks that every command is allowed by exactly one setting and
// that every selection is one of its setting's allowed values.
func Validate(r Registry) error {
	owner := make(map[Command]string)
	for _, g := range r {
		for _, s := range g.Settings {
			if len(s.Allowed) == 0 {
				return fmt.Errorf("group %q: setting without allowed values", g.Name)
			}
			for _, c := range s.Allowed {
				if prev, dup := owner[c]; dup {
					return fmt.Errorf("%s=%s is allowed by both %q and %q", c.Name(), c.Value(), prev, g.Name)
				}
				owner[c] = g.Name
			}
			if s.Selected != nil && !s.Owns(s.Selected) {
				return fmt.Errorf("%s: selected value %q is not allowed", s.Name(), s.Selected.Value())
			}
		}
	}
	return nil
}

// Settings returns every setting in registry order.
func (r Registry) Settings() []Setting {
	var out []Setting
	for _, g := range r {
		out = append(out, g.Settings...)
	}
	return out
}

// Selected returns the chosen value of every setting that has one.
func (r Registry) Selected() []Command {
	var out []Command
	for _, s := range r.Settings() {
		if s.Selected != nil {
			out = append(out, s.Selected)
		}
	}
	return out
}

// Commands returns every allowed value in registry order.
func (r Registry) Commands() []Command {
	var out []Command
	for _, s := range r.Settings() {
		out = append(out, s.Allowed...)
	}
	return out
}
