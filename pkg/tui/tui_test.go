package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-see/bruteconfig/pkg/editor"
	"github.com/james-see/bruteconfig/pkg/logging"
	"github.com/james-see/bruteconfig/pkg/patch"
	"github.com/james-see/bruteconfig/pkg/settings"
)

type fakeSender struct {
	sent [][]byte
	err  error
}

func (f *fakeSender) Send(data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// press feeds a key through Update and runs any commands it returns,
// feeding their results back in.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	m = next.(Model)
	for _, msg := range run(cmd) {
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

var (
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestNavigateAndApply(t *testing.T) {
	out := &fakeSender{}
	ed := editor.New(out, logging.Discard())
	m := New(ed)

	assert.Equal(t, 15, len(m.rows))

	// Velocity Response: Linear -> Logarithmic
	m = press(t, m, down)
	m = press(t, m, right)
	m = press(t, m, enter)

	assert.Equal(t, StateSettings, m.state)
	assert.NoError(t, m.err)
	assert.Equal(t, []settings.Command{settings.VelocityLogarithmic}, ed.Registry().Selected())
	require.Len(t, out.sent, 1)
	assert.Contains(t, m.status, "Velocity Response = Logarithmic")
	assert.Contains(t, m.View(), "●")
}

func TestCursorBounds(t *testing.T) {
	m := New(editor.New(nil, logging.Discard()))

	m = press(t, m, up)
	assert.Equal(t, 0, m.cursor)

	for range 20 {
		m = press(t, m, down)
	}
	assert.Equal(t, len(m.rows)-1, m.cursor)
}

func TestCycleWraps(t *testing.T) {
	m := New(editor.New(nil, logging.Discard()))

	// Note Priority: Low, Last, High
	m = press(t, m, left)
	assert.Equal(t, settings.NotePriorityHigh, m.rows[0].current())
	m = press(t, m, right)
	assert.Equal(t, settings.NotePriorityLow, m.rows[0].current())
}

func TestApplyFailureKeepsRegistry(t *testing.T) {
	ed := editor.New(&fakeSender{err: errors.New("unplugged")}, logging.Discard())
	m := New(ed)

	m = press(t, m, enter)
	assert.Error(t, m.err)
	assert.Empty(t, ed.Registry().Selected())
	assert.Contains(t, m.View(), "unplugged")
}

func TestLoadPatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.syx")
	require.NoError(t, patch.WriteFile(path, []settings.Command{settings.SyncExternal, settings.BendRangeOf(2)}))

	ed := editor.New(nil, logging.Discard())
	m := New(ed)
	msgs := run(m.load(path))
	require.Len(t, msgs, 1)
	next, _ := m.Update(msgs[0])
	m = next.(Model)

	assert.NoError(t, m.err)
	assert.Contains(t, m.status, "loaded 2 settings from setup.syx")
	assert.Len(t, ed.Registry().Selected(), 2)
}

func TestQuit(t *testing.T) {
	m := New(editor.New(nil, logging.Discard()))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
