// Package tui provides a terminal settings editor for the MicroBrute
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/james-see/bruteconfig/pkg/editor"
	"github.com/james-see/bruteconfig/pkg/patch"
	"github.com/james-see/bruteconfig/pkg/settings"
)

// Panel colors of the MicroBrute: orange knobs on a dark grey face
var (
	bruteOrange = lipgloss.Color("#FF7A00")
	bruteAmber  = lipgloss.Color("#FFC266")
	panelGray   = lipgloss.Color("#2B2B2B")
	labelGray   = lipgloss.Color("#BEBEBE")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(bruteOrange).
			Background(panelGray).
			Padding(0, 2).
			MarginBottom(1)

	groupStyle = lipgloss.NewStyle().
			Foreground(bruteAmber).
			Bold(true).
			MarginTop(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(labelGray).
			PaddingLeft(2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(bruteOrange).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(bruteAmber).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF3030")).
			Bold(true).
			PaddingTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(bruteOrange).
			Padding(0, 2)
)

const nameWidth = 22

// State represents the current TUI state
type State int

const (
	StateSettings State = iota
	StateSending
	StateFilePicker
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Apply key.Binding
	Open  key.Binding
	Back  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Apply, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Apply, k.Open, k.Back},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous setting")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next setting")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous value")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next value")),
	Apply: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send value")),
	Open:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "load patch file")),
	Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// row is one setting as shown on screen; choice is the value under the cursor
type row struct {
	group   string
	setting settings.Setting
	choice  int
}

func (r row) current() settings.Command {
	return r.setting.Allowed[r.choice]
}

// Model represents the TUI model
type Model struct {
	editor     *editor.Editor
	rows       []row
	cursor     int
	state      State
	keys       keyMap
	help       help.Model
	spinner    spinner.Model
	filePicker filepicker.Model
	status     string
	err        error
}

type appliedMsg struct {
	cmd  settings.Command
	data []byte
	err  error
}

type loadedMsg struct {
	path string
	n    int
	err  error
}

// New creates a new TUI model editing ed
func New(ed *editor.Editor) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".syx", ".mid", ".midi", ".hex", ".txt"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(bruteOrange)

	m := Model{
		editor:     ed,
		state:      StateSettings,
		keys:       keys,
		help:       help.New(),
		spinner:    s,
		filePicker: fp,
	}
	m.refresh()
	return m
}

// refresh reloads the rows from the editor, keeping browsed values of
// settings that have no selection yet.
func (m *Model) refresh() {
	var rows []row
	for _, g := range m.editor.Registry() {
		for _, s := range g.Settings {
			r := row{group: g.Name, setting: s}
			if i := len(rows); i < len(m.rows) {
				r.choice = m.rows[i].choice
			}
			for j, c := range s.Allowed {
				if c == s.Selected {
					r.choice = j
				}
			}
			rows = append(rows, r)
		}
	}
	m.rows = rows
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, m.keys.Back):
				m.state = StateSettings
				return m, nil
			case keyMsg.String() == "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = StateSending
			return m, tea.Batch(m.spinner.Tick, m.load(path))
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state == StateSettings {
			return m.updateSettings(msg)
		}

	case spinner.TickMsg:
		if m.state != StateSending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case appliedMsg:
		m.state = StateSettings
		m.err = msg.err
		if msg.err == nil {
			m.status = fmt.Sprintf("%s = %s  [%s]", settings.OptionName(msg.cmd), settings.OptionValue(msg.cmd), settings.FormatHex(msg.data))
		}
		m.refresh()
		return m, nil

	case loadedMsg:
		m.state = StateSettings
		m.err = msg.err
		if msg.err == nil {
			m.status = fmt.Sprintf("loaded %d settings from %s", msg.n, filepath.Base(msg.path))
		}
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		m.rows = append([]row(nil), m.rows...)
		r := &m.rows[m.cursor]
		r.choice = (r.choice + len(r.setting.Allowed) - 1) % len(r.setting.Allowed)
	case key.Matches(msg, m.keys.Right):
		m.rows = append([]row(nil), m.rows...)
		r := &m.rows[m.cursor]
		r.choice = (r.choice + 1) % len(r.setting.Allowed)
	case key.Matches(msg, m.keys.Apply):
		m.state = StateSending
		return m, tea.Batch(m.spinner.Tick, m.apply(m.rows[m.cursor].current()))
	case key.Matches(msg, m.keys.Open):
		m.state = StateFilePicker
		return m, m.filePicker.Init()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) apply(c settings.Command) tea.Cmd {
	ed := m.editor
	return func() tea.Msg {
		data, err := ed.Apply(c)
		return appliedMsg{cmd: c, data: data, err: err}
	}
}

func (m Model) load(path string) tea.Cmd {
	ed := m.editor
	return func() tea.Msg {
		cmds, err := patch.ReadFile(path)
		if err != nil {
			return loadedMsg{path: path, err: err}
		}
		n, err := ed.Load(cmds)
		return loadedMsg{path: path, n: n, err: err}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" MICROBRUTE SETTINGS "))
	s.WriteString("\n")

	if m.state == StateFilePicker {
		s.WriteString(m.filePicker.View())
		s.WriteString("\n")
	} else {
		s.WriteString(boxStyle.Render(m.viewSettings()))
		s.WriteString("\n")
	}

	switch {
	case m.state == StateSending:
		s.WriteString(statusStyle.Render(m.spinner.View() + " sending..."))
	case m.err != nil:
		s.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	case m.status != "":
		s.WriteString(statusStyle.Render("✓ " + m.status))
	}

	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

func (m Model) viewSettings() string {
	var s strings.Builder
	group := ""
	for i, r := range m.rows {
		if r.group != group {
			group = r.group
			s.WriteString(groupStyle.Render(strings.ToUpper(group)))
			s.WriteString("\n")
		}

		value := settings.OptionValue(r.current())
		mark := " "
		if r.setting.Selected != nil && r.current() == r.setting.Selected {
			mark = "●"
		}
		line := fmt.Sprintf("%-*s ‹ %s › %s", nameWidth, r.setting.Name(), value, mark)

		if i == m.cursor {
			s.WriteString(cursorStyle.Render("▸ " + line))
		} else {
			s.WriteString(rowStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}
	return s.String()
}

// Run starts the TUI application
func Run(ed *editor.Editor) error {
	p := tea.NewProgram(New(ed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
