// Package editor holds the live settings session: the current registry and
// the output the chosen values are sent to.
package editor

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/james-see/bruteconfig/pkg/settings"
)

// Sender transmits raw MIDI bytes to a destination.
type Sender interface {
	Send(data []byte) error
}

// Editor serializes changes to one registry. Apply encodes and sends a
// command first and commits the new registry only when the send succeeded.
// Without an output, commands are committed but not sent.
type Editor struct {
	mu       sync.Mutex
	registry settings.Registry
	out      Sender
	log      logrus.FieldLogger
}

// New creates an editor starting from the initial registry. out may be nil.
func New(out Sender, log logrus.FieldLogger) *Editor {
	return &Editor{
		registry: settings.InitialRegistry(),
		out:      out,
		log:      log,
	}
}

// Output returns the current output, or nil
func (e *Editor) Output() Sender {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.out
}

// SetOutput replaces the output
func (e *Editor) SetOutput(out Sender) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.out = out
}

// Registry returns a snapshot of the current registry
func (e *Editor) Registry() settings.Registry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Clone()
}

// Apply sends c and records it as the selected value of its setting.
// It returns the bytes that were sent.
func (e *Editor) Apply(c settings.Command) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	data := settings.CommandData(c)
	fields := logrus.Fields{
		"option": c.Name(),
		"value":  c.Value(),
		"bytes":  settings.FormatHex(data),
	}

	if e.out != nil {
		if err := e.out.Send(data); err != nil {
			e.log.WithFields(fields).WithError(err).Warn("send failed")
			return nil, fmt.Errorf("failed to send %s=%s: %w", c.Name(), c.Value(), err)
		}
	} else {
		e.log.WithFields(fields).Debug("no output configured, not sent")
	}

	e.registry = settings.UpdateSetting(e.registry, c)
	e.log.WithFields(fields).Info("applied")
	return data, nil
}

// Set resolves option and value labels and applies the command.
func (e *Editor) Set(option, value string) (settings.Command, []byte, error) {
	c, err := e.Registry().Find(option, value)
	if err != nil {
		return nil, nil, err
	}
	data, err := e.Apply(c)
	if err != nil {
		return nil, nil, err
	}
	return c, data, nil
}

// Load applies cmds in order and stops at the first failure. It returns how
// many were applied.
func (e *Editor) Load(cmds []settings.Command) (int, error) {
	for i, c := range cmds {
		if _, err := e.Apply(c); err != nil {
			return i, err
		}
	}
	return len(cmds), nil
}

// Observe logs a message received from the device. Device state is not
// reconciled into the registry.
func (e *Editor) Observe(data []byte) {
	c, err := settings.Decode(data)
	if err != nil {
		e.log.WithField("bytes", settings.FormatHex(data)).Debug("ignored inbound message")
		return
	}
	e.log.WithFields(logrus.Fields{"option": c.Name(), "value": c.Value()}).Info("device reported setting")
}
