// Package midiport finds, opens and talks to MIDI ports through gomidi.
// A driver must be registered by the importing program, e.g.
//
//	import _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
package midiport

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var (
	ErrNoPorts    = errors.New("no MIDI ports available")
	ErrNoMatch    = errors.New("no matching MIDI port")
	ErrPortClosed = errors.New("port closed")
)

// Port is an enumerated MIDI port.
type Port struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Ports is a snapshot of the available ports.
type Ports struct {
	Outputs []Port `json:"outputs"`
	Inputs  []Port `json:"inputs"`
}

// List enumerates ports. Some platform MIDI services can hang while
// enumerating, so the call gives up when ctx is done.
func List(ctx context.Context) (Ports, error) {
	ch := make(chan Ports, 1)
	go func() {
		var p Ports
		for _, out := range midi.GetOutPorts() {
			p.Outputs = append(p.Outputs, Port{Number: out.Number(), Name: out.String()})
		}
		for _, in := range midi.GetInPorts() {
			p.Inputs = append(p.Inputs, Port{Number: in.Number(), Name: in.String()})
		}
		ch <- p
	}()

	select {
	case p := <-ch:
		return p, nil
	case <-ctx.Done():
		return Ports{}, fmt.Errorf("listing MIDI ports: %w", ctx.Err())
	}
}

// Match returns the first port whose name contains fragment, ignoring case.
// A fragment that parses as an integer selects the port with that number.
func Match(ports []Port, fragment string) (Port, error) {
	if len(ports) == 0 {
		return Port{}, ErrNoPorts
	}
	if n, err := strconv.Atoi(strings.TrimSpace(fragment)); err == nil {
		for _, p := range ports {
			if p.Number == n {
				return p, nil
			}
		}
		return Port{}, fmt.Errorf("%w: number %d", ErrNoMatch, n)
	}

	lower := strings.ToLower(fragment)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			return p, nil
		}
	}
	return Port{}, fmt.Errorf("%w: %q", ErrNoMatch, fragment)
}

// Output is an open MIDI output port.
type Output struct {
	mu   sync.Mutex
	name string
	out  drivers.Out
	log  logrus.FieldLogger
}

// OpenOutput opens the output port matching fragment.
func OpenOutput(ctx context.Context, fragment string, log logrus.FieldLogger) (*Output, error) {
	ports, err := List(ctx)
	if err != nil {
		return nil, err
	}
	p, err := Match(ports.Outputs, fragment)
	if err != nil {
		return nil, err
	}

	out, err := midi.OutPort(p.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to get output %q: %w", p.Name, err)
	}
	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("failed to open output %q: %w", p.Name, err)
	}

	log.WithField("port", p.Name).Info("opened MIDI output")
	return &Output{name: p.Name, out: out, log: log}, nil
}

// Name returns the port name.
func (o *Output) Name() string {
	return o.name
}

// Send transmits raw bytes.
func (o *Output) Send(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.out == nil {
		return ErrPortClosed
	}
	if !o.out.IsOpen() {
		if err := o.out.Open(); err != nil {
			return err
		}
	}
	if err := o.out.Send(data); err != nil {
		return fmt.Errorf("failed to send to %q: %w", o.name, err)
	}
	o.log.WithFields(logrus.Fields{"port": o.name, "bytes": fmt.Sprintf("% X", data)}).Debug("sent")
	return nil
}

// Close closes the port.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.out == nil {
		return nil
	}
	err := o.out.Close()
	o.out = nil
	return err
}

// Listen delivers every message, SysEx included, received on the input port
// matching fragment. The returned function stops listening.
func Listen(ctx context.Context, fragment string, fn func(data []byte)) (stop func(), err error) {
	ports, err := List(ctx)
	if err != nil {
		return nil, err
	}
	p, err := Match(ports.Inputs, fragment)
	if err != nil {
		return nil, err
	}

	in, err := midi.InPort(p.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to get input %q: %w", p.Name, err)
	}

	stop, err = midi.ListenTo(in, func(msg midi.Message, _ int32) {
		fn(msg.Bytes())
	}, midi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %q: %w", p.Name, err)
	}
	return stop, nil
}

// CloseDriver releases the registered driver.
func CloseDriver() {
	midi.CloseDriver()
}
