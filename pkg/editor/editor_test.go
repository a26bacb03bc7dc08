package editor

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-see/bruteconfig/pkg/logging"
	"github.com/james-see/bruteconfig/pkg/settings"
)

// recorder implements Sender for testing
type recorder struct {
	mu   sync.Mutex
	sent [][]byte
	err  error
}

func (r *recorder) Send(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, append([]byte(nil), data...))
	return nil
}

func TestApplySendsAndCommits(t *testing.T) {
	out := &recorder{}
	e := New(out, logging.Discard())

	data, err := e.Apply(settings.NotePriorityHigh)
	require.NoError(t, err)

	want := []byte{0xF0, 0x00, 0x20, 0x6B, 0x05, 0x01, 0x00, 0x0B, 0x02, 0xF7}
	assert.Equal(t, want, data)
	assert.Equal(t, [][]byte{want}, out.sent)
	assert.Equal(t, []settings.Command{settings.NotePriorityHigh}, e.Registry().Selected())
}

func TestApplySendFailureDoesNotCommit(t *testing.T) {
	out := &recorder{err: errors.New("unplugged")}
	e := New(out, logging.Discard())

	_, err := e.Apply(settings.SyncExternal)
	assert.Error(t, err)
	assert.Empty(t, e.Registry().Selected())
}

func TestApplyWithoutOutput(t *testing.T) {
	e := New(nil, logging.Discard())

	data, err := e.Apply(settings.LocalControlOff)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xB0, 0x7A, 0x00}, data)
	assert.Equal(t, []settings.Command{settings.LocalControlOff}, e.Registry().Selected())
}

func TestSet(t *testing.T) {
	out := &recorder{}
	e := New(out, logging.Discard())

	c, data, err := e.Set("bend-range", "7")
	require.NoError(t, err)
	assert.Equal(t, settings.BendRangeOf(7), c)
	assert.Equal(t, byte(7), data[8])

	_, _, err = e.Set("bend-range", "40")
	assert.ErrorIs(t, err, settings.ErrUnknownValue)
	assert.Len(t, out.sent, 1)
}

func TestRegistrySnapshotIsIsolated(t *testing.T) {
	e := New(nil, logging.Discard())
	snap := e.Registry()
	snap[0].Settings[0].Selected = settings.NotePriorityLow

	assert.Empty(t, e.Registry().Selected())
}

func TestSetOutput(t *testing.T) {
	e := New(nil, logging.Discard())
	assert.Nil(t, e.Output())

	out := &recorder{}
	e.SetOutput(out)
	_, err := e.Apply(settings.GateMedium)
	require.NoError(t, err)
	assert.Len(t, out.sent, 1)
}

func TestConcurrentApply(t *testing.T) {
	out := &recorder{}
	e := New(out, logging.Discard())

	cmds := e.Registry().Commands()
	var wg sync.WaitGroup
	for _, c := range cmds {
		wg.Add(1)
		go func(c settings.Command) {
			defer wg.Done()
			_, _ = e.Apply(c)
		}(c)
	}
	wg.Wait()

	assert.Len(t, out.sent, len(cmds))
	assert.Len(t, e.Registry().Selected(), len(e.Registry().Settings()))
	assert.NoError(t, settings.Validate(e.Registry()))
}

func TestObserveLogsDecodedSetting(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "debug", "text")
	require.NoError(t, err)

	e := New(nil, log)
	e.Observe(settings.CommandData(settings.StepClock))
	e.Observe([]byte{0x90, 0x3C, 0x64})

	assert.Contains(t, buf.String(), "device reported setting")
	assert.Contains(t, buf.String(), "ignored inbound message")
	assert.Empty(t, e.Registry().Selected())
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestLoad(t *testing.T) {
	out := &recorder{}
	e := New(out, logging.Discard())

	cmds := []settings.Command{settings.PlayNoteOn, settings.ReceiveOn(3), settings.PlayHold}
	n, err := e.Load(cmds)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, out.sent, 3)
	assert.Equal(t, []settings.Command{settings.PlayHold, settings.ReceiveOn(3)}, e.Registry().Selected())

	out.err = errors.New("unplugged")
	n, err = e.Load(cmds)
	assert.Error(t, err)
	assert.Zero(t, n)
}
