package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", "json")
	require.NoError(t, err)

	log.WithField("option", "Sync").Debug("applied")
	assert.Contains(t, buf.String(), `"option":"Sync"`)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bruteconfig.log")
	log, closeFn, err := Open(path, "info", "text")
	require.NoError(t, err)
	log.Info("hello")
	assert.NoError(t, closeFn())
	assert.FileExists(t, path)
}
