package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger, closer := New(Options{Level: "debug", Format: "json", Output: "stdout"})
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	assert.Same(t, os.Stdout, logger.Out)
}

func TestNewInvalidLevel(t *testing.T) {
	logger, closer := New(Options{Level: "loud"})
	defer closer.Close()

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	assert.Same(t, os.Stderr, logger.Out)
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")

	logger, closer := New(Options{Level: "info", Output: path})
	logger.Info("planned")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "planned")
}

func TestDiscard(t *testing.T) {
	logger, hook := test.NewNullLogger()
	assert.Same(t, logger, OrDiscard(logger))
	assert.NotNil(t, OrDiscard(nil))

	OrDiscard(nil).Info("dropped")
	assert.Empty(t, hook.AllEntries())
}
