package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := New(Config{Level: "debug", Format: format})
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestFieldsReachZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromCore(core).Named("server").With(String("request_id", "abc"))
	l.Info("parsed",
		Int("atoms", 3),
		Float64("mass", 18.015),
		Bool("compressed", false),
		Duration("took", time.Millisecond),
		Err(errors.New("boom")),
		Any("ops", []string{"addition"}),
	)
	l.Debug("detail")
	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "server", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "abc", fields["request_id"])
	assert.Equal(t, int64(3), fields["atoms"])
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestNop(t *testing.T) {
	l := Nop().With(Int("a", 1)).Named("x")
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}

func TestSetLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := New(Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)
	child := l.Named("child")
	child.Info("hidden")
	require.NoError(t, l.SetLevel("debug"))
	child.Debug("shown")
	assert.Error(t, l.SetLevel("loud"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")

	core, _ := observer.New(zapcore.InfoLevel)
	assert.Error(t, FromCore(core).SetLevel("debug"))
	assert.NoError(t, Nop().SetLevel("debug"))
}
