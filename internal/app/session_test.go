package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-translate/internal/config"
	"live-translate/pkg/geometry"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	return NewSession(path, config.Default())
}

func TestSetRegionPersistsAndEmits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewSession(path, config.Default())

	var got geometry.RectInt
	s.On(EventRegionChanged, func(data interface{}) {
		got = data.(geometry.RectInt)
	})

	want := geometry.RectInt{Left: 10, Top: 20, Right: 30, Bottom: 40}
	require.NoError(t, s.SetRegion(want))

	assert.Equal(t, want, got)
	assert.Equal(t, want, s.Region())

	// The file on disk reflects the change immediately.
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, cfg.CaptureRect)
}

func TestTogglePauseFlipsAndEmits(t *testing.T) {
	s := newTestSession(t)

	var states []bool
	s.On(EventPauseToggled, func(data interface{}) {
		states = append(states, data.(bool))
	})

	assert.True(t, s.TogglePause())
	assert.True(t, s.Paused())
	assert.False(t, s.TogglePause())
	assert.False(t, s.Paused())
	assert.Equal(t, []bool{true, false}, states)
}

func TestPublishLinesSkipsEmptyBatches(t *testing.T) {
	s := newTestSession(t)

	calls := 0
	s.On(EventLinesReady, func(data interface{}) { calls++ })

	s.PublishLines(nil)
	s.PublishLines([]string{})
	assert.Zero(t, calls)

	s.PublishLines([]string{"[EN] hi"})
	assert.Equal(t, 1, calls)
}

func TestEmitReachesAllListeners(t *testing.T) {
	s := newTestSession(t)

	a, b := 0, 0
	s.On(EventClearRequested, func(interface{}) { a++ })
	s.On(EventClearRequested, func(interface{}) { b++ })

	s.RequestClear()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
