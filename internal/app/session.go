// Package app provides session state, events, and application lifecycle.
package app

import (
	"sync"

	"live-translate/internal/config"
	"live-translate/pkg/geometry"
)

// EventType identifies session events.
type EventType int

const (
	// EventRegionChanged fires after the capture region is mutated and
	// persisted. Data: geometry.RectInt.
	EventRegionChanged EventType = iota
	// EventPauseToggled fires when the paused flag flips. Data: bool (new state).
	EventPauseToggled
	// EventClearRequested fires when the user asks to empty the log. Data: nil.
	EventClearRequested
	// EventLinesReady fires when the pipeline has a batch of display
	// strings. Data: []string.
	EventLinesReady
	// EventStatus carries a transient status message. Data: string.
	EventStatus
)

// EventListener receives event data.
type EventListener func(data interface{})

// Session owns the mutable state shared between the UI and the polling
// pipeline: the capture region (persisted on every change), the paused
// flag, and the event fan-out that keeps the two sides decoupled.
//
// The pipeline goroutine and the UI thread both touch this, hence the lock.
type Session struct {
	mu         sync.RWMutex
	configPath string
	region     geometry.RectInt
	paused     bool
	listeners  map[EventType][]EventListener
}

// NewSession creates a session from a loaded config.
func NewSession(configPath string, cfg config.Config) *Session {
	return &Session{
		configPath: configPath,
		region:     cfg.CaptureRect,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers a listener for an event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit notifies all listeners registered for event. Listeners run on the
// emitting goroutine, outside the session lock.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := make([]EventListener, len(s.listeners[event]))
	copy(listeners, s.listeners[event])
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Region returns the current capture rectangle.
func (s *Session) Region() geometry.RectInt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.region
}

// SetRegion replaces the capture rectangle, writes it to the config file
// synchronously, and emits EventRegionChanged. The save error is returned
// but the in-memory region is updated regardless.
func (s *Session) SetRegion(r geometry.RectInt) error {
	s.mu.Lock()
	s.region = r
	path := s.configPath
	s.mu.Unlock()

	err := config.Save(path, config.Config{CaptureRect: r})
	s.Emit(EventRegionChanged, r)
	return err
}

// Paused reports whether the pipeline should skip cycles.
func (s *Session) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// TogglePause flips the paused flag, emits EventPauseToggled, and returns
// the new state.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	s.paused = !s.paused
	paused := s.paused
	s.mu.Unlock()

	s.Emit(EventPauseToggled, paused)
	return paused
}

// RequestClear asks the display to empty the log.
func (s *Session) RequestClear() {
	s.Emit(EventClearRequested, nil)
}

// PublishLines hands a batch of display strings to whoever renders them.
func (s *Session) PublishLines(lines []string) {
	if len(lines) == 0 {
		return
	}
	s.Emit(EventLinesReady, lines)
}

// SetStatus broadcasts a transient status message.
func (s *Session) SetStatus(msg string) {
	s.Emit(EventStatus, msg)
}
