package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEventType is returned when a string does not name a known EventType.
var ErrInvalidEventType = errors.New("invalid event type")

// EventType is the closed set of race topics.
// It is used both as a coarse topic key and as the discriminant
// carried inside a GameStatesEvent.
type EventType int

const (
	EventCountdown EventType = iota
	EventStart
	EventRestart
	EventPause
	EventStop
	EventFinish
	EventQuit
)

var eventTypeNames = [...]string{
	EventCountdown: "COUNTDOWN",
	EventStart:     "START",
	EventRestart:   "RESTART",
	EventPause:     "PAUSE",
	EventStop:      "STOP",
	EventFinish:    "FINISH",
	EventQuit:      "QUIT",
}

// EventTypes returns every member of the topic set, in declaration order.
func EventTypes() []EventType {
	types := make([]EventType, len(eventTypeNames))
	for i := range eventTypeNames {
		types[i] = EventType(i)
	}
	return types
}

// Valid reports whether t is a member of the closed topic set.
func (t EventType) Valid() bool {
	return t >= 0 && int(t) < len(eventTypeNames)
}

func (t EventType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// ParseEventType parses a topic name (case-insensitive).
func ParseEventType(s string) (EventType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidEventType, s)
}

// GameStatesEvent is the payload of the structured channel.
// The bus routes it by type only; listeners switch on Type themselves.
type GameStatesEvent struct {
	Type EventType
}

// NewGameStatesEvent wraps t into a structured payload.
func NewGameStatesEvent(t EventType) GameStatesEvent {
	return GameStatesEvent{Type: t}
}
