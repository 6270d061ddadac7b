package state

import "time"

// EventType represents the kind of session event.
type EventType string

const (
	EventSaved        EventType = "SAVED"
	EventLoaded       EventType = "LOADED"
	EventLocation     EventType = "LOCATION"
	EventTickFailed   EventType = "TICK_FAILED"
	EventQuizStarted  EventType = "QUIZ_STARTED"
	EventQuizHint     EventType = "QUIZ_HINT"
	EventQuizCorrect  EventType = "QUIZ_CORRECT"
	EventQuizComplete EventType = "QUIZ_COMPLETE"
)

// Event is a notable change, shown in the status bar.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Detail    string
}

// eventLog is a fixed-size ring buffer of events.
type eventLog struct {
	events  []Event
	max     int
	writeAt int
}

func newEventLog(max int) eventLog {
	if max <= 0 {
		max = 50
	}
	return eventLog{events: make([]Event, 0, max), max: max}
}

func (l *eventLog) add(e Event) {
	if len(l.events) < l.max {
		l.events = append(l.events, e)
	} else {
		l.events[l.writeAt] = e
		l.writeAt = (l.writeAt + 1) % l.max
	}
}

// ordered returns events in chronological order.
func (l *eventLog) ordered() []Event {
	if len(l.events) == 0 {
		return nil
	}

	if len(l.events) < l.max {
		result := make([]Event, len(l.events))
		copy(result, l.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, l.max)
	for i := 0; i < l.max; i++ {
		result[i] = l.events[(l.writeAt+i)%l.max]
	}
	return result
}

// recent returns the last n events.
func (l *eventLog) recent(n int) []Event {
	all := l.ordered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
