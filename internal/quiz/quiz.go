package quiz

import "github.com/litescript/skychart/internal/annotate"

// CompletedMessage is shown once every constellation has been answered.
const CompletedMessage = "You have completed the quiz!"

// Quiz walks through a fixed sequence of constellations.
type Quiz struct {
	items []Constellation
	index int
	last  Hint
	tried bool
}

// New starts a quiz over items.
func New(items []Constellation) *Quiz {
	return &Quiz{items: append([]Constellation(nil), items...)}
}

// Len is the number of constellations in the quiz.
func (q *Quiz) Len() int { return len(q.items) }

// Index is the position of the current constellation.
func (q *Quiz) Index() int { return q.index }

// Done reports whether every constellation has been answered.
func (q *Quiz) Done() bool { return q.index >= len(q.items) }

// Current returns the constellation being asked, if any remain.
func (q *Quiz) Current() (Constellation, bool) {
	if q.Done() {
		return Constellation{}, false
	}
	return q.items[q.index], true
}

// Check diagnoses the drawing against the current constellation. It
// reports false once the quiz is done.
func (q *Quiz) Check(curV map[string]struct{}, curE map[annotate.Line]struct{}) (Hint, bool) {
	c, ok := q.Current()
	if !ok {
		return Hint{}, false
	}
	q.last = c.Diagnose(curV, curE)
	q.tried = true
	return q.last, true
}

// LastHint returns the most recent hint for the current constellation.
func (q *Quiz) LastHint() (Hint, bool) {
	return q.last, q.tried
}

// Advance moves to the next constellation. It only moves after a correct
// answer and reports whether it did.
func (q *Quiz) Advance() bool {
	if q.Done() || !q.tried || !q.last.Correct() {
		return false
	}
	q.index++
	q.last, q.tried = Hint{}, false
	return true
}

// Skip moves to the next constellation regardless of the answer.
func (q *Quiz) Skip() {
	if q.Done() {
		return
	}
	q.index++
	q.last, q.tried = Hint{}, false
}

// Reset restarts from the first constellation.
func (q *Quiz) Reset() {
	q.index = 0
	q.last, q.tried = Hint{}, false
}

// Status is a one-line summary for the status bar.
func (q *Quiz) Status() string {
	if q.Done() {
		return CompletedMessage
	}
	if h, ok := q.LastHint(); ok {
		return h.String()
	}
	c, _ := q.Current()
	return "draw " + c.Name
}
