package state

import (
	"github.com/litescript/skychart/internal/clock"
	"github.com/litescript/skychart/internal/viewport"
)

// Command is a user intent applied with Session.Dispatch. The set is closed:
// only the types in this file implement it.
type Command interface {
	command()
}

// Zoom changes the scale by Delta.
type Zoom struct{ Delta int }

// Pan moves the window by (DX, DY) if the result is legal.
type Pan struct{ DX, DY int }

// SelectStar feeds a star to the drawing state machine.
type SelectStar struct{ Name string }

// Erase removes the line under a screen point.
type Erase struct{ At viewport.Point }

// Undo reverts the last drawing action.
type Undo struct{}

// Redo re-applies the last undone action.
type Redo struct{}

// Clear empties the drawing and its history.
type Clear struct{}

// SetMode changes how the observer clock runs.
type SetMode struct{ Mode clock.Mode }

// ToggleErase switches between drawing and erasing.
type ToggleErase struct{}

// CancelPending drops a half-drawn line.
type CancelPending struct{}

// ClickAt routes a click to SelectStar or Erase depending on the mode.
type ClickAt struct{ At viewport.Point }

// MovePointer records the pointer position for the pending line's end.
type MovePointer struct{ At viewport.Point }

// SetLocation moves the observer to a named site.
type SetLocation struct{ Name string }

// CenterView re-centres the window on the zenith.
type CenterView struct{}

// Resize sets the window size.
type Resize struct{ Width, Height int }

// StartQuiz begins the quiz from the first constellation.
type StartQuiz struct{}

// CheckQuiz asks for a hint on the current drawing.
type CheckQuiz struct{}

// NextQuiz moves on after a correct answer.
type NextQuiz struct{}

// SkipQuiz moves on without a correct answer.
type SkipQuiz struct{}

// RestartQuiz goes back to the first constellation.
type RestartQuiz struct{}

// StopQuiz leaves the quiz.
type StopQuiz struct{}

func (Zoom) command()          {}
func (Pan) command()           {}
func (SelectStar) command()    {}
func (Erase) command()         {}
func (Undo) command()          {}
func (Redo) command()          {}
func (Clear) command()         {}
func (SetMode) command()       {}
func (ToggleErase) command()   {}
func (CancelPending) command() {}
func (ClickAt) command()       {}
func (MovePointer) command()   {}
func (SetLocation) command()   {}
func (CenterView) command()    {}
func (Resize) command()        {}
func (StartQuiz) command()     {}
func (CheckQuiz) command()     {}
func (NextQuiz) command()      {}
func (SkipQuiz) command()      {}
func (RestartQuiz) command()   {}
func (StopQuiz) command()      {}
