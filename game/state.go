package game

import (
	"errors"

	"github.com/notnil/chess"
)

var ErrGameOver = errors.New("game is over")

// State is the selection state of the board.
type State int

const (
	Idle State = iota
	Selected
)

func (s State) String() string {
	if s == Selected {
		return "selected"
	}
	return "idle"
}

// Outcome is the terminal sub-state of a game.
type Outcome int

const (
	InProgress Outcome = iota
	Checkmate
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "Checkmate!"
	case Stalemate:
		return "Stalemate!"
	}
	return "In progress"
}

// Highlight is the category a view paints a square with.
type Highlight int

const (
	HighlightSelected Highlight = iota
	HighlightQuiet
	HighlightCapture
	HighlightCheck
)

func (h Highlight) String() string {
	switch h {
	case HighlightSelected:
		return "selected"
	case HighlightQuiet:
		return "quiet"
	case HighlightCapture:
		return "capture"
	case HighlightCheck:
		return "check"
	}
	return "unknown"
}

// View is the board front end driven by a Controller. Clicks flow the
// other way, through Controller.SelectSquare.
type View interface {
	Render(pos *chess.Position)
	HighlightSquares(squares []chess.Square, kind Highlight)
	ClearHighlights()
	ShowGameOver(outcome Outcome)
}
