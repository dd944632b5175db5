package ui

import (
	"chessGA/game"

	"github.com/notnil/chess"
)

// BoardView keeps what the controller last told it to show. Draw reads it
// every frame; both run on the ebiten goroutine.
type BoardView struct {
	pos        *chess.Position
	highlights map[chess.Square]game.Highlight
	gameOver   string
}

func NewBoardView() *BoardView {
	return &BoardView{highlights: make(map[chess.Square]game.Highlight)}
}

func (v *BoardView) Render(pos *chess.Position) {
	v.pos = pos
}

func (v *BoardView) HighlightSquares(squares []chess.Square, kind game.Highlight) {
	for _, sq := range squares {
		v.highlights[sq] = kind
	}
}

func (v *BoardView) ClearHighlights() {
	for sq := range v.highlights {
		delete(v.highlights, sq)
	}
}

func (v *BoardView) ShowGameOver(outcome game.Outcome) {
	v.gameOver = outcome.String()
}

func (v *BoardView) reset() {
	v.gameOver = ""
	v.ClearHighlights()
}
