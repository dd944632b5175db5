package main

import (
	"fmt"

	"chessGA/game"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"
)

const (
	numrows = 8
	numcols = 8
)

var (
	squareLight = tcell.NewRGBColor(240, 217, 181)
	squareDark  = tcell.NewRGBColor(181, 136, 99)

	highlightColors = map[game.Highlight]tcell.Color{
		game.HighlightSelected: tcell.ColorYellow,
		game.HighlightQuiet:    tcell.ColorLightGreen,
		game.HighlightCapture:  tcell.ColorPink,
		game.HighlightCheck:    tcell.ColorRed,
	}
)

// TermView draws the board into a tview.Table. All methods run on the
// tview event goroutine.
type TermView struct {
	App        *tview.Application
	Pages      *tview.Pages
	Board      *tview.Table
	Status     *tview.TextView
	flipped    bool
	pos        *chess.Position
	highlights map[chess.Square]game.Highlight
}

func NewTermView(flipped bool) *TermView {
	v := &TermView{
		App:        tview.NewApplication(),
		Pages:      tview.NewPages(),
		Board:      tview.NewTable(),
		Status:     tview.NewTextView().SetDynamicColors(true),
		flipped:    flipped,
		highlights: make(map[chess.Square]game.Highlight),
	}
	v.Board.SetSelectable(true, true)

	layout := tview.NewGrid().
		SetRows(-1, numrows+1, 3, -1).
		SetColumns(-1, 3*(numcols+1), -1).
		AddItem(v.Board, 1, 1, 1, 1, 0, 0, true).
		AddItem(v.Status, 2, 1, 1, 1, 0, 0, false)
	v.Pages.AddPage("board", layout, true, true)
	return v
}

// posToSquare converts a table cell to a square; column 0 and the last row
// hold the coordinates.
func (v *TermView) posToSquare(row, col int) (chess.Square, bool) {
	if row >= numrows || col == 0 {
		return chess.NoSquare, false
	}
	file, rank := col-1, numrows-row-1
	if v.flipped {
		file, rank = 7-file, 7-rank
	}
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), true
}

func (v *TermView) squareToPos(sq chess.Square) (row, col int) {
	file, rank := int(sq.File()), int(sq.Rank())
	if v.flipped {
		file, rank = 7-file, 7-rank
	}
	return numrows - rank - 1, file + 1
}

func (v *TermView) Render(pos *chess.Position) {
	v.pos = pos
	v.redraw()
}

func (v *TermView) HighlightSquares(squares []chess.Square, kind game.Highlight) {
	for _, sq := range squares {
		v.highlights[sq] = kind
	}
	v.redraw()
}

func (v *TermView) ClearHighlights() {
	for sq := range v.highlights {
		delete(v.highlights, sq)
	}
	v.redraw()
}

func (v *TermView) ShowGameOver(outcome game.Outcome) {
	modal := tview.NewModal().
		SetText(outcome.String()).
		AddButtons([]string{"OK", "Quit"}).
		SetDoneFunc(func(_ int, label string) {
			if label == "Quit" {
				v.App.Stop()
				return
			}
			v.Pages.RemovePage("gameover")
		})
	v.Pages.AddPage("gameover", modal, false, true)
}

func (v *TermView) SetStatus(format string, args ...interface{}) {
	v.Status.SetText(fmt.Sprintf(format, args...))
}

func (v *TermView) squareColor(sq chess.Square) tcell.Color {
	if kind, ok := v.highlights[sq]; ok {
		return highlightColors[kind]
	}
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return squareDark
	}
	return squareLight
}

func (v *TermView) redraw() {
	for i := 0; i < numrows; i++ {
		rank := chess.Rank(numrows - i - 1)
		file := chess.File(i)
		if v.flipped {
			rank, file = chess.Rank(i), chess.File(numcols-i-1)
		}
		v.Board.SetCell(i, 0, tview.NewTableCell(rank.String()).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
		v.Board.SetCell(numrows, i+1, tview.NewTableCell(" "+file.String()).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
	v.Board.SetCell(numrows, 0, tview.NewTableCell("").SetSelectable(false))

	for sq := chess.A1; sq <= chess.H8; sq++ {
		text := "   "
		fg := tcell.ColorBlack
		if v.pos != nil {
			if p := v.pos.Board().Piece(sq); p != chess.NoPiece {
				text = " " + p.String() + " "
				if p.Color() == chess.White {
					fg = tcell.ColorWhite
				}
			}
		}
		row, col := v.squareToPos(sq)
		v.Board.SetCell(row, col, tview.NewTableCell(text).
			SetAlign(tview.AlignCenter).
			SetTextColor(fg).
			SetBackgroundColor(v.squareColor(sq)))
	}
}
