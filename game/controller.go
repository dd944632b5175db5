// Package game holds the turn, selection and game-over state machine that
// sits between a board view, the rules provider and the automated player.
package game

import (
	"context"
	"fmt"
	"log"

	"chessGA/bots"
	"chessGA/rules"

	"github.com/notnil/chess"
)

// Controller owns the board and all game state. It is driven from one
// goroutine: the one delivering clicks.
type Controller struct {
	// OnGameOver, when set, is called once when the game reaches a
	// terminal state. winner is chess.NoColor on stalemate.
	OnGameOver func(outcome Outcome, winner chess.Color)
	Logger     *log.Logger

	board    *rules.Board
	human    chess.Color
	bot      bots.ChessBot
	view     View
	selected chess.Square
	quiet    []chess.Square
	captures []chess.Square
	checked  chess.Square
	outcome  Outcome
}

// NewController sets up a game where the human plays human and bot plays
// the other side. A nil bot leaves both sides to clicks.
func NewController(board *rules.Board, human chess.Color, bot bots.ChessBot, view View) *Controller {
	return &Controller{
		Logger:   log.Default(),
		board:    board,
		human:    human,
		bot:      bot,
		view:     view,
		selected: chess.NoSquare,
		checked:  chess.NoSquare,
	}
}

func (c *Controller) Board() *rules.Board {
	return c.board
}

func (c *Controller) Human() chess.Color {
	return c.human
}

func (c *Controller) Bot() bots.ChessBot {
	return c.bot
}

func (c *Controller) Outcome() Outcome {
	return c.outcome
}

func (c *Controller) Turn() chess.Color {
	return c.board.Turn()
}

func (c *Controller) Selection() chess.Square {
	return c.selected
}

// CheckSquare is the king square of the side in check, or chess.NoSquare.
func (c *Controller) CheckSquare() chess.Square {
	return c.checked
}

func (c *Controller) State() State {
	if c.selected == chess.NoSquare {
		return Idle
	}
	return Selected
}

// Targets returns the legal destinations of the selected piece.
func (c *Controller) Targets() (quiet, captures []chess.Square) {
	return c.quiet, c.captures
}

// Winner is the side that delivered mate, chess.NoColor otherwise.
func (c *Controller) Winner() chess.Color {
	if c.outcome != Checkmate {
		return chess.NoColor
	}
	return c.board.Turn().Other()
}

// SetBot swaps the automated player. Call Resume afterwards so a bot
// whose side is already to move gets to play.
func (c *Controller) SetBot(bot bots.ChessBot) {
	c.bot = bot
}

// Resume lets the automated player move if it is its turn. Any selection
// is dropped first.
func (c *Controller) Resume(ctx context.Context) error {
	if c.outcome != InProgress || !c.automated(c.board.Turn()) {
		return nil
	}
	if c.selected != chess.NoSquare {
		c.Deselect()
	}
	return c.playAutomated(ctx)
}

// SetHuman changes the side the clicks play. Call it before Start or
// Reset.
func (c *Controller) SetHuman(side chess.Color) {
	c.human = side
}

func (c *Controller) automated(side chess.Color) bool {
	return c.bot != nil && side != c.human
}

// Start renders the position and, if the automated side is to move, lets
// it play.
func (c *Controller) Start(ctx context.Context) error {
	if c.outcome != InProgress {
		return ErrGameOver
	}
	c.view.Render(c.board.Position())
	c.refreshCheck()
	if c.finishIfOver() {
		return nil
	}
	return c.playAutomated(ctx)
}

// Reset replaces the board and starts a new game on it.
func (c *Controller) Reset(ctx context.Context, board *rules.Board) error {
	c.board = board
	c.outcome = InProgress
	c.selected = chess.NoSquare
	c.quiet, c.captures = nil, nil
	c.checked = chess.NoSquare
	return c.Start(ctx)
}

// SelectSquare handles a click on sq. The first click on a piece selects
// it; the second click tries the move and always returns to Idle. Illegal
// attempts are dropped without an error. A click while the automated side
// is to move (after a failed search, say) retries the search. The returned
// error is only set when the automated player fails.
func (c *Controller) SelectSquare(ctx context.Context, sq chess.Square) error {
	if c.outcome != InProgress {
		c.logf("game: ignoring %s, game over (%s)", sq, c.outcome)
		return nil
	}
	if c.automated(c.board.Turn()) {
		c.logf("game: %s to move, running %s", c.board.Turn(), c.bot.Name())
		return c.Resume(ctx)
	}
	if c.selected == chess.NoSquare {
		c.selectOrigin(sq)
		return nil
	}

	from := c.selected
	m, ok := c.board.Resolve(from, sq)
	c.Deselect()
	if !ok {
		if from != sq {
			c.logf("game: illegal move %s%s", from, sq)
		}
		return nil
	}
	if err := c.apply(m); err != nil {
		return err
	}
	if c.finishIfOver() {
		return nil
	}
	return c.playAutomated(ctx)
}

// Deselect drops the current selection, if any.
func (c *Controller) Deselect() {
	c.selected = chess.NoSquare
	c.quiet, c.captures = nil, nil
	c.paint()
}

func (c *Controller) selectOrigin(sq chess.Square) {
	if c.board.PieceAt(sq) == chess.NoPiece {
		return
	}
	c.selected = sq
	c.quiet, c.captures = nil, nil
	for _, m := range c.board.LegalMoves() {
		if m.From != sq || (m.Promo != chess.NoPieceType && m.Promo != chess.Queen) {
			continue
		}
		if c.board.IsCapture(m) {
			c.captures = append(c.captures, m.To)
		} else {
			c.quiet = append(c.quiet, m.To)
		}
	}
	c.paint()
}

func (c *Controller) apply(m rules.Move) error {
	if err := c.board.Push(m); err != nil {
		return fmt.Errorf("apply %s: %w", m, err)
	}
	c.logf("game: %s played %s", c.board.Turn().Other(), m)
	c.view.Render(c.board.Position())
	c.refreshCheck()
	return nil
}

func (c *Controller) refreshCheck() {
	c.checked = chess.NoSquare
	if c.board.IsCheck() {
		c.checked = c.board.KingSquare(c.board.Turn())
	}
	c.paint()
}

// paint redraws every highlight from the controller's state. The check
// highlight survives selection changes.
func (c *Controller) paint() {
	c.view.ClearHighlights()
	if c.checked != chess.NoSquare {
		c.view.HighlightSquares([]chess.Square{c.checked}, HighlightCheck)
	}
	if c.selected == chess.NoSquare {
		return
	}
	c.view.HighlightSquares([]chess.Square{c.selected}, HighlightSelected)
	if len(c.quiet) > 0 {
		c.view.HighlightSquares(c.quiet, HighlightQuiet)
	}
	if len(c.captures) > 0 {
		c.view.HighlightSquares(c.captures, HighlightCapture)
	}
}

func (c *Controller) finishIfOver() bool {
	switch {
	case c.board.IsCheckmate():
		c.outcome = Checkmate
	case c.board.IsStalemate():
		c.outcome = Stalemate
	default:
		return false
	}
	c.logf("game: %s, winner %s", c.outcome, c.Winner())
	c.view.ShowGameOver(c.outcome)
	if c.OnGameOver != nil {
		c.OnGameOver(c.outcome, c.Winner())
	}
	return true
}

// playAutomated runs the bot for the side to move, if that side is
// automated. Terminal positions never reach the bot.
func (c *Controller) playAutomated(ctx context.Context) error {
	if c.outcome != InProgress || !c.automated(c.board.Turn()) {
		return nil
	}
	m, err := c.bot.BestMove(ctx, c.board)
	if err != nil {
		return fmt.Errorf("%s: %w", c.bot.Name(), err)
	}
	if err := c.apply(m); err != nil {
		return fmt.Errorf("%s: %w", c.bot.Name(), err)
	}
	c.finishIfOver()
	return nil
}

func (c *Controller) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
