package main

import (
	"context"
	"fmt"
	"log"

	"chessGA/bots"
	"chessGA/game"
	"chessGA/rules"

	"github.com/notnil/chess"
)

// Record is the result of one self-play game.
type Record struct {
	Outcome game.Outcome
	Winner  chess.Color
	Plies   int
	Moves   []rules.Move
	Final   *chess.Position
	// Aborted is set when ctx was cancelled before the game ended.
	Aborted bool
}

// Draw is true for stalemates and games cut off at the ply limit.
func (r Record) Draw() bool {
	return r.Winner == chess.NoColor
}

func (r Record) String() string {
	switch {
	case r.Aborted:
		return fmt.Sprintf("aborted after %d plies", r.Plies)
	case r.Outcome == game.InProgress:
		return fmt.Sprintf("unfinished after %d plies", r.Plies)
	case r.Draw():
		return fmt.Sprintf("%s after %d plies", r.Outcome, r.Plies)
	}
	return fmt.Sprintf("%s %s wins after %d plies", r.Outcome, r.Winner.Name(), r.Plies)
}

// playGame lets white and black move in turn until the game ends or
// maxPlies moves have been made. Cancelling ctx aborts the game; the move
// a cancelled search returns is not played.
func playGame(ctx context.Context, board *rules.Board, white, black bots.ChessBot, maxPlies int) (Record, error) {
	rec := Record{Winner: chess.NoColor}
	for rec.Plies < maxPlies {
		switch {
		case board.IsCheckmate():
			rec.Outcome = game.Checkmate
			rec.Winner = board.Turn().Other()
		case board.IsStalemate():
			rec.Outcome = game.Stalemate
		}
		if rec.Outcome != game.InProgress {
			break
		}

		if ctx.Err() != nil {
			rec.Aborted = true
			break
		}

		bot := white
		if board.Turn() == chess.Black {
			bot = black
		}
		m, err := bot.BestMove(ctx, board)
		if ctx.Err() != nil {
			rec.Aborted = true
			break
		}
		if err != nil {
			return rec, fmt.Errorf("%s (%s): %w", bot.Name(), board.Turn().Name(), err)
		}
		if err := board.Push(m); err != nil {
			return rec, err
		}
		log.Printf("%d. %s %s", rec.Plies/2+1, bot.Name(), m)
		rec.Moves = append(rec.Moves, m)
		rec.Plies++
	}
	if rec.Outcome == game.InProgress && !rec.Aborted {
		switch {
		case board.IsCheckmate():
			rec.Outcome = game.Checkmate
			rec.Winner = board.Turn().Other()
		case board.IsStalemate():
			rec.Outcome = game.Stalemate
		}
	}
	rec.Final = board.Position()
	return rec, nil
}

// Tally sums a series of games from the first bot's point of view.
type Tally struct {
	Wins, Losses, Draws int
}

func (t *Tally) Add(rec Record, side chess.Color) {
	switch {
	case rec.Draw():
		t.Draws++
	case rec.Winner == side:
		t.Wins++
	default:
		t.Losses++
	}
}

// Score counts a win as one point and a draw as half.
func (t Tally) Score() float64 {
	return float64(t.Wins) + float64(t.Draws)/2
}
