package main

import (
	"context"
	"testing"

	"chessGA/bots"
	"chessGA/game"
	"chessGA/rules"

	"github.com/notnil/chess"
)

func TestPlayGameStopsAtPlyLimit(t *testing.T) {
	board := rules.NewBoard()
	white := bots.NewRandomBot(bots.NewRand(1))
	black := bots.NewRandomBot(bots.NewRand(2))

	rec, err := playGame(context.Background(), board, white, black, 6)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Plies > 6 || len(rec.Moves) != rec.Plies {
		t.Fatalf("plies=%d moves=%d", rec.Plies, len(rec.Moves))
	}
	if board.Depth() != rec.Plies {
		t.Errorf("board depth %d, want %d", board.Depth(), rec.Plies)
	}
}

func TestPlayGameCheckmate(t *testing.T) {
	// Black to move is already mated.
	board, err := rules.FromFEN("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := playGame(context.Background(), board, bots.NewNewbornBot(), bots.NewNewbornBot(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Outcome != game.Checkmate || rec.Winner != chess.White || rec.Plies != 0 {
		t.Fatalf("got %+v", rec)
	}
}

func TestTally(t *testing.T) {
	var tally Tally
	tally.Add(Record{Outcome: game.Checkmate, Winner: chess.White}, chess.White)
	tally.Add(Record{Outcome: game.Checkmate, Winner: chess.Black}, chess.White)
	tally.Add(Record{Outcome: game.Stalemate, Winner: chess.NoColor}, chess.White)
	if tally.Wins != 1 || tally.Losses != 1 || tally.Draws != 1 {
		t.Fatalf("got %+v", tally)
	}
	if tally.Score() != 1.5 {
		t.Errorf("score %v, want 1.5", tally.Score())
	}
}

// cancelBot cancels the match from inside its first search.
type cancelBot struct {
	cancel context.CancelFunc
	calls  int
}

func (b *cancelBot) BestMove(ctx context.Context, pos bots.Position) (rules.Move, error) {
	b.calls++
	b.cancel()
	return pos.LegalMoves()[0], nil
}

func (b *cancelBot) Name() string { return "cancel" }

func TestPlayGameAbortsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bot := &cancelBot{cancel: cancel}
	board := rules.NewBoard()

	rec, err := playGame(ctx, board, bot, bot, 50)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Aborted || rec.Plies != 0 || board.Depth() != 0 {
		t.Fatalf("aborted %v plies %d depth %d", rec.Aborted, rec.Plies, board.Depth())
	}
	if bot.calls != 1 {
		t.Errorf("bot searched %d times after cancel", bot.calls)
	}
	if rec.Outcome != game.InProgress {
		t.Errorf("outcome = %s", rec.Outcome)
	}
}
