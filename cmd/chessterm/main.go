package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"chessGA/config"
	"chessGA/game"
	"chessGA/storage"

	"github.com/dustinkirkland/golang-petname"
	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
)

func initLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}

// fatal reports err on stderr as well, since the log goes to a file.
func fatal(err error) {
	log.Print(err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	settings := config.Register(flag.CommandLine)
	flag.Parse()
	if settings.LogPath == "" {
		settings.LogPath = "./chessterm.log"
	}
	initLog(settings.LogPath, "CHESSTERM: ")

	var store *storage.Storage
	dir := settings.DataDir
	if dir == "" {
		dir, _ = storage.DataDir()
	}
	if dir != "" {
		s, err := storage.Open(dir)
		if err != nil {
			log.Printf("preferences disabled: %v", err)
		} else {
			store = s
			defer store.Close()
			if err := settings.Sync(flag.CommandLine, store); err != nil {
				fatal(err)
			}
		}
	}

	if err := settings.Validate(); err != nil {
		fatal(err)
	}
	human, _ := settings.Human()
	board, err := settings.NewBoard()
	if err != nil {
		fatal(err)
	}
	bot, err := settings.NewBot()
	if err != nil {
		fatal(err)
	}

	opponent := "nobody"
	if bot != nil {
		opponent = petname.Generate(2, "-") + " (" + bot.Name() + ")"
	}
	log.Printf("New game against %s", opponent)

	view := NewTermView(human == chess.Black)
	ctrl := game.NewController(board, human, bot, view)
	ctx := context.Background()

	showTurn := func() {
		if ctrl.Outcome() != game.InProgress {
			view.SetStatus("[red]%s[-]  Esc quits", ctrl.Outcome())
			return
		}
		view.SetStatus("vs %s\n%s to move  (Enter selects, Esc quits)", opponent, ctrl.Turn().Name())
	}

	ctrl.OnGameOver = func(outcome game.Outcome, winner chess.Color) {
		if store == nil {
			return
		}
		name := "none"
		if ctrl.Bot() != nil {
			name = ctrl.Bot().Name()
		}
		if err := store.RecordResult(storage.Result{Won: winner == human, Draw: winner == chess.NoColor, Bot: name}); err != nil {
			log.Printf("recording result: %v", err)
		}
	}

	view.Board.SetSelectedFunc(func(row, col int) {
		sq, ok := view.posToSquare(row, col)
		if !ok {
			return
		}
		if err := ctrl.SelectSquare(ctx, sq); err != nil {
			log.Printf("bot move error: %v", err)
		}
		showTurn()
	}).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			view.App.Stop()
		}
	})

	if err := ctrl.Start(ctx); err != nil {
		fatal(err)
	}
	showTurn()
	view.Board.Select(0, 1)

	if err := view.App.SetRoot(view.Pages, true).EnableMouse(true).Run(); err != nil {
		fatal(err)
	}
}
