package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"chessGA/bots"
	"chessGA/config"
	"chessGA/game"
	"chessGA/storage"
	"chessGA/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
)

func openStorage(dir string) (*storage.Storage, error) {
	if dir == "" {
		var err error
		if dir, err = storage.DataDir(); err != nil {
			return nil, err
		}
	}
	return storage.Open(dir)
}

func main() {
	settings := config.Register(flag.CommandLine)
	flag.Parse()

	if settings.LogPath != "" {
		f, err := os.OpenFile(settings.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	store, err := openStorage(settings.DataDir)
	if err != nil {
		log.Printf("Warning: preferences disabled: %v", err)
	} else {
		defer store.Close()
		if err := settings.Sync(flag.CommandLine, store); err != nil {
			log.Fatal(err)
		}
	}
	if err := settings.Validate(); err != nil {
		log.Fatal(err)
	}
	human, _ := settings.Human()
	board, err := settings.NewBoard()
	if err != nil {
		log.Fatal(err)
	}
	bot, err := settings.NewBot()
	if err != nil {
		log.Fatal(err)
	}

	// opponents the B key cycles through
	choices := []bots.ChessBot{}
	for _, name := range bots.Names() {
		if bot != nil && name == settings.Bot {
			choices = append(choices, bot)
			continue
		}
		b, err := bots.New(name, settings.Params, bots.NewRand(settings.Seed))
		if err != nil {
			log.Fatal(err)
		}
		choices = append(choices, b)
	}

	view := ui.NewBoardView()
	ctrl := game.NewController(board, human, bot, view)
	if store != nil {
		ctrl.OnGameOver = func(outcome game.Outcome, winner chess.Color) {
			name := "none"
			if ctrl.Bot() != nil {
				name = ctrl.Bot().Name()
			}
			result := storage.Result{Won: winner == ctrl.Human(), Draw: winner == chess.NoColor, Bot: name}
			if err := store.RecordResult(result); err != nil {
				log.Printf("Warning: recording result: %v", err)
			}
		}
	}

	app := ui.NewApp(ctrl, view, settings.NewBoard, choices)
	if config.IsSet(flag.CommandLine, "color") {
		if err := ctrl.Start(context.Background()); err != nil {
			log.Printf("Bot move error: %v", err)
		}
	} else {
		app.ShowStartScreen()
		app.OnStart = func(side chess.Color) {
			if store == nil {
				return
			}
			prefs, err := store.LoadPreferences()
			if err == nil {
				prefs.HumanColor = strings.ToLower(side.Name())
				err = store.SavePreferences(prefs)
			}
			if err != nil {
				log.Printf("Warning: saving preferences: %v", err)
			}
		}
	}
	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Chess GA")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
