// Command selfplay pits the configured bot against another bot and prints
// a summary of the match.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"chessGA/bots"
	"chessGA/config"

	"github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/notnil/chess"
	"golang.org/x/term"
)

// boardWidth is the narrowest terminal the final diagrams are printed to.
const boardWidth = 40

// fatal reports on stderr; log output may be discarded.
func fatal(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	settings := config.Register(flag.CommandLine)
	games := flag.Int("games", 4, "number of games to play")
	opponent := flag.String("opponent", bots.Random, "bot the -bot bot plays against")
	maxPlies := flag.Int("plies", 200, "stop a game after this many moves and call it a draw")
	flag.Parse()

	if settings.LogPath != "" {
		f, err := os.OpenFile(settings.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := settings.Validate(); err != nil {
		fatal(err)
	}
	if settings.Bot == "none" {
		fmt.Fprintln(os.Stderr, "selfplay needs a -bot")
		os.Exit(2)
	}
	side, _ := settings.Human()

	fd := os.Stdout.Fd()
	color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	showBoards := false
	if term.IsTerminal(int(fd)) {
		if w, _, err := term.GetSize(int(fd)); err == nil && w >= boardWidth {
			showBoards = true
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := petname.Generate(2, "-")
	bold := color.New(color.Bold)
	bold.Printf("session %s: %s vs %s, %d games\n", session, settings.Bot, *opponent, *games)

	var tally Tally
	for i := 0; i < *games && ctx.Err() == nil; i++ {
		// distinct but reproducible streams per game
		seed := settings.Seed
		if seed != 0 {
			seed += int64(i)
		}
		player, err := bots.New(settings.Bot, settings.Params, bots.NewRand(seed))
		if err != nil {
			fatal(err)
		}
		other, err := bots.New(*opponent, settings.Params, bots.NewRand(-seed))
		if err != nil {
			fatal(err)
		}
		board, err := settings.NewBoard()
		if err != nil {
			fatal(err)
		}

		white, black := player, other
		if side == chess.Black {
			white, black = other, player
		}
		rec, err := playGame(ctx, board, white, black, *maxPlies)
		if err != nil {
			color.Red("game %d: %v", i+1, err)
			break
		}
		if rec.Aborted {
			color.Yellow("game %d: %s, not counted", i+1, rec)
			break
		}
		tally.Add(rec, side)

		line := color.YellowString
		switch {
		case rec.Draw():
		case rec.Winner == side:
			line = color.GreenString
		default:
			line = color.RedString
		}
		fmt.Printf("game %d: %s\n", i+1, line("%s", rec))
		if showBoards {
			fmt.Println(rec.Final.Board().Draw())
		}
	}

	bold.Printf("%s: ", settings.Bot)
	fmt.Printf("%s %s %s  score %.1f\n",
		color.GreenString("+%d", tally.Wins),
		color.RedString("-%d", tally.Losses),
		color.YellowString("=%d", tally.Draws),
		tally.Score())
}
