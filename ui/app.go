package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"

	"chessGA/bots"
	"chessGA/game"
	"chessGA/rules"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
)

const (
	SquareSize   = 80
	statusHeight = 40
	ScreenWidth  = SquareSize * 8
	ScreenHeight = SquareSize*8 + statusHeight

	buttonWidth  = 200
	buttonHeight = 60
)

var (
	lightSquare = color.RGBA{240, 217, 181, 255}
	darkSquare  = color.RGBA{181, 136, 99, 255}
	background  = color.RGBA{40, 44, 52, 255}
	textColor   = color.RGBA{220, 220, 220, 255}

	highlightColors = map[game.Highlight]color.RGBA{
		game.HighlightSelected: {247, 247, 105, 180},
		game.HighlightQuiet:    {144, 238, 144, 200},
		game.HighlightCapture:  {255, 182, 193, 220},
		game.HighlightCheck:    {255, 60, 60, 220},
	}
)

// App is the ebiten game: it turns clicks into controller calls and draws
// the BoardView.
type App struct {
	ctrl     *game.Controller
	view     *BoardView
	pieces   map[chess.Piece]*ebiten.Image
	newBoard func() (*rules.Board, error)
	bots     []bots.ChessBot
	botIndex int
	flipped  bool
	botErr   error
	started  bool

	// OnStart is called with the side picked on the start screen.
	OnStart func(side chess.Color)
}

// NewApp wires an app to a controller that was built with view. newBoard
// supplies the position for R (new game); choices are cycled with B.
func NewApp(ctrl *game.Controller, view *BoardView, newBoard func() (*rules.Board, error), choices []bots.ChessBot) *App {
	a := &App{
		ctrl:     ctrl,
		view:     view,
		pieces:   loadPieceImages(SquareSize),
		newBoard: newBoard,
		bots:     choices,
		flipped:  ctrl.Human() == chess.Black,
		started:  true,
	}
	for i, b := range choices {
		if b == ctrl.Bot() {
			a.botIndex = i
		}
	}
	return a
}

// ShowStartScreen makes the app ask which side the human plays before
// starting the controller. Use it instead of calling ctrl.Start.
func (a *App) ShowStartScreen() {
	a.started = false
}

// startButtons are the "play White" and "play Black" buttons.
func startButtons() (white, black image.Rectangle) {
	y := ScreenHeight/2 + 40
	white = image.Rect(ScreenWidth/2-buttonWidth-20, y, ScreenWidth/2-20, y+buttonHeight)
	black = image.Rect(ScreenWidth/2+20, y, ScreenWidth/2+20+buttonWidth, y+buttonHeight)
	return white, black
}

func (a *App) startGame(ctx context.Context, side chess.Color) {
	a.ctrl.SetHuman(side)
	a.flipped = side == chess.Black
	a.started = true
	if a.OnStart != nil {
		a.OnStart(side)
	}
	a.setBotErr(a.ctrl.Start(ctx))
}

func (a *App) updateStartScreen(ctx context.Context) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	pt := image.Pt(ebiten.CursorPosition())
	white, black := startButtons()
	switch {
	case pt.In(white):
		a.startGame(ctx, chess.White)
	case pt.In(black):
		a.startGame(ctx, chess.Black)
	}
}

// squareAt maps screen coordinates to a board square.
func (a *App) squareAt(x, y int) (chess.Square, bool) {
	if x < 0 || x >= SquareSize*8 || y < statusHeight || y >= statusHeight+SquareSize*8 {
		return chess.NoSquare, false
	}
	file := x / SquareSize
	rank := 7 - (y-statusHeight)/SquareSize
	if a.flipped {
		file, rank = 7-file, 7-rank
	}
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), true
}

// origin is the top-left pixel of sq.
func (a *App) origin(sq chess.Square) (float32, float32) {
	file, rank := int(sq.File()), int(sq.Rank())
	if a.flipped {
		file, rank = 7-file, 7-rank
	}
	return float32(file * SquareSize), float32(statusHeight + (7-rank)*SquareSize)
}

func (a *App) Update() error {
	ctx := context.Background()
	if !a.started {
		a.updateStartScreen(ctx)
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if sq, ok := a.squareAt(ebiten.CursorPosition()); ok {
			a.setBotErr(a.ctrl.SelectSquare(ctx, sq))
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.ctrl.Deselect()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) && len(a.bots) > 0 {
		a.botIndex = (a.botIndex + 1) % len(a.bots)
		a.ctrl.SetBot(a.bots[a.botIndex])
		log.Printf("bot: %s", a.bots[a.botIndex].Name())
		a.setBotErr(a.ctrl.Resume(ctx))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		b, err := a.newBoard()
		if err != nil {
			return err
		}
		a.view.reset()
		a.setBotErr(a.ctrl.Reset(ctx, b))
	}
	return nil
}

func (a *App) setBotErr(err error) {
	a.botErr = err
	if err != nil {
		log.Printf("Bot move error: %v", err)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if !a.started {
		a.drawStartScreen(screen)
		return
	}

	for sq := chess.A1; sq <= chess.H8; sq++ {
		x, y := a.origin(sq)
		clr := lightSquare
		if (int(sq.File())+int(sq.Rank()))%2 == 0 {
			clr = darkSquare
		}
		vector.DrawFilledRect(screen, x, y, SquareSize, SquareSize, clr, false)
		if kind, ok := a.view.highlights[sq]; ok {
			vector.DrawFilledRect(screen, x, y, SquareSize, SquareSize, highlightColors[kind], false)
		}
	}

	if a.view.pos != nil {
		board := a.view.pos.Board()
		for sq := chess.A1; sq <= chess.H8; sq++ {
			img := a.pieces[board.Piece(sq)]
			if img == nil {
				continue
			}
			x, y := a.origin(sq)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(img, op)
		}
	}

	a.drawStatus(screen)
	if a.view.gameOver != "" {
		a.drawGameOver(screen)
	}
}

func (a *App) drawStatus(screen *ebiten.Image) {
	status := "Your move"
	if a.ctrl.Outcome() != game.InProgress {
		status = a.ctrl.Outcome().String()
	} else if a.botErr != nil {
		status = "Bot failed, click to retry"
	} else if a.ctrl.Bot() == nil {
		status = fmt.Sprintf("%s to move", a.ctrl.Turn().Name())
	}
	if regularFace != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(12, 10)
		op.ColorScale.ScaleWithColor(textColor)
		text.Draw(screen, status, regularFace, op)
	}

	botName := "No bot selected"
	if a.ctrl.Bot() != nil {
		botName = a.ctrl.Bot().Name()
	}
	ebitenutil.DebugPrintAt(screen, "Bot: "+botName+"  [B] switch  [R] new game", ScreenWidth-330, 12)
}

func (a *App) drawStartScreen(screen *ebiten.Image) {
	a.drawCentered(screen, "Chess GA", ScreenHeight/2-80)
	a.drawCentered(screen, "Choose your side", ScreenHeight/2-20)

	white, black := startButtons()
	for _, b := range []struct {
		rect  image.Rectangle
		fill  color.RGBA
		label string
	}{
		{white, color.RGBA{200, 200, 200, 255}, "Play White"},
		{black, color.RGBA{50, 50, 50, 255}, "Play Black"},
	} {
		vector.DrawFilledRect(screen, float32(b.rect.Min.X), float32(b.rect.Min.Y),
			buttonWidth, buttonHeight, b.fill, false)
		ebitenutil.DebugPrintAt(screen, b.label, b.rect.Min.X+65, b.rect.Min.Y+22)
	}
}

// drawCentered draws s horizontally centred with its middle at y.
func (a *App) drawCentered(screen *ebiten.Image, s string, y int) {
	if regularFace == nil {
		ebitenutil.DebugPrintAt(screen, s, ScreenWidth/2-40, y)
		return
	}
	w, h := text.Measure(s, regularFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((ScreenWidth-w)/2, float64(y)-h/2)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, s, regularFace, op)
}

func (a *App) drawGameOver(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, float32(statusHeight+3*SquareSize), ScreenWidth, 2*SquareSize, color.RGBA{0, 0, 0, 180}, false)
	if boldFace == nil {
		ebitenutil.DebugPrintAt(screen, a.view.gameOver, ScreenWidth/2-40, statusHeight+4*SquareSize)
		return
	}
	w, h := text.Measure(a.view.gameOver, boldFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((ScreenWidth-w)/2, float64(statusHeight+4*SquareSize)-h/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, a.view.gameOver, boldFace, op)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
