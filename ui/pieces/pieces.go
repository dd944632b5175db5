// Package pieces draws chess piece sprites from generated SVG.
package pieces

import (
	"fmt"
	"image"
	"strings"

	"github.com/notnil/chess"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Silhouettes in a 45x45 box, filled and stroked per color.
const (
	pawnShape = `<circle cx="22.5" cy="15" r="6"/>
<path d="M15 36 L30 36 L26 22 L19 22 Z"/>
<rect x="12" y="36" width="21" height="4"/>`

	rookShape = `<path d="M12 38 L33 38 L33 33 L30 33 L30 17 L33 17 L33 9 L29 9 L29 12 L25 12 L25 9 L20 9 L20 12 L16 12 L16 9 L12 9 L12 17 L15 17 L15 33 L12 33 Z"/>`

	knightShape = `<path d="M13 38 L33 38 L31 21 L27 11 L22 8 L20 10 L12 18 L13 23 L15 24 L21 20 L15 30 Z"/>
<circle cx="20" cy="14" r="1.2"/>`

	bishopShape = `<path d="M13 38 L32 38 L28 31 L28 22 L22.5 11 L17 22 L17 31 Z"/>
<circle cx="22.5" cy="8" r="3"/>`

	queenShape = `<path d="M11 38 L34 38 L32 29 L37 12 L29 22 L22.5 8 L16 22 L8 12 L13 29 Z"/>`

	kingShape = `<path d="M12 38 L33 38 L31 25 L35 18 L26 17 L24 14 L24 11 L27 11 L27 8 L24 8 L24 4 L21 4 L21 8 L18 8 L18 11 L21 11 L21 14 L19 17 L10 18 L14 25 Z"/>`
)

var pieceShapes = map[chess.PieceType]string{
	chess.Pawn:   pawnShape,
	chess.Rook:   rookShape,
	chess.Knight: knightShape,
	chess.Bishop: bishopShape,
	chess.Queen:  queenShape,
	chess.King:   kingShape,
}

// SVG returns a standalone SVG document for p.
func SVG(p chess.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Color() == chess.Black {
		fill, stroke = "#1e1e1e", "#e6e6e6"
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">
<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">
%s
</g>
</svg>`, fill, stroke, pieceShapes[p.Type()])
}

// All lists the twelve colored pieces.
var All = []chess.Piece{
	chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
	chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
}

// Rasterize renders an SVG document into an RGBA image of size x size.
func Rasterize(svg string, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return rgba, nil
}
