// Package ui is the ebiten board view.
package ui

import (
	"log"

	"chessGA/ui/pieces"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
)

// loadPieceImages builds one sprite per piece at the square size.
func loadPieceImages(squareSize int) map[chess.Piece]*ebiten.Image {
	images := make(map[chess.Piece]*ebiten.Image)
	for _, p := range pieces.All {
		rgba, err := pieces.Rasterize(pieces.SVG(p), squareSize)
		if err != nil {
			log.Printf("Warning: failed to render %s: %v", p, err)
			continue
		}
		images[p] = ebiten.NewImageFromImage(rgba)
	}
	return images
}
