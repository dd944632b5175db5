package rules

import "github.com/notnil/chess"

var (
	knightJumps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straight    = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal    = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func onBoard(f, r int) bool {
	return f >= 0 && f < 8 && r >= 0 && r < 8
}

func at(b *chess.Board, f, r int) chess.Piece {
	return b.Piece(chess.NewSquare(chess.File(f), chess.Rank(r)))
}

// attacked reports whether any piece of color by attacks sq. The library only
// exposes check through move tags, so positions loaded from FEN need this scan.
func attacked(b *chess.Board, sq chess.Square, by chess.Color) bool {
	f, r := int(sq.File()), int(sq.Rank())

	pawnRank := r - 1
	if by == chess.Black {
		pawnRank = r + 1
	}
	for _, df := range [2]int{-1, 1} {
		if onBoard(f+df, pawnRank) {
			p := at(b, f+df, pawnRank)
			if p.Type() == chess.Pawn && p.Color() == by {
				return true
			}
		}
	}

	for _, d := range knightJumps {
		if onBoard(f+d[0], r+d[1]) {
			p := at(b, f+d[0], r+d[1])
			if p.Type() == chess.Knight && p.Color() == by {
				return true
			}
		}
	}

	for _, d := range kingSteps {
		if onBoard(f+d[0], r+d[1]) {
			p := at(b, f+d[0], r+d[1])
			if p.Type() == chess.King && p.Color() == by {
				return true
			}
		}
	}

	if slides(b, f, r, straight[:], by, chess.Rook) || slides(b, f, r, diagonal[:], by, chess.Bishop) {
		return true
	}
	return false
}

func slides(b *chess.Board, f, r int, dirs [][2]int, by chess.Color, kind chess.PieceType) bool {
	for _, d := range dirs {
		for x, y := f+d[0], r+d[1]; onBoard(x, y); x, y = x+d[0], y+d[1] {
			p := at(b, x, y)
			if p == chess.NoPiece {
				continue
			}
			if p.Color() == by && (p.Type() == kind || p.Type() == chess.Queen) {
				return true
			}
			break
		}
	}
	return false
}
