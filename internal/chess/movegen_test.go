package chess

import (
	"fmt"
	"testing"

	notnil "github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	whitePawn   = Piece{Kind: Pawn, Color: White}
	blackPawn   = Piece{Kind: Pawn, Color: Black}
	whiteRook   = Piece{Kind: Rook, Color: White}
	whiteBishop = Piece{Kind: Bishop, Color: White}
	whiteQueen  = Piece{Kind: Queen, Color: White}
	whiteKnight = Piece{Kind: Knight, Color: White}
	whiteKing   = Piece{Kind: King, Color: White}
	blackKnight = Piece{Kind: Knight, Color: Black}
)

func sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

func TestGenerateMoves_Pawn(t *testing.T) {
	t.Run("Double step from the home row", func(t *testing.T) {
		// Given: a white pawn on its home row with an open file
		board := Board{}.Put(sq(6, 3), whitePawn)

		// When: generating its moves
		moves := GenerateMoves(board, whitePawn, sq(6, 3))

		// Then: both forward squares are reachable
		assert.ElementsMatch(t, []Square{sq(5, 3), sq(4, 3)}, moves)
	})

	t.Run("No jumping over a blocked first step", func(t *testing.T) {
		// Given: a piece right in front of the pawn
		board := Board{}.Put(sq(6, 3), whitePawn).Put(sq(5, 3), blackKnight)

		// When: generating its moves
		moves := GenerateMoves(board, whitePawn, sq(6, 3))

		// Then: neither forward square is reachable
		assert.Empty(t, moves)
	})

	t.Run("Double step blocked on the second square", func(t *testing.T) {
		board := Board{}.Put(sq(6, 3), whitePawn).Put(sq(4, 3), blackKnight)

		moves := GenerateMoves(board, whitePawn, sq(6, 3))

		assert.ElementsMatch(t, []Square{sq(5, 3)}, moves)
	})

	t.Run("Single step away from the home row", func(t *testing.T) {
		board := Board{}.Put(sq(5, 3), whitePawn)

		moves := GenerateMoves(board, whitePawn, sq(5, 3))

		assert.ElementsMatch(t, []Square{sq(4, 3)}, moves)
	})

	t.Run("Black pawns advance toward row 7", func(t *testing.T) {
		board := Board{}.Put(sq(1, 2), blackPawn)

		moves := GenerateMoves(board, blackPawn, sq(1, 2))

		assert.ElementsMatch(t, []Square{sq(2, 2), sq(3, 2)}, moves)
	})

	t.Run("Diagonals only when an opposing piece is there", func(t *testing.T) {
		// Given: an enemy on one diagonal, a friend on the other
		board := Board{}.
			Put(sq(4, 4), whitePawn).
			Put(sq(3, 3), blackKnight).
			Put(sq(3, 5), whiteKnight)

		// When: generating its moves
		moves := GenerateMoves(board, whitePawn, sq(4, 4))

		// Then: the capture and the push are included, the friendly diagonal is not
		assert.ElementsMatch(t, []Square{sq(3, 4), sq(3, 3)}, moves)
	})

	t.Run("Empty diagonals are never destinations", func(t *testing.T) {
		board := Board{}.Put(sq(4, 4), whitePawn)

		moves := GenerateMoves(board, whitePawn, sq(4, 4))

		assert.NotContains(t, moves, sq(3, 3))
		assert.NotContains(t, moves, sq(3, 5))
	})

	t.Run("Pawn on the last row has nowhere to go", func(t *testing.T) {
		board := Board{}.Put(sq(0, 4), whitePawn)

		moves := GenerateMoves(board, whitePawn, sq(0, 4))

		assert.Empty(t, moves)
	})
}

func TestGenerateMoves_Sliders(t *testing.T) {
	t.Run("Own piece at distance k stops the ray before it", func(t *testing.T) {
		// Given: a rook on a1 and a friendly knight three squares up the file
		board := Board{}.Put(sq(7, 0), whiteRook).Put(sq(4, 0), whiteKnight).Put(sq(7, 1), whiteKnight)

		// When: generating its moves
		moves := GenerateMoves(board, whiteRook, sq(7, 0))

		// Then: only the two empty squares before the knight are reachable
		assert.ElementsMatch(t, []Square{sq(6, 0), sq(5, 0)}, moves)
	})

	t.Run("Opposing piece at distance k is the last destination", func(t *testing.T) {
		board := Board{}.Put(sq(7, 0), whiteRook).Put(sq(4, 0), blackKnight).Put(sq(7, 1), whiteKnight)

		moves := GenerateMoves(board, whiteRook, sq(7, 0))

		assert.ElementsMatch(t, []Square{sq(6, 0), sq(5, 0), sq(4, 0)}, moves)
	})

	t.Run("Bishop walks the four diagonals", func(t *testing.T) {
		// Given: a bishop with an enemy on one diagonal and a friend on another
		board := Board{}.
			Put(sq(4, 4), whiteBishop).
			Put(sq(2, 2), blackKnight).
			Put(sq(6, 6), whiteKnight)

		moves := GenerateMoves(board, whiteBishop, sq(4, 4))

		assert.ElementsMatch(t, []Square{
			sq(3, 3), sq(2, 2),
			sq(3, 5), sq(2, 6), sq(1, 7),
			sq(5, 3), sq(6, 2), sq(7, 1),
			sq(5, 5),
		}, moves)
	})

	t.Run("Queen on an empty board reaches 27 squares from the center", func(t *testing.T) {
		board := Board{}.Put(sq(3, 3), whiteQueen)

		moves := GenerateMoves(board, whiteQueen, sq(3, 3))

		assert.Len(t, moves, 27)
		assert.NotContains(t, moves, sq(3, 3))
	})

	t.Run("Rook blocked by its own pawn in the starting layout", func(t *testing.T) {
		board := StandardBoard()

		moves := GenerateMoves(board, whiteRook, sq(7, 0))

		assert.Empty(t, moves)
	})
}

func TestGenerateMoves_Steppers(t *testing.T) {
	t.Run("Knight from b1 in the starting layout", func(t *testing.T) {
		board := StandardBoard()

		moves := GenerateMoves(board, whiteKnight, sq(7, 1))

		assert.ElementsMatch(t, []Square{sq(5, 0), sq(5, 2)}, moves)
	})

	t.Run("Knight and king never leave the board", func(t *testing.T) {
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				for _, p := range []Piece{whiteKnight, whiteKing} {
					board := Board{}.Put(sq(row, col), p)

					for _, dest := range GenerateMoves(board, p, sq(row, col)) {
						assert.True(t, dest.OnBoard(), "%s from %s generated %s", p, sq(row, col), dest)
					}
				}
			}
		}
	})

	t.Run("Knight in the corner", func(t *testing.T) {
		board := Board{}.Put(sq(0, 0), whiteKnight)

		moves := GenerateMoves(board, whiteKnight, sq(0, 0))

		assert.ElementsMatch(t, []Square{sq(1, 2), sq(2, 1)}, moves)
	})

	t.Run("King captures but does not step on friends", func(t *testing.T) {
		board := Board{}.
			Put(sq(7, 4), whiteKing).
			Put(sq(6, 4), whitePawn).
			Put(sq(6, 3), blackPawn)

		moves := GenerateMoves(board, whiteKing, sq(7, 4))

		assert.ElementsMatch(t, []Square{sq(7, 3), sq(7, 5), sq(6, 3), sq(6, 5)}, moves)
	})
}

// In these positions no king can be exposed and castling is impossible,
// so pseudo-legal and legal moves coincide.
func TestGenerateMoves_MatchesReferenceImplementation(t *testing.T) {
	openings := [][]string{
		{},
		{"e4"},
		{"e4", "d5"},
		{"Nf3", "Nc6", "d4"},
	}

	for _, opening := range openings {
		t.Run(fmt.Sprintf("after %v", opening), func(t *testing.T) {
			// Given: a reference game after the opening moves
			game := notnil.NewGame()
			for _, move := range opening {
				require.NoError(t, game.MoveStr(move))
			}

			board, active := fromReference(t, game.Position())

			// When: generating moves for every piece of the side to move
			var got []string
			for row := 0; row < Size; row++ {
				for col := 0; col < Size; col++ {
					p, ok := board.PieceAt(sq(row, col))
					if !ok || p.Color != active {
						continue
					}
					for _, dest := range GenerateMoves(board, p, sq(row, col)) {
						got = append(got, sq(row, col).String()+dest.String())
					}
				}
			}

			// Then: they are exactly the reference's valid moves
			var want []string
			for _, move := range game.ValidMoves() {
				want = append(want, move.S1().String()+move.S2().String())
			}

			assert.ElementsMatch(t, want, got)
		})
	}
}

func fromReference(t *testing.T, pos *notnil.Position) (Board, Color) {
	t.Helper()

	kinds := map[notnil.PieceType]Kind{
		notnil.Pawn:   Pawn,
		notnil.Knight: Knight,
		notnil.Bishop: Bishop,
		notnil.Rook:   Rook,
		notnil.Queen:  Queen,
		notnil.King:   King,
	}

	var board Board
	for s := notnil.A1; s <= notnil.H8; s++ {
		p := pos.Board().Piece(s)
		if p == notnil.NoPiece {
			continue
		}

		color := White
		if p.Color() == notnil.Black {
			color = Black
		}

		board = board.Put(sq(Size-1-int(s.Rank()), int(s.File())), Piece{Kind: kinds[p.Type()], Color: color})
	}

	active := White
	if pos.Turn() == notnil.Black {
		active = Black
	}

	return board, active
}
