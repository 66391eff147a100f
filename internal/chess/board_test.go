package chess

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSquare(t *testing.T) {
	t.Run("Accepts corners", func(t *testing.T) {
		for _, rc := range [][2]int{{0, 0}, {0, 7}, {7, 0}, {7, 7}} {
			sq, err := NewSquare(rc[0], rc[1])

			require.NoError(t, err)
			assert.Equal(t, Square{Row: rc[0], Col: rc[1]}, sq)
		}
	})

	t.Run("Rejects coordinates outside the board", func(t *testing.T) {
		for _, rc := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
			_, err := NewSquare(rc[0], rc[1])

			assert.ErrorIs(t, err, ErrInvalidSquare)
		}
	})

	t.Run("Renders algebraic notation", func(t *testing.T) {
		assert.Equal(t, "e2", Square{Row: 6, Col: 4}.String())
		assert.Equal(t, "a8", Square{Row: 0, Col: 0}.String())
		assert.Equal(t, "h1", Square{Row: 7, Col: 7}.String())
	})
}

func TestStandardBoard(t *testing.T) {
	// When: building the starting layout
	board := StandardBoard()

	// Then: it matches the standard rows
	expected := [][]string{
		{"r", "n", "b", "q", "k", "b", "n", "r"},
		{"p", "p", "p", "p", "p", "p", "p", "p"},
		{"", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"P", "P", "P", "P", "P", "P", "P", "P"},
		{"R", "N", "B", "Q", "K", "B", "N", "R"},
	}
	assert.Equal(t, expected, board.Rows())
}

func TestBoard_WithMove(t *testing.T) {
	t.Run("Moves a piece to an empty square", func(t *testing.T) {
		// Given: the starting layout
		board := StandardBoard()

		// When: moving the e2 pawn to e4
		next, err := board.WithMove(Square{Row: 6, Col: 4}, Square{Row: 4, Col: 4})
		require.NoError(t, err)

		// Then: the pawn is on e4 and e2 is empty
		p, ok := next.PieceAt(Square{Row: 4, Col: 4})
		require.True(t, ok)
		assert.Equal(t, Piece{Kind: Pawn, Color: White}, p)

		_, ok = next.PieceAt(Square{Row: 6, Col: 4})
		assert.False(t, ok)

		// Then: the original board is untouched
		_, ok = board.PieceAt(Square{Row: 6, Col: 4})
		assert.True(t, ok)
	})

	t.Run("Overwrites the piece on the destination", func(t *testing.T) {
		// Given: a white rook facing a black knight
		board := Board{}.
			Put(Square{Row: 4, Col: 0}, Piece{Kind: Rook, Color: White}).
			Put(Square{Row: 4, Col: 5}, Piece{Kind: Knight, Color: Black})

		// When: the rook moves onto the knight
		next, err := board.WithMove(Square{Row: 4, Col: 0}, Square{Row: 4, Col: 5})
		require.NoError(t, err)

		// Then: only the rook remains
		p, ok := next.PieceAt(Square{Row: 4, Col: 5})
		require.True(t, ok)
		assert.Equal(t, Piece{Kind: Rook, Color: White}, p)
		assert.Equal(t, 1, countPieces(next))
	})

	t.Run("Rejects squares outside the board", func(t *testing.T) {
		board := StandardBoard()

		_, err := board.WithMove(Square{Row: 6, Col: 4}, Square{Row: 8, Col: 4})
		require.ErrorIs(t, err, ErrInvalidSquare)

		_, err = board.WithMove(Square{Row: -1, Col: 4}, Square{Row: 4, Col: 4})
		require.ErrorIs(t, err, ErrInvalidSquare)
	})

	t.Run("Rejects an empty origin", func(t *testing.T) {
		board := StandardBoard()

		_, err := board.WithMove(Square{Row: 4, Col: 4}, Square{Row: 3, Col: 4})

		assert.ErrorIs(t, err, ErrEmptySquare)
	})
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Encodes rows of piece codes", func(t *testing.T) {
		board := Board{}.Put(Square{Row: 0, Col: 0}, Piece{Kind: Queen, Color: Black})

		data, err := json.Marshal(board)
		require.NoError(t, err)

		var rows [][]string
		require.NoError(t, json.Unmarshal(data, &rows))
		assert.Equal(t, "q", rows[0][0])
		assert.Equal(t, "", rows[7][7])
	})

	t.Run("Decodes what it encodes", func(t *testing.T) {
		board := StandardBoard()

		data, err := json.Marshal(board)
		require.NoError(t, err)

		var decoded Board
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, board, decoded)
	})

	t.Run("Rejects malformed grids", func(t *testing.T) {
		var decoded Board

		err := json.Unmarshal([]byte(`[["P"]]`), &decoded)
		require.ErrorIs(t, err, ErrMalformedBoard)

		rows := StandardBoard().Rows()
		rows[3][3] = "X"
		_, err = BoardFromRows(rows)
		assert.ErrorIs(t, err, ErrUnknownPiece)
	})
}

func TestBoard_String(t *testing.T) {
	board := StandardBoard()

	assert.Equal(t,
		"8 r n b q k b n r \n"+
			"7 p p p p p p p p \n"+
			"6 . . . . . . . . \n"+
			"5 . . . . . . . . \n"+
			"4 . . . . . . . . \n"+
			"3 . . . . . . . . \n"+
			"2 P P P P P P P P \n"+
			"1 R N B Q K B N R \n"+
			"  a b c d e f g h\n",
		board.String())
}

func countPieces(board Board) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if _, ok := board.PieceAt(Square{Row: row, Col: col}); ok {
				n++
			}
		}
	}
	return n
}
