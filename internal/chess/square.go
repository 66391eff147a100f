package chess

import (
	"errors"
	"fmt"
)

// Size is the number of rows and columns on the board.
const Size = 8

var ErrInvalidSquare = errors.New("square is outside the board")

// Square is a (row, column) pair. Row 0 is black's home rank, row 7 is white's.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewSquare - validates coordinates, both must be in [0,7].
func NewSquare(row, col int) (Square, error) {
	sq := Square{Row: row, Col: col}
	if !sq.OnBoard() {
		return Square{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, row, col)
	}

	return sq, nil
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// String renders the square in algebraic notation, e.g. row 6 col 4 is "e2".
func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, Size-s.Row)
}
