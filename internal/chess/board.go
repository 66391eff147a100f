package chess

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySquare    = errors.New("no piece on square")
	ErrMalformedBoard = errors.New("malformed board")
)

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is a fixed 8x8 grid of optional pieces. It is a value: copying a Board copies the grid,
// and pieces are never mutated in place.
type Board struct {
	squares [Size][Size]*Piece
}

// StandardBoard returns the standard starting layout, black on rows 0-1 and white on rows 6-7.
func StandardBoard() Board {
	var board Board

	for col := 0; col < Size; col++ {
		board = board.Put(Square{Row: 0, Col: col}, Piece{Kind: backRank[col], Color: Black})
		board = board.Put(Square{Row: 1, Col: col}, Piece{Kind: Pawn, Color: Black})
		board = board.Put(Square{Row: 6, Col: col}, Piece{Kind: Pawn, Color: White})
		board = board.Put(Square{Row: 7, Col: col}, Piece{Kind: backRank[col], Color: White})
	}

	return board
}

// PieceAt reports the piece on sq. sq must be on the board.
func (that Board) PieceAt(sq Square) (Piece, bool) {
	p := that.squares[sq.Row][sq.Col]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Put returns a copy of the board with p placed on sq. sq must be on the board.
func (that Board) Put(sq Square, p Piece) Board {
	that.squares[sq.Row][sq.Col] = &p
	return that
}

// Remove returns a copy of the board with sq emptied. sq must be on the board.
func (that Board) Remove(sq Square) Board {
	that.squares[sq.Row][sq.Col] = nil
	return that
}

// WithMove returns a new board where the piece on from now occupies to, replacing anything
// that was there, and from is empty. It does not check that the move is legal.
func (that Board) WithMove(from, to Square) (Board, error) {
	if !from.OnBoard() {
		return that, fmt.Errorf("%w: from %s", ErrInvalidSquare, from)
	}

	if !to.OnBoard() {
		return that, fmt.Errorf("%w: to %s", ErrInvalidSquare, to)
	}

	p, ok := that.PieceAt(from)
	if !ok {
		return that, fmt.Errorf("%w: %s", ErrEmptySquare, from)
	}

	return that.Remove(from).Put(to, p), nil
}

// Rows returns the grid as piece codes, "" for an empty square.
func (that Board) Rows() [][]string {
	rows := make([][]string, Size)
	for row := range rows {
		rows[row] = make([]string, Size)
		for col := range rows[row] {
			if p, ok := that.PieceAt(Square{Row: row, Col: col}); ok {
				rows[row][col] = p.Code()
			}
		}
	}

	return rows
}

// BoardFromRows - parses a grid of piece codes as produced by Rows.
func BoardFromRows(rows [][]string) (Board, error) {
	var board Board

	if len(rows) != Size {
		return board, fmt.Errorf("%w: %d rows", ErrMalformedBoard, len(rows))
	}

	for row, cells := range rows {
		if len(cells) != Size {
			return board, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, row, len(cells))
		}

		for col, code := range cells {
			if code == "" {
				continue
			}

			p, err := ParsePiece(code)
			if err != nil {
				return board, fmt.Errorf("%w: row %d col %d: %w", ErrMalformedBoard, row, col, err)
			}

			board = board.Put(Square{Row: row, Col: col}, p)
		}
	}

	return board, nil
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board rows: %w", err)
	}

	board, err := BoardFromRows(rows)
	if err != nil {
		return err
	}

	*that = board
	return nil
}

// String draws the board row by row with rank numbers and file letters, "." marks an empty square.
func (that Board) String() string {
	var sb strings.Builder

	for row, cells := range that.Rows() {
		fmt.Fprintf(&sb, "%d ", Size-row)
		for _, code := range cells {
			if code == "" {
				code = "."
			}
			sb.WriteString(code)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")

	return sb.String()
}
