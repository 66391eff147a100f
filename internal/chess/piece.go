package chess

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPiece = errors.New("unknown piece code")
	ErrUnknownColor = errors.New("unknown color")
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) pawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("%w: %q", ErrUnknownColor, text)
	}

	return nil
}

type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const kindLetters = "PNBRQK"

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

// Piece is a tagged value; an empty square holds no Piece at all.
type Piece struct {
	Kind  Kind  `json:"kind"`
	Color Color `json:"color"`
}

// Code returns the single-letter code used by renderers: uppercase for white, lowercase for black.
func (p Piece) Code() string {
	letter := string(kindLetters[p.Kind])
	if p.Color == Black {
		return strings.ToLower(letter)
	}
	return letter
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Kind.String()
}

// ParsePiece - parses a single-letter piece code.
func ParsePiece(code string) (Piece, error) {
	if len(code) != 1 {
		return Piece{}, fmt.Errorf("%w: %q", ErrUnknownPiece, code)
	}

	idx := strings.IndexByte(kindLetters, code[0])
	if idx >= 0 {
		return Piece{Kind: Kind(idx), Color: White}, nil
	}

	idx = strings.IndexByte(strings.ToLower(kindLetters), code[0])
	if idx >= 0 {
		return Piece{Kind: Kind(idx), Color: Black}, nil
	}

	return Piece{}, fmt.Errorf("%w: %q", ErrUnknownPiece, code)
}
