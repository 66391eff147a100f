package chess

type direction struct {
	dRow, dCol int
}

var (
	knightJumps = []direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}

	orthogonals = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonals   = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

	allDirections = append(append([]direction{}, orthogonals...), diagonals...)
)

// GenerateMoves returns the pseudo-legal destinations of piece standing on from: squares its
// movement pattern reaches given board edges and occupancy. King safety is not considered.
// The result never contains from or a square held by a piece of the mover's color; its order
// carries no meaning.
func GenerateMoves(board Board, piece Piece, from Square) []Square {
	switch piece.Kind {
	case Pawn:
		return pawnMoves(board, piece.Color, from)
	case Knight:
		return stepMoves(board, piece.Color, from, knightJumps)
	case Bishop:
		return rayMoves(board, piece.Color, from, diagonals)
	case Rook:
		return rayMoves(board, piece.Color, from, orthogonals)
	case Queen:
		return rayMoves(board, piece.Color, from, allDirections)
	case King:
		return stepMoves(board, piece.Color, from, allDirections)
	default:
		return nil
	}
}

func pawnMoves(board Board, color Color, from Square) []Square {
	moves := make([]Square, 0, 4)
	forward := color.forward()

	one := from.offset(forward, 0)
	if one.OnBoard() && isEmpty(board, one) {
		moves = append(moves, one)

		two := from.offset(2*forward, 0)
		if from.Row == color.pawnRow() && two.OnBoard() && isEmpty(board, two) {
			moves = append(moves, two)
		}
	}

	// diagonals only ever capture, there is no en passant
	for _, dCol := range []int{-1, 1} {
		target := from.offset(forward, dCol)
		if !target.OnBoard() {
			continue
		}
		if p, ok := board.PieceAt(target); ok && p.Color != color {
			moves = append(moves, target)
		}
	}

	return moves
}

func stepMoves(board Board, color Color, from Square, steps []direction) []Square {
	moves := make([]Square, 0, len(steps))

	for _, step := range steps {
		target := from.offset(step.dRow, step.dCol)
		if !target.OnBoard() {
			continue
		}
		if p, ok := board.PieceAt(target); ok && p.Color == color {
			continue
		}
		moves = append(moves, target)
	}

	return moves
}

// rayMoves walks each direction until the edge or the first occupied square, which is
// included only when it holds an opposing piece.
func rayMoves(board Board, color Color, from Square, rays []direction) []Square {
	moves := make([]Square, 0, 2*Size)

	for _, ray := range rays {
		for target := from.offset(ray.dRow, ray.dCol); target.OnBoard(); target = target.offset(ray.dRow, ray.dCol) {
			p, ok := board.PieceAt(target)
			if !ok {
				moves = append(moves, target)
				continue
			}
			if p.Color != color {
				moves = append(moves, target)
			}
			break
		}
	}

	return moves
}

func isEmpty(board Board, sq Square) bool {
	_, ok := board.PieceAt(sq)
	return !ok
}
