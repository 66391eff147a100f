package chess

import (
	"errors"
	"fmt"
)

var ErrUnknownReselectPolicy = errors.New("unknown reselect policy")

// ReselectPolicy decides what a tap on another own piece does while a piece is selected.
type ReselectPolicy string

const (
	// ReselectAlways selects the tapped piece instead.
	ReselectAlways ReselectPolicy = "always"
	// ReselectNever ignores the tap and keeps the current selection.
	ReselectNever ReselectPolicy = "never"
)

func ParseReselectPolicy(s string) (ReselectPolicy, error) {
	switch policy := ReselectPolicy(s); policy {
	case ReselectAlways, ReselectNever:
		return policy, nil
	case "":
		return ReselectAlways, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReselectPolicy, s)
	}
}

type Transition string

const (
	TransitionSelected Transition = "selected"
	TransitionMoved    Transition = "moved"
	TransitionCleared  Transition = "cleared"
	TransitionIgnored  Transition = "ignored"
)

// Move is a committed move. Captured is nil when the destination was empty.
type Move struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Piece    Piece  `json:"piece"`
	Captured *Piece `json:"captured,omitempty"`
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// Result describes what a tap did. Move is set only for TransitionMoved.
type Result struct {
	Transition Transition `json:"transition"`
	Move       *Move      `json:"move,omitempty"`
}

// Engine drives the select/commit state machine over State values.
type Engine struct {
	policy ReselectPolicy
}

func NewEngine(policy ReselectPolicy) *Engine {
	if policy == "" {
		policy = ReselectAlways
	}

	return &Engine{policy: policy}
}

func (that *Engine) Policy() ReselectPolicy {
	return that.policy
}

// SquareTapped applies a tap on (row, col) to state and returns the next state.
//
// A tap on one of the selected piece's destinations commits the move and passes the turn.
// A tap on a piece of the active color selects it. Anything else clears the selection.
// Off-board coordinates are rejected and state is returned unchanged.
func (that *Engine) SquareTapped(state State, row, col int) (State, Result, error) {
	tapped, err := NewSquare(row, col)
	if err != nil {
		return state, Result{}, err
	}

	if state.IsSelected() && state.IsDestination(tapped) {
		return that.commit(state, *state.Selection, tapped)
	}

	p, ok := state.Board.PieceAt(tapped)
	if ok && p.Color == state.Active {
		if state.IsSelected() && that.policy == ReselectNever {
			return state, Result{Transition: TransitionIgnored}, nil
		}

		destinations := GenerateMoves(state.Board, p, tapped)
		return state.withSelection(tapped, destinations), Result{Transition: TransitionSelected}, nil
	}

	return state.idle(), Result{Transition: TransitionCleared}, nil
}

func (that *Engine) commit(state State, from, to Square) (State, Result, error) {
	moved, _ := state.Board.PieceAt(from)

	move := &Move{From: from, To: to, Piece: moved}
	if captured, ok := state.Board.PieceAt(to); ok {
		move.Captured = &captured
	}

	board, err := state.Board.WithMove(from, to)
	if err != nil {
		return state, Result{}, fmt.Errorf("failed to commit move %s: %w", move, err)
	}

	state.Board = board
	state.Active = state.Active.Opposite()

	return state.idle(), Result{Transition: TransitionMoved, Move: move}, nil
}

// ClockTick takes one second off the clock of the side to move.
func (that *Engine) ClockTick(state State) State {
	state.Clocks = state.Clocks.Tick(state.Active)
	return state
}
