package chess

import "slices"

// State is the whole game position as seen by the engine. Transitions never modify a State
// in place, they return the next one.
type State struct {
	Board        Board    `json:"board"`
	Active       Color    `json:"active"`
	Selection    *Square  `json:"selection,omitempty"`
	Destinations []Square `json:"destinations"`
	Clocks       Clocks   `json:"clocks"`
}

// NewState returns the starting position with white to move and both clocks at clockSeconds.
func NewState(clockSeconds int) State {
	return State{
		Board:        StandardBoard(),
		Active:       White,
		Destinations: []Square{},
		Clocks:       NewClocks(clockSeconds),
	}
}

func (s State) IsSelected() bool {
	return s.Selection != nil
}

func (s State) IsDestination(sq Square) bool {
	return slices.Contains(s.Destinations, sq)
}

func (s State) withSelection(sq Square, destinations []Square) State {
	s.Selection = &sq
	s.Destinations = destinations
	return s
}

func (s State) idle() State {
	s.Selection = nil
	s.Destinations = []Square{}
	return s
}
