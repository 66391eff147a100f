package chess

// DefaultClockSeconds is the time each side starts with.
const DefaultClockSeconds = 3600

// Clocks holds the remaining whole seconds of both sides.
type Clocks struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func NewClocks(seconds int) Clocks {
	return Clocks{White: seconds, Black: seconds}
}

func (c Clocks) Remaining(color Color) int {
	if color == Black {
		return c.Black
	}
	return c.White
}

// Tick takes one second off color's clock, never going below zero.
func (c Clocks) Tick(color Color) Clocks {
	if color == Black {
		c.Black = max(0, c.Black-1)
		return c
	}

	c.White = max(0, c.White-1)
	return c
}

// Expired reports whether color has run out of time. Nothing ends the game when it does.
func (c Clocks) Expired(color Color) bool {
	return c.Remaining(color) == 0
}
