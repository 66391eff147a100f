package entity

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	GameID string `json:"game_id,omitempty"`
	// Color is "white" or "black" in a private game and empty in a local one.
	Color string `json:"color,omitempty"`
}

func (that *Player) InGame() bool {
	return that.GameID != ""
}

// LeaveGame detaches the player from its current game.
func (that *Player) LeaveGame() {
	that.GameID = ""
	that.Color = ""
}
