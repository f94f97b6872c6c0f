package component

// Player holds the player's movement tuning and vertical state.
type Player struct {
	MoveSpeed        float64
	Gravity          float64
	VerticalVelocity float64
}

var PlayerComponent = NewComponent[Player]()

// Score accumulates kill rewards on the player.
type Score struct {
	Points int
	Kills  int
}

var ScoreComponent = NewComponent[Score]()
