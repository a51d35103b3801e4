package supergame

// Engine is the mutable form of the rules: it owns one Game and replaces it
// atomically on every successful move. It does no locking, a host sharing
// one Engine between goroutines must serialise calls.
type Engine struct {
	state Game
}

func NewEngine() *Engine {
	return &Engine{state: NewGame()}
}

// NewGame discards the current game and starts a fresh one.
func (that *Engine) NewGame() Game {
	that.state = NewGame()

	return that.state
}

// ApplyMove plays a move for player. On error the engine state is unchanged.
func (that *Engine) ApplyMove(player Mark, macro, cell int) (Game, error) {
	next, err := Apply(that.state, player, macro, cell)
	if err != nil {
		return that.state, err
	}

	that.state = next

	return that.state, nil
}

// State returns a copy of the current game.
func (that *Engine) State() Game {
	return that.state
}

func (that *Engine) Snapshot() Snapshot {
	return that.state.Snapshot()
}
