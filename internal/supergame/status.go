package supergame

import "fmt"

// Status describes the phase of the game for display.
func Status(game Game) string {
	switch result := game.MacroResult(); result {
	case WonX, WonO:
		return fmt.Sprintf("%s wins", result.Winner())
	case Drawn:
		return "draw"
	}

	if target := game.RoutingTarget(); target != AnyBoard {
		return fmt.Sprintf("%s's turn — play in board %d", game.ActivePlayer(), target)
	}

	return fmt.Sprintf("%s's turn — choose any board", game.ActivePlayer())
}
