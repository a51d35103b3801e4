package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

// Match is the stored form of a super game. Only the move log is kept, the
// board and every result are rebuilt from it.
type Match struct {
	ID        string           `json:"id"`
	Moves     []supergame.Move `json:"moves"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// MatchView is what clients receive for a match.
type MatchView struct {
	ID    string `json:"id"`
	Moves int    `json:"moves"`
	supergame.Snapshot
}

func NewMatch(id string, now time.Time) *Match {
	return &Match{
		ID:        id,
		Moves:     []supergame.Move{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Game replays the move log.
func (that *Match) Game() (supergame.Game, error) {
	game, err := supergame.Replay(that.Moves)
	if err != nil {
		return game, fmt.Errorf("corrupted match %s: %w", that.ID, err)
	}

	return game, nil
}

// Play applies move on top of the stored log and records it. A rejected
// move leaves the match as it was.
func (that *Match) Play(move supergame.Move, now time.Time) (supergame.Game, error) {
	game, err := that.Game()
	if err != nil {
		return game, err
	}

	next, err := supergame.Apply(game, move.Player, move.Macro, move.Cell)
	if err != nil {
		return game, err
	}

	that.Moves = append(that.Moves, move)
	that.UpdatedAt = now

	return next, nil
}

func (that *Match) View(game supergame.Game) *MatchView {
	return &MatchView{
		ID:       that.ID,
		Moves:    len(that.Moves),
		Snapshot: game.Snapshot(),
	}
}

func (that *Match) IsFinished() bool {
	game, err := that.Game()
	if err != nil {
		return false
	}

	return game.IsOver()
}
