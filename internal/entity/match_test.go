package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

var (
	createdAt = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	playedAt  = createdAt.Add(time.Minute)
)

func TestNewMatch(t *testing.T) {
	// When: create a new match
	match := NewMatch("123", createdAt)

	// Then: the match has no moves and replays to a new game
	expectedMatch := &Match{
		ID:        "123",
		Moves:     []supergame.Move{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.Equal(t, expectedMatch, match)

	game, err := match.Game()
	require.NoError(t, err)
	assert.Equal(t, supergame.NewGame(), game)
	assert.False(t, match.IsFinished())
}

func TestMatch_Play(t *testing.T) {
	t.Run("Successful move is recorded", func(t *testing.T) {
		// Given: a new match
		match := NewMatch("123", createdAt)

		// When: X plays cell 8 of board 0
		game, err := match.Play(supergame.Move{Player: supergame.X, Macro: 0, Cell: 8}, playedAt)
		require.NoError(t, err)

		// Then: the move is logged and the replayed game matches the returned one
		assert.Equal(t, []supergame.Move{{Player: supergame.X, Macro: 0, Cell: 8}}, match.Moves)
		assert.Equal(t, playedAt, match.UpdatedAt)
		assert.Equal(t, 8, game.RoutingTarget())

		replayed, err := match.Game()
		require.NoError(t, err)
		assert.Equal(t, game, replayed)
	})

	t.Run("Rejected move is not recorded", func(t *testing.T) {
		// Given: a match where O is routed to board 8
		match := NewMatch("123", createdAt)
		_, err := match.Play(supergame.Move{Player: supergame.X, Macro: 0, Cell: 8}, playedAt)
		require.NoError(t, err)

		// When: O plays in board 1
		_, err = match.Play(supergame.Move{Player: supergame.O, Macro: 1, Cell: 0}, playedAt.Add(time.Minute))

		// Then: ErrWrongBoard is returned and the log is unchanged
		require.ErrorIs(t, err, apperror.ErrWrongBoard)
		assert.Len(t, match.Moves, 1)
		assert.Equal(t, playedAt, match.UpdatedAt)
	})

	t.Run("Corrupted log is reported", func(t *testing.T) {
		// Given: a stored log that starts with O
		match := &Match{ID: "bad", Moves: []supergame.Move{{Player: supergame.O, Macro: 0, Cell: 0}}}

		// When: playing on top of it
		_, err := match.Play(supergame.Move{Player: supergame.X, Macro: 0, Cell: 1}, playedAt)

		// Then: the replay error names the match
		require.ErrorIs(t, err, apperror.ErrOutOfTurn)
		assert.Contains(t, err.Error(), "corrupted match bad")
		assert.False(t, match.IsFinished())
	})
}

func TestMatch_View(t *testing.T) {
	// Given: a match with one move
	match := NewMatch("abc", createdAt)
	game, err := match.Play(supergame.Move{Player: supergame.X, Macro: 4, Cell: 2}, playedAt)
	require.NoError(t, err)

	// When: building its view
	data, err := json.Marshal(match.View(game))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: the snapshot fields are inlined next to the id
	assert.Equal(t, "abc", decoded["id"])
	assert.EqualValues(t, 1, decoded["moves"])
	assert.EqualValues(t, 2, decoded["routing_target"])
	assert.Equal(t, "O's turn — play in board 2", decoded["status"])
}
