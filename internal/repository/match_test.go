package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
	"github.com/rocketscienceinc/supertictactoe-backend/testing/suite"
)

var now = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func TestMatchRepository_Create(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage, time.Hour)

	// Given: a new match
	match := entity.NewMatch("123", now)

	// When: Create is called
	err := matchRepo.Create(ctx, match)

	// Then: the match is stored under its key with the configured expiry
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "match:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// Given: a stored match with one move
		match := entity.NewMatch("123", now)
		_, err := match.Play(supergame.Move{Player: supergame.X, Macro: 4, Cell: 4}, now)
		require.NoError(t, err)
		require.NoError(t, matchRepo.Create(ctx, match))

		// When: GetByID is called with existing ID
		retrievedMatch, err := matchRepo.GetByID(ctx, match.ID)

		// Then: the retrieved match should match the saved match
		require.NoError(t, err)
		assert.Equal(t, match.ID, retrievedMatch.ID)
		assert.Equal(t, match.Moves, retrievedMatch.Moves)
		assert.True(t, match.CreatedAt.Equal(retrievedMatch.CreatedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		retrievedMatch, err := matchRepo.GetByID(ctx, "9999999")

		// Then: an ErrMatchNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		assert.Nil(t, retrievedMatch)
	})
}

func TestMatchRepository_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)
		require.NoError(t, matchRepo.Create(ctx, entity.NewMatch("123", now)))

		// When: a move is played inside Update
		updated, err := matchRepo.Update(ctx, "123", func(match *entity.Match) error {
			_, err := match.Play(supergame.Move{Player: supergame.X, Macro: 0, Cell: 0}, now)
			return err
		})

		// Then: the stored match contains the move
		require.NoError(t, err)
		assert.Len(t, updated.Moves, 1)

		stored, err := matchRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, updated.Moves, stored.Moves)
	})

	t.Run("Update_RejectedMoveIsNotStored", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)
		require.NoError(t, matchRepo.Create(ctx, entity.NewMatch("123", now)))

		// When: O tries to open the game
		_, err := matchRepo.Update(ctx, "123", func(match *entity.Match) error {
			_, err := match.Play(supergame.Move{Player: supergame.O, Macro: 0, Cell: 0}, now)
			return err
		})

		// Then: the rule error is returned and nothing is written
		require.ErrorIs(t, err, apperror.ErrOutOfTurn)

		stored, err := matchRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Empty(t, stored.Moves)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// When: Update is called for a missing match
		_, err := matchRepo.Update(ctx, "missing", func(*entity.Match) error { return nil })

		// Then: ErrMatchNotFound is returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})

	t.Run("Update_ConcurrentMovesAreSerialised", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)
		require.NoError(t, matchRepo.Create(ctx, entity.NewMatch("123", now)))

		// When: two clients try to play X's opening move at the same time
		var wg sync.WaitGroup
		errs := make([]error, 2)

		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, errs[i] = matchRepo.Update(ctx, "123", func(match *entity.Match) error {
					_, err := match.Play(supergame.Move{Player: supergame.X, Macro: i, Cell: 0}, now)
					return err
				})
			}()
		}
		wg.Wait()

		// Then: exactly one move is stored
		stored, err := matchRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Len(t, stored.Moves, 1)

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)
		require.NoError(t, matchRepo.Create(ctx, entity.NewMatch("123", now)))

		// When: DeleteByID is called
		err := matchRepo.DeleteByID(ctx, "123")

		// Then: the match is gone
		require.NoError(t, err)

		_, err = matchRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// When: deleting a match that was never stored
		err := matchRepo.DeleteByID(ctx, "123")

		// Then: ErrMatchNotFound is returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})
}

func TestMatchRepository_Update_Watch(t *testing.T) {
	t.Run("Update_RetriesAfterConcurrentWrite", func(t *testing.T) {
		ctx, st := suite.NewInMemory(t)

		matchRepo := NewMatchRepository(st.Storage, 0)
		require.NoError(t, matchRepo.Create(ctx, entity.NewMatch("123", now)))

		// Given: another writer stores X's opening move while the first read is in flight
		opened := entity.NewMatch("123", now)
		_, err := opened.Play(supergame.Move{Player: supergame.X, Macro: 4, Cell: 4}, now)
		require.NoError(t, err)

		calls := 0

		// When: Update runs its callback
		updated, err := matchRepo.Update(ctx, "123", func(match *entity.Match) error {
			calls++
			if calls == 1 {
				return matchRepo.Create(ctx, opened)
			}

			return nil
		})

		// Then: the watched transaction is retried on the fresh value
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, opened.Moves, updated.Moves)
	})

	t.Run("Update_GivesUpWhenAlwaysRaced", func(t *testing.T) {
		ctx, st := suite.NewInMemory(t)

		matchRepo := NewMatchRepository(st.Storage, 0)
		require.NoError(t, matchRepo.Create(ctx, entity.NewMatch("123", now)))

		calls := 0

		// When: every attempt is raced by another writer
		_, err := matchRepo.Update(ctx, "123", func(match *entity.Match) error {
			calls++

			return matchRepo.Create(ctx, entity.NewMatch("123", now))
		})

		// Then: ErrUpdateConflict is returned after the retry limit
		require.ErrorIs(t, err, apperror.ErrUpdateConflict)
		assert.Equal(t, maxUpdateRetries, calls)
	})
}

func TestMatchRepository_Expiry(t *testing.T) {
	ctx, st := suite.NewInMemory(t)

	matchRepo := NewMatchRepository(st.Storage, time.Hour)
	require.NoError(t, matchRepo.Create(ctx, entity.NewMatch("123", now)))

	// Given: a move refreshes the expiry half way through
	st.Server.FastForward(30 * time.Minute)
	_, err := matchRepo.Update(ctx, "123", func(match *entity.Match) error {
		_, err := match.Play(supergame.Move{Player: supergame.X, Macro: 0, Cell: 0}, now)
		return err
	})
	require.NoError(t, err)

	// When: less than the full ttl passes after the move
	st.Server.FastForward(45 * time.Minute)

	// Then: the match is still stored
	_, err = matchRepo.GetByID(ctx, "123")
	require.NoError(t, err)

	// When: the ttl elapses with no further writes
	st.Server.FastForward(time.Hour)

	// Then: the match is gone
	_, err = matchRepo.GetByID(ctx, "123")
	require.ErrorIs(t, err, apperror.ErrMatchNotFound)
}
