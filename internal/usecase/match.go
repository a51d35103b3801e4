package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

type MatchUseCase interface {
	NewMatch(ctx context.Context) (*entity.MatchView, error)
	GetMatch(ctx context.Context, id string) (*entity.MatchView, error)
	MakeMove(ctx context.Context, id string, move supergame.Move) (*entity.MatchView, error)
	DeleteMatch(ctx context.Context, id string) error
}

var _ MatchUseCase = (*MatchManager)(nil)

type matchRepoDep interface {
	Create(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	Update(ctx context.Context, id string, fn func(match *entity.Match) error) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type MatchManager struct {
	logger    *slog.Logger
	matchRepo matchRepoDep

	now func() time.Time
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepoDep) *MatchManager {
	return &MatchManager{
		logger: logger,

		matchRepo: matchRepo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (that *MatchManager) NewMatch(ctx context.Context) (*entity.MatchView, error) {
	log := that.logger.With("method", "NewMatch")

	match := entity.NewMatch(uuid.NewString(), that.now())
	if err := that.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Debug("match created", "match_id", match.ID)

	return match.View(supergame.NewGame()), nil
}

func (that *MatchManager) GetMatch(ctx context.Context, id string) (*entity.MatchView, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	game, err := match.Game()
	if err != nil {
		return nil, err
	}

	return match.View(game), nil
}

// MakeMove applies move to the stored match. Rule violations come back as the
// matching apperror sentinel and leave the stored match untouched.
func (that *MatchManager) MakeMove(ctx context.Context, id string, move supergame.Move) (*entity.MatchView, error) {
	log := that.logger.With("method", "MakeMove", "match_id", id)

	var game supergame.Game

	match, err := that.matchRepo.Update(ctx, id, func(match *entity.Match) error {
		var err error
		game, err = match.Play(move, that.now())

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if game.IsOver() {
		log.Info("match finished", "result", string(game.MacroResult()), "moves", len(match.Moves))
	}

	return match.View(game), nil
}

func (that *MatchManager) DeleteMatch(ctx context.Context, id string) error {
	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	return nil
}
