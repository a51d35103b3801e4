package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

const maxBodySize = 1 << 12

type matchUseCase interface {
	NewMatch(ctx context.Context) (*entity.MatchView, error)
	GetMatch(ctx context.Context, id string) (*entity.MatchView, error)
	MakeMove(ctx context.Context, id string, move supergame.Move) (*entity.MatchView, error)
	DeleteMatch(ctx context.Context, id string) error
}

type MoveRequest struct {
	Player     supergame.Mark `json:"player"`
	MacroIndex *int           `json:"macro_index"`
	CellIndex  *int           `json:"cell_index"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Handlers struct {
	logger *slog.Logger
	uMatch matchUseCase
}

func NewHandlers(logger *slog.Logger, uMatch matchUseCase) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		uMatch: uMatch,
	}
}

func (that *Handlers) NewMatch(w http.ResponseWriter, r *http.Request) {
	view, err := that.uMatch.NewMatch(r.Context())
	if err != nil {
		that.writeError(w, "NewMatch", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, view)
}

func (that *Handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	view, err := that.uMatch.GetMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "GetMatch", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	move, err := decodeMove(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	view, err := that.uMatch.MakeMove(r.Context(), r.PathValue("id"), move)
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *Handlers) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := that.uMatch.DeleteMatch(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, "DeleteMatch", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeMove(body io.Reader) (supergame.Move, error) {
	var req MoveRequest

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			return supergame.Move{}, fmt.Errorf("%w: %w", apperror.ErrBodyTooLarge, err)
		}

		return supergame.Move{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	if !req.Player.IsPlayer() {
		return supergame.Move{}, fmt.Errorf("%w: player must be X or O", apperror.ErrInvalidMove)
	}

	if req.MacroIndex == nil || req.CellIndex == nil {
		return supergame.Move{}, fmt.Errorf("%w: macro_index and cell_index are required", apperror.ErrInvalidMove)
	}

	return supergame.Move{Player: req.Player, Macro: *req.MacroIndex, Cell: *req.CellIndex}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameOver),
		errors.Is(err, apperror.ErrOutOfTurn),
		errors.Is(err, apperror.ErrWrongBoard),
		errors.Is(err, apperror.ErrBoardClosed),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrUpdateConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, method string, err error) {
	log := that.logger.With("method", method)

	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		message = http.StatusText(status)
	} else {
		log.Debug("request rejected", "error", err)
	}

	that.writeJSON(w, status, ErrorResponse{Error: message, Code: apperror.Code(err)})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
