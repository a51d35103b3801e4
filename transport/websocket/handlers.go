package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	game, err := that.uMatch.NewMatch(ctx)
	if err != nil {
		return that.sendFailure(c, msg.Action, err)
	}

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) handleGetGame(ctx context.Context, c *client, msg *Message) error {
	req, err := decodePayload(msg)
	if err != nil {
		return that.sendFailure(c, msg.Action, err)
	}

	game, err := that.uMatch.GetMatch(ctx, req.GameID)
	if err != nil {
		return that.sendFailure(c, msg.Action, err)
	}

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	req, err := decodePayload(msg)
	if err != nil {
		return that.sendFailure(c, msg.Action, err)
	}

	if !req.Player.IsPlayer() || req.MacroIndex == nil || req.CellIndex == nil {
		return that.sendFailure(c, msg.Action, fmt.Errorf("%w: player, macro_index and cell_index are required", apperror.ErrInvalidMove))
	}

	move := supergame.Move{Player: req.Player, Macro: *req.MacroIndex, Cell: *req.CellIndex}

	game, err := that.uMatch.MakeMove(ctx, req.GameID, move)
	if err != nil {
		return that.sendFailure(c, msg.Action, err)
	}

	return that.sendGame(c, msg.Action, game)
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var req RequestPayload

	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	if req.GameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", apperror.ErrInvalidMove)
	}

	return &req, nil
}

func (that *Server) sendGame(c *client, action string, game *entity.MatchView) error {
	return that.sendMessage(c, action, ResponsePayload{Game: game})
}

func (that *Server) sendFailure(c *client, action string, err error) error {
	code := apperror.Code(err)
	if code == apperror.CodeInternal {
		that.logger.Error("request failed", "action", action, "error", err)
		return that.sendError(c, action, code, "internal error")
	}

	return that.sendError(c, action, code, err.Error())
}

func (that *Server) sendError(c *client, action, code, errorMsg string) error {
	if err := that.sendMessage(c, action, ResponsePayload{Error: errorMsg, Code: code}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *Server) sendMessage(c *client, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	return c.send(Message{Action: action, Payload: payloadBytes})
}
