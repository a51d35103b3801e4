package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

const (
	actionNewGame = "game:new"
	actionGetGame = "game:get"
	actionTurn    = "game:turn"
)

const codeUnknownAction = "unknown_action"

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID     string         `json:"game_id,omitempty"`
	Player     supergame.Mark `json:"player,omitempty"`
	MacroIndex *int           `json:"macro_index,omitempty"`
	CellIndex  *int           `json:"cell_index,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.MatchView `json:"game,omitempty"`
	Error string            `json:"error,omitempty"`
	Code  string            `json:"code,omitempty"`
}
