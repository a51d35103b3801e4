package apperror

import "errors"

// move rejections.
var (
	ErrGameOver        = errors.New("game is already over")
	ErrIndexOutOfRange = errors.New("index must be in range [0, 8]")
	ErrOutOfTurn       = errors.New("it's not your turn")
	ErrWrongBoard      = errors.New("move must be played in the forced board")
	ErrBoardClosed     = errors.New("board is already closed")
	ErrCellOccupied    = errors.New("cell is already occupied")
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrUpdateConflict = errors.New("match was modified concurrently")
	ErrInvalidMove    = errors.New("invalid move")
	ErrBodyTooLarge   = errors.New("request body too large")
)
