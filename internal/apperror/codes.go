package apperror

import "errors"

// client-facing codes.
const (
	CodeGameOver        = "game_over"
	CodeIndexOutOfRange = "index_out_of_range"
	CodeOutOfTurn       = "out_of_turn"
	CodeWrongBoard      = "wrong_board"
	CodeBoardClosed     = "board_closed"
	CodeCellOccupied    = "cell_occupied"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeInvalidMove     = "invalid_move"
	CodeBodyTooLarge    = "body_too_large"
	CodeInternal        = "internal"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrGameOver, CodeGameOver},
	{ErrIndexOutOfRange, CodeIndexOutOfRange},
	{ErrOutOfTurn, CodeOutOfTurn},
	{ErrWrongBoard, CodeWrongBoard},
	{ErrBoardClosed, CodeBoardClosed},
	{ErrCellOccupied, CodeCellOccupied},
	{ErrMatchNotFound, CodeNotFound},
	{ErrUpdateConflict, CodeConflict},
	{ErrBodyTooLarge, CodeBodyTooLarge},
	{ErrInvalidMove, CodeInvalidMove},
}

// Code returns the client code for err, CodeInternal when err is not one of
// the package errors.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return CodeInternal
}
