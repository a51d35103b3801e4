package supergame

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/apperror"
)

// AnyBoard is the routing target that lets the active player pick any open board.
const AnyBoard = -1

// Move places player's mark on cell Cell of micro-board Macro.
type Move struct {
	Player Mark `json:"player" yaml:"player"`
	Macro  int  `json:"macro_index" yaml:"macro"`
	Cell   int  `json:"cell_index" yaml:"cell"`
}

type microBoard struct {
	cells  Board
	result Result
}

// Game is the full state of a super game. It holds arrays only, so a plain
// assignment is a deep copy and two games compare with ==.
// Derived fields are written by recompute and nowhere else.
type Game struct {
	micro       [BoardSize]microBoard
	macroResult Result
	active      Mark
	target      int
}

// NewGame returns an empty game with X to move anywhere.
func NewGame() Game {
	return Game{
		macroResult: Open,
		active:      X,
		target:      AnyBoard,
	}
}

// Apply validates move and returns the resulting game. On error state is
// returned unchanged.
func Apply(state Game, player Mark, macro, cell int) (Game, error) {
	if err := state.validate(player, macro, cell); err != nil {
		return state, err
	}

	next := state
	next.micro[macro].cells[cell] = player
	next.recompute(cell)
	next.active = player.Opponent()

	return next, nil
}

func (that Game) validate(player Mark, macro, cell int) error {
	if that.macroResult.IsClosed() {
		return apperror.ErrGameOver
	}

	if !inRange(macro) || !inRange(cell) {
		return fmt.Errorf("%w: board %d, cell %d", apperror.ErrIndexOutOfRange, macro, cell)
	}

	if player != that.active {
		return fmt.Errorf("%w: %q moves now", apperror.ErrOutOfTurn, that.active)
	}

	if that.target != AnyBoard && macro != that.target {
		return fmt.Errorf("%w: expected board %d, got %d", apperror.ErrWrongBoard, that.target, macro)
	}

	if that.micro[macro].result.IsClosed() {
		return fmt.Errorf("%w: board %d", apperror.ErrBoardClosed, macro)
	}

	if that.micro[macro].cells[cell] != Empty {
		return fmt.Errorf("%w: board %d, cell %d", apperror.ErrCellOccupied, macro, cell)
	}

	return nil
}

// recompute derives every result and the routing target from the cells.
// lastCell is the cell index of the move just played.
func (that *Game) recompute(lastCell int) {
	for i := range that.micro {
		that.micro[i].result = evaluate(that.micro[i].cells)
	}

	that.macroResult = macroResult(that.microResults())

	switch {
	case that.macroResult.IsClosed():
		that.target = AnyBoard
	case that.micro[lastCell].result.IsClosed():
		that.target = AnyBoard
	default:
		that.target = lastCell
	}
}

func (that *Game) microResults() [BoardSize]Result {
	var results [BoardSize]Result
	for i := range that.micro {
		results[i] = that.micro[i].result
	}

	return results
}

// Cells returns a copy of micro-board macro's cells.
func (that Game) Cells(macro int) Board {
	return that.micro[macro].cells
}

func (that Game) MicroResult(macro int) Result {
	return that.micro[macro].result
}

func (that Game) MicroResults() [BoardSize]Result {
	return that.microResults()
}

// MacroBoard is the projection of micro results onto the macro grid.
func (that Game) MacroBoard() Board {
	return project(that.microResults())
}

func (that Game) MacroResult() Result {
	return that.macroResult
}

func (that Game) ActivePlayer() Mark {
	return that.active
}

// RoutingTarget returns the forced board, or AnyBoard.
func (that Game) RoutingTarget() int {
	return that.target
}

func (that Game) IsOver() bool {
	return that.macroResult.IsClosed()
}

// LegalMoves lists every move the active player may make, ordered by board
// then cell.
func (that Game) LegalMoves() []Move {
	if that.IsOver() {
		return nil
	}

	moves := make([]Move, 0, BoardSize*BoardSize)
	for macro := range that.micro {
		if that.target != AnyBoard && macro != that.target {
			continue
		}

		board := that.micro[macro]
		if board.result.IsClosed() {
			continue
		}

		for cell, mark := range board.cells {
			if mark == Empty {
				moves = append(moves, Move{Player: that.active, Macro: macro, Cell: cell})
			}
		}
	}

	return moves
}

// Replay applies moves to a new game in order. The first rejected move stops
// the replay.
func Replay(moves []Move) (Game, error) {
	game := NewGame()

	for i, move := range moves {
		next, err := Apply(game, move.Player, move.Macro, move.Cell)
		if err != nil {
			return game, fmt.Errorf("move %d: %w", i+1, err)
		}

		game = next
	}

	return game, nil
}
