package supergame

import "fmt"

// Mark is the content of a single cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Result is the outcome of a 3x3 board: open, won by X or O, or drawn.
type Result string

const (
	Open  Result = ""
	WonX  Result = "X"
	WonO  Result = "O"
	Drawn Result = "-"
)

// BoardSize is the number of cells in a board and of boards in the macro grid.
const BoardSize = 9

// Board is a 3x3 grid stored row-major: row = index/3, col = index%3.
type Board [BoardSize]Mark

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other player. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

// IsClosed reports whether the board can no longer accept moves.
func (r Result) IsClosed() bool {
	return r != Open
}

// Winner returns the winning mark, or Empty when the board is open or drawn.
func (r Result) Winner() Mark {
	switch r {
	case WonX:
		return X
	case WonO:
		return O
	default:
		return Empty
	}
}

func wonBy(m Mark) Result {
	if m == X {
		return WonX
	}
	return WonO
}

// findWinner returns the mark that completes a line. Only one side can ever
// complete a line under the move rules, two winners panic.
func findWinner(board Board) Mark {
	winner := Empty

	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a == Empty || a != b || b != c {
			continue
		}

		if winner != Empty && winner != a {
			panic(fmt.Sprintf("supergame: both players completed a line on board %v", board))
		}

		winner = a
	}

	return winner
}

// evaluate applies the win/draw rule to nine cells.
func evaluate(board Board) Result {
	if winner := findWinner(board); winner != Empty {
		return wonBy(winner)
	}

	for _, cell := range board {
		if cell == Empty {
			return Open
		}
	}

	return Drawn
}

// project turns micro-board results into the macro board's virtual cells:
// a won board becomes its winner's mark, an open or drawn board stays empty.
func project(results [BoardSize]Result) Board {
	var macro Board
	for i, result := range results {
		macro[i] = result.Winner()
	}

	return macro
}

// macroResult applies the win rule to the projected board. The macro board is
// drawn once every micro-board is closed without a winning line.
func macroResult(results [BoardSize]Result) Result {
	if winner := findWinner(project(results)); winner != Empty {
		return wonBy(winner)
	}

	for _, result := range results {
		if !result.IsClosed() {
			return Open
		}
	}

	return Drawn
}

var (
	rowLabels = [3]string{"top", "middle", "bottom"}
	colLabels = [3]string{"left", "center", "right"}
)

// PositionLabel names a board or cell index by its place in the grid, e.g.
// "top-left" for 0 and "bottom-right" for 8.
func PositionLabel(index int) string {
	if !inRange(index) {
		return ""
	}

	return rowLabels[index/3] + "-" + colLabels[index%3]
}

func inRange(index int) bool {
	return index >= 0 && index < BoardSize
}
