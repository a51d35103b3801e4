package supergame

import "strings"

const (
	emptySymbol  = "."
	rowSeparator = "------+-------+------\n"
)

// Render draws the 9x9 grid as text, one micro-board per 3x3 block.
func Render(game Game) string {
	var sb strings.Builder

	for macroRow := 0; macroRow < 3; macroRow++ {
		if macroRow > 0 {
			sb.WriteString(rowSeparator)
		}

		for cellRow := 0; cellRow < 3; cellRow++ {
			for macroCol := 0; macroCol < 3; macroCol++ {
				if macroCol > 0 {
					sb.WriteString(" | ")
				}

				cells := game.micro[macroRow*3+macroCol].cells
				for cellCol := 0; cellCol < 3; cellCol++ {
					if cellCol > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteString(symbol(cells[cellRow*3+cellCol]))
				}
			}
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func symbol(mark Mark) string {
	if mark == Empty {
		return emptySymbol
	}

	return string(mark)
}
