package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScoreBar renders a [0,1] score as a bar like [████░░░░] 0.50,
// colored with ScoreStyle.
func RenderScoreBar(score float64, width int) string {
	score = min(max(score, 0), 1)
	width = max(width, 2)

	filled := min(int(score*float64(width)+0.5), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %.2f", ScoreStyle(score).Render(bar), score)
}
