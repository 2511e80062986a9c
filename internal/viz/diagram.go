package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/springlab/internal/experiment"
)

const (
	wallRune = '█'
	armRune  = '▐'
	coilUp   = '/'
	coilDown = '\\'
	endRune  = '●'
)

// Diagram draws each span as a coil between a wall at lo and the arm, one
// row per span row. Positions are scaled linearly from [lo, hi] onto width
// columns.
func Diagram(spans []experiment.Span, arm, lo, hi float64, width int, theme Theme) string {
	if width < 4 || hi <= lo || len(spans) == 0 {
		return ""
	}
	col := func(x float64) int {
		c := int(math.Round((x - lo) / (hi - lo) * float64(width-1)))
		return max(0, min(width-1, c))
	}

	rows := 0
	for _, s := range spans {
		rows = max(rows, s.Row+1)
	}
	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, s := range spans {
		row := canvas[s.Row]
		l, r := col(s.Left), col(s.Right)
		for c := l; c <= r; c++ {
			if (c-l)%2 == 0 {
				row[c] = coilUp
			} else {
				row[c] = coilDown
			}
		}
		row[l] = endRune
		row[r] = endRune
	}

	wallStyle := lipgloss.NewStyle().Foreground(theme.Wall)
	springStyle := lipgloss.NewStyle().Foreground(theme.Spring)
	armStyle := lipgloss.NewStyle().Foreground(theme.Arm)
	a := col(arm)

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(wallStyle.Render(string(wallRune)))
		b.WriteString(springStyle.Render(string(row[:a])))
		b.WriteString(armStyle.Render(string(armRune)))
		b.WriteString("\n")
	}
	return b.String()
}
