// wrap.go — Greedy word wrap with obstacle-aware budgets and terminal
// ellipsis truncation.
package card

import (
	"strings"

	"golang.org/x/image/font"
)

const ellipsis = "..."

// Line is a committed row of wrapped text, ready to draw at Y.
type Line struct {
	Text string
	Y    int
}

type wrapResult struct {
	lines     []Line
	truncated bool
}

// wrapExtract folds the extract word-by-word into committed lines. A line is
// closed when the next word would exceed the width budget active for its row,
// and the budget for the following row is refreshed from the obstacle map.
// When no further line can fit above the canvas bottom, the current line is
// committed with an ellipsis and the remaining words are discarded.
//
// Invariant: no committed line is wider than the budget active when it was
// closed, and no line starts below the canvas.
func wrapExtract(extract string, face font.Face, m *ObstacleMap, startY int) wrapResult {
	var res wrapResult

	words := strings.Fields(strings.TrimSpace(extract))
	if len(words) == 0 {
		return res
	}

	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()

	current := words[0]
	cursorY := startY
	space := m.TitleBudget()

	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() <= space {
			current = candidate
			continue
		}

		// The line is full. If committing it and starting one more would
		// run past the canvas bottom, truncate here and stop.
		if cursorY+2*lineHeight+m.padding > m.height {
			res.lines = append(res.lines, Line{Text: truncateLine(current, face, space), Y: cursorY})
			res.truncated = true
			return res
		}

		res.lines = append(res.lines, Line{Text: current, Y: cursorY})
		current = word
		cursorY += lineHeight + m.padding
		space = m.LineBudget(cursorY, lineHeight)
	}

	if cursorY < m.height {
		res.lines = append(res.lines, Line{Text: current, Y: cursorY})
	}
	return res
}

// truncateLine appends the ellipsis marker to line, dropping trailing words
// while the marked line still exceeds space. A single overlong word degrades
// to the bare marker.
func truncateLine(line string, face font.Face, space int) string {
	words := strings.Fields(line)
	for len(words) > 0 {
		marked := strings.Join(words, " ") + " " + ellipsis
		if font.MeasureString(face, marked).Ceil() <= space {
			return marked
		}
		words = words[:len(words)-1]
	}
	return ellipsis
}
