// obstacles.go — Per-row width budgets around the thumbnail and QR code.
package card

import "image"

// Canvas geometry shared by the composer and the wrapper.
const (
	CanvasWidth  = 600
	CanvasHeight = 448
	Padding      = 10
)

// ObstacleMap answers how wide a text line may be at a given canvas row,
// given the rectangles occupied by the thumbnail (top-right) and the QR code
// (bottom-right). Narrowings from both obstacles combine by taking the
// smaller width.
type ObstacleMap struct {
	width, height int
	padding       int

	thumb    image.Rectangle
	hasThumb bool
	code     image.Rectangle
	hasCode  bool
}

// NewObstacleMap returns a map for the fixed card canvas with no obstacles.
func NewObstacleMap() *ObstacleMap {
	return &ObstacleMap{width: CanvasWidth, height: CanvasHeight, padding: Padding}
}

// SetThumbnail records the thumbnail footprint.
func (m *ObstacleMap) SetThumbnail(r image.Rectangle) { m.thumb, m.hasThumb = r, true }

// SetCode records the QR code footprint.
func (m *ObstacleMap) SetCode(r image.Rectangle) { m.code, m.hasCode = r, true }

// TitleBudget is the width available beside the thumbnail. The title and
// description bands always sit above the code box, so only the thumbnail
// narrows them.
func (m *ObstacleMap) TitleBudget() int {
	if m.hasThumb {
		return m.thumb.Min.X - 2*m.padding
	}
	return m.width - 2*m.padding
}

// WidthBudget reports the horizontal space available to a text line whose
// top edge sits at row y. Text keeps a padding gap before the thumbnail on
// both sides and a single padding gap before the code box, which sits flush
// in the corner.
func (m *ObstacleMap) WidthBudget(y int) int {
	b := m.width - 2*m.padding
	if m.hasThumb && y <= m.thumb.Max.Y+m.padding {
		b = min(b, m.thumb.Min.X-2*m.padding)
	}
	if m.hasCode && y >= m.code.Min.Y {
		b = min(b, m.code.Min.X-m.padding)
	}
	return b
}

// LineBudget is WidthBudget with the wrapper's lookahead: a line at y whose
// bottom edge would cross into the code box rows already uses the
// code-narrowed width. Rows only ever advance downward, so once the code
// narrowing triggers it holds for every later line.
func (m *ObstacleMap) LineBudget(y, lineHeight int) int {
	b := m.WidthBudget(y)
	if m.hasCode && y+lineHeight > m.code.Min.Y {
		b = min(b, m.code.Min.X-m.padding)
	}
	return b
}
