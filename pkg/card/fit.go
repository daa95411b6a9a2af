// fit.go — Shrink-to-fit font size selection.
package card

import "golang.org/x/image/font"

// Fit is the outcome of a shrink-to-fit probe: the selected size, the
// measured pixel box of the probed text at that size, and the ready face.
type Fit struct {
	Size   int
	Width  int
	Height int
	Face   font.Face
}

// FitText picks the largest size in [to, from], probing from large to small,
// whose rendered width of text fits budget. Selection is pure: nothing is
// drawn. When no candidate fits, the smallest candidate is returned anyway
// and the caller draws it clipped by the canvas rather than not at all.
func (fm *FontManager) FitText(family Family, text string, budget, from, to int) (Fit, error) {
	var fit Fit
	for size := from; size >= to; size-- {
		face, err := fm.Face(family, float64(size))
		if err != nil {
			return Fit{}, err
		}
		w, h := measure(face, text)
		fit = Fit{Size: size, Width: w, Height: h, Face: face}
		if w <= budget {
			break
		}
	}
	return fit, nil
}

// measure returns the rendered pixel width (advance) and tight bounding-box
// height of s at face.
func measure(face font.Face, s string) (w, h int) {
	bounds, advance := font.BoundString(face, s)
	return advance.Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}
