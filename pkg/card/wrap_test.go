package card

import (
	"image"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face7x13 advances exactly 7px per glyph, which makes every width in these
// tests an exact multiple of the character count.
var fixedFace = basicfont.Face7x13

func lineWidth(t *testing.T, s string) int {
	t.Helper()
	return font.MeasureString(fixedFace, s).Ceil()
}

func TestWrapSingleWordEmitsOneLine(t *testing.T) {
	m := NewObstacleMap()
	res := wrapExtract("hello", fixedFace, m, 100)

	if len(res.lines) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(res.lines))
	}
	if res.lines[0].Text != "hello" || res.lines[0].Y != 100 {
		t.Fatalf("unexpected line: %+v", res.lines[0])
	}
	if res.truncated {
		t.Fatal("single word must not be truncated")
	}
}

func TestWrapTwoWordsThatFitStayOnOneLine(t *testing.T) {
	m := NewObstacleMap()
	res := wrapExtract("Alpha Beta", fixedFace, m, 100)

	if len(res.lines) != 1 {
		t.Fatalf("expected one line, got %d: %+v", len(res.lines), res.lines)
	}
	if res.lines[0].Text != "Alpha Beta" {
		t.Fatalf("expected combined line, got %q", res.lines[0].Text)
	}
	if res.truncated {
		t.Fatal("unexpected truncation")
	}
}

func TestWrapEmptyExtractEmitsNothing(t *testing.T) {
	m := NewObstacleMap()
	for _, extract := range []string{"", "   ", "\n\t "} {
		res := wrapExtract(extract, fixedFace, m, 100)
		if len(res.lines) != 0 || res.truncated {
			t.Fatalf("extract %q: expected no lines, got %+v", extract, res)
		}
	}
}

func TestWrapBreaksOnNarrowBudget(t *testing.T) {
	m := NewObstacleMap()
	// Thumbnail at x=300 narrows the budget to 280px (40 glyphs).
	m.SetThumbnail(image.Rect(300, Padding, 590, 310))

	extract := strings.TrimSpace(strings.Repeat("aaaa ", 20))
	res := wrapExtract(extract, fixedFace, m, Padding)

	if len(res.lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(res.lines))
	}
	for _, line := range res.lines {
		if w := lineWidth(t, line.Text); w > 280 {
			t.Fatalf("line %q at y=%d is %dpx wide, budget is 280", line.Text, line.Y, w)
		}
	}
}

func TestWrapTerminalTruncation(t *testing.T) {
	m := NewObstacleMap()
	// Start low enough that the first line break already has no room for a
	// second line: 420 + 2*13 + 10 > 448.
	extract := strings.TrimSpace(strings.Repeat("aaaa ", 20))
	res := wrapExtract(extract, fixedFace, m, 420)

	if !res.truncated {
		t.Fatal("expected terminal truncation")
	}
	if len(res.lines) != 1 {
		t.Fatalf("expected a single truncated line, got %d", len(res.lines))
	}

	final := res.lines[0]
	if final.Y != 420 {
		t.Fatalf("truncated line moved to y=%d", final.Y)
	}
	if !strings.HasSuffix(final.Text, ellipsis) {
		t.Fatalf("truncated line %q does not end with the ellipsis marker", final.Text)
	}
	if w := lineWidth(t, final.Text); w > 580 {
		t.Fatalf("truncated line is %dpx wide, budget is 580", w)
	}
	if len(final.Text) >= len(extract) {
		t.Fatalf("truncated line (%d chars) not shorter than the full extract (%d chars)",
			len(final.Text), len(extract))
	}
}

func TestWrapTruncationDropsWordsUntilMarkerFits(t *testing.T) {
	// 580px fits 82 glyphs. Sixteen "aaaa" words fill 79 chars, so adding
	// " ..." (83 chars) overflows and the last word must be dropped.
	got := truncateLine(strings.TrimSpace(strings.Repeat("aaaa ", 16)), fixedFace, 580)
	want := strings.TrimSpace(strings.Repeat("aaaa ", 15)) + " " + ellipsis
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// A single word that cannot fit at all degrades to the bare marker.
	if got := truncateLine(strings.Repeat("a", 100), fixedFace, 50); got != ellipsis {
		t.Fatalf("overlong word: got %q, want %q", got, ellipsis)
	}
}

func TestWrapBudgetFollowsObstacles(t *testing.T) {
	m := NewObstacleMap()
	m.SetThumbnail(image.Rect(300, Padding, 590, 310)) // rows ≤ 320 narrow to 280px
	m.SetCode(image.Rect(519, 367, 600, 448))          // rows reaching 367 narrow to 509px

	extract := strings.TrimSpace(strings.Repeat("aaaa ", 200))
	res := wrapExtract(extract, fixedFace, m, Padding)

	if !res.truncated {
		t.Fatal("expected a long extract to truncate")
	}

	const lineHeight = 13
	var sawNarrow, sawWide bool
	for _, line := range res.lines {
		w := lineWidth(t, line.Text)
		if budget := m.LineBudget(line.Y, lineHeight); w > budget {
			t.Fatalf("line %q at y=%d is %dpx wide, budget there is %dpx", line.Text, line.Y, w, budget)
		}
		if line.Y+lineHeight > CanvasHeight {
			t.Fatalf("line at y=%d extends past the canvas bottom", line.Y)
		}
		if line.Y <= 320 {
			sawNarrow = true
			if w > 280 {
				t.Fatalf("line beside the thumbnail at y=%d is %dpx wide", line.Y, w)
			}
		}
		if line.Y > 320 && line.Y+lineHeight <= 367 {
			sawWide = true
		}
	}

	if !sawNarrow || !sawWide {
		t.Fatalf("expected lines both beside and below the thumbnail (narrow=%v wide=%v)", sawNarrow, sawWide)
	}
}
