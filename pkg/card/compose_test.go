package card

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// testThumbnail builds a deterministic opaque gradient.
func testThumbnail(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer("", "")
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	return c
}

func TestComposeCanvasShape(t *testing.T) {
	c := newTestComposer(t)

	img, err := c.Compose(Input{
		Title:       "Go (programming language)",
		Description: "Statically typed language",
		Extract:     "Go is a statically typed, compiled high-level general purpose programming language.",
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if got := img.Bounds(); got.Dx() != CanvasWidth || got.Dy() != CanvasHeight {
		t.Fatalf("canvas is %v, want %dx%d", got, CanvasWidth, CanvasHeight)
	}
	if got := img.At(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background corner is %v, want white", got)
	}
}

func TestComposeEmptyExtract(t *testing.T) {
	c := newTestComposer(t)

	if _, err := c.Compose(Input{Title: "T", Description: "D"}); err != nil {
		t.Fatalf("empty extract must compose cleanly: %v", err)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	c := newTestComposer(t)

	in := Input{
		Title:       "Obstacle course",
		Description: "A test of every layout band",
		Extract:     "Many words flow around the thumbnail and then around the code box until the canvas runs out of rows and the line wrapper truncates.",
		Thumbnail:   testThumbnail(400, 200),
		TargetURL:   "https://en.wikipedia.org/wiki/Obstacle_course",
	}

	a, err := c.Compose(in)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	b, err := c.Compose(in)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two compositions of the same input differ")
	}
}

func TestComposeDrawsCodeInCorner(t *testing.T) {
	c := newTestComposer(t)

	img, err := c.Compose(Input{
		Title:     "QR",
		Extract:   "short",
		TargetURL: "https://example.org/article",
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// The code box is flush in the bottom-right corner; somewhere inside it
	// there must be black modules.
	found := false
	for y := CanvasHeight - 80; y < CanvasHeight && !found; y++ {
		for x := CanvasWidth - 80; x < CanvasWidth; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && b == 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("no code modules found in the bottom-right corner")
	}
}

func TestCodeImageGeometry(t *testing.T) {
	code, err := codeImage("https://en.wikipedia.org/wiki/Main_Page")
	if err != nil {
		t.Fatalf("codeImage: %v", err)
	}
	b := code.Bounds()
	if b.Dx() != b.Dy() {
		t.Fatalf("code image is not square: %v", b)
	}
	if b.Dx()%qrBoxSize != 0 {
		t.Fatalf("code side %d is not a multiple of the module size", b.Dx())
	}
}

func TestPlaceThumbnailClearsCodeBox(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	m := NewObstacleMap()
	// A tall code box whose rows a 300px thumbnail would collide with.
	m.SetCode(image.Rect(450, 298, 600, 448))

	box := placeThumbnail(canvas, testThumbnail(100, 1000), m)

	if box.Max.Y >= 298 {
		t.Fatalf("thumbnail bottom %d not strictly above the code box top 298", box.Max.Y)
	}
	if got, want := box.Dy(), CanvasHeight-150-2*Padding; got != want {
		t.Fatalf("thumbnail height %d, want clearance %d", got, want)
	}
	if box.Min.Y != Padding || box.Max.X != CanvasWidth-Padding {
		t.Fatalf("thumbnail not anchored top-right with padding: %v", box)
	}
}

func TestPlaceThumbnailMaxDimension(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	m := NewObstacleMap()

	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{600, 300, 300, 150}, // wide: width clamps to 300
		{150, 300, 150, 300}, // tall: height clamps to 300
		{100, 50, 300, 150},  // small sources scale up
	}
	for _, tt := range tests {
		box := placeThumbnail(canvas, testThumbnail(tt.w, tt.h), m)
		if box.Dx() != tt.wantW || box.Dy() != tt.wantH {
			t.Errorf("source %dx%d placed as %dx%d, want %dx%d",
				tt.w, tt.h, box.Dx(), box.Dy(), tt.wantW, tt.wantH)
		}
	}
}
