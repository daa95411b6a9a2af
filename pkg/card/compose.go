// compose.go — Top-level card layout: obstacles first, then title, divider,
// description, and the wrapped extract.
package card

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	thumbnailMaxDim = 300
	extractFontSize = 18

	// QR geometry: each module is qrBoxSize pixels wide with a
	// qrBorder-module quiet zone on every side.
	qrBoxSize = 3
	qrBorder  = 3

	titleMaxSize = 32
	descMaxSize  = 24
	minFontSize  = 9

	dividerGap = 3
)

// Input carries the already-resolved content for one card. Collaborators are
// expected to hand over decoded values: the composer performs no I/O.
type Input struct {
	Title       string
	Description string
	Extract     string
	Thumbnail   image.Image // optional
	TargetURL   string      // optional; enables the QR code
}

// Composer renders summary cards onto a fixed 600×448 white canvas.
type Composer struct {
	fonts *FontManager
}

// NewComposer loads the fonts and returns a ready composer. Empty font paths
// select the embedded fallbacks.
func NewComposer(titleFontPath, bodyFontPath string) (*Composer, error) {
	fm, err := NewFontManager(titleFontPath, bodyFontPath)
	if err != nil {
		return nil, err
	}
	return &Composer{fonts: fm}, nil
}

// Compose lays out one card. The sequencing is fixed: the QR code is placed
// flush in the bottom-right corner, the thumbnail is rescaled to clear the
// code rows and anchored top-right, then the title, divider, description, and
// extract are drawn around both obstacles. Composition is deterministic —
// the same input always yields the same pixels.
func (c *Composer) Compose(in Input) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	obstacles := NewObstacleMap()

	if in.TargetURL != "" {
		code, err := codeImage(in.TargetURL)
		if err != nil {
			return nil, fmt.Errorf("generate code image: %w", err)
		}
		obstacles.SetCode(placeCode(img, code))
	}

	if in.Thumbnail != nil {
		obstacles.SetThumbnail(placeThumbnail(img, in.Thumbnail, obstacles))
	}

	titleBudget := obstacles.TitleBudget()

	titleFit, err := c.fonts.FitText(TitleFamily, in.Title, titleBudget, titleMaxSize, minFontSize)
	if err != nil {
		return nil, err
	}
	drawText(img, in.Title, Padding, Padding, titleFit.Face)

	dividerY := Padding + titleFit.Height + dividerGap
	drawDivider(img, dividerY, titleBudget)

	descFit, err := c.fonts.FitText(BodyFamily, in.Description, titleBudget, descMaxSize, minFontSize)
	if err != nil {
		return nil, err
	}
	drawText(img, in.Description, Padding, dividerY+Padding, descFit.Face)

	extractFace, err := c.fonts.Face(BodyFamily, extractFontSize)
	if err != nil {
		return nil, err
	}
	extractStart := dividerY + int(float64(Padding)*2.2) + descFit.Height
	for _, line := range wrapExtract(in.Extract, extractFace, obstacles, extractStart).lines {
		drawText(img, line.Text, Padding, line.Y, extractFace)
	}

	return img, nil
}

// codeImage builds the QR image for url at the fixed module size and quiet
// zone, so its side length is (modules + 2*qrBorder) * qrBoxSize.
func codeImage(url string) (image.Image, error) {
	code, err := qr.Encode(url, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	modules := code.Bounds().Dx()
	side := (modules + 2*qrBorder) * qrBoxSize
	return barcode.Scale(code, side, side)
}

// placeCode pastes the code image flush into the bottom-right corner and
// returns its footprint.
func placeCode(img *image.RGBA, code image.Image) image.Rectangle {
	side := code.Bounds().Dx()
	box := image.Rect(CanvasWidth-side, CanvasHeight-side, CanvasWidth, CanvasHeight)
	draw.Draw(img, box, code, code.Bounds().Min, draw.Src)
	return box
}

// placeThumbnail rescales the thumbnail to the maximum dimension, shrinks it
// further when its rows would collide with the code box, and pastes it at the
// top-right. The code box is placed first and never moves to accommodate the
// thumbnail.
func placeThumbnail(img *image.RGBA, thumb image.Image, m *ObstacleMap) image.Rectangle {
	resized := fitMaxDim(thumb, thumbnailMaxDim)

	if m.hasCode {
		clearance := CanvasHeight - m.code.Dy() - 2*Padding
		if resized.Bounds().Dy() > clearance {
			resized = imaging.Resize(resized, 0, clearance, imaging.Lanczos)
		}
	}

	b := resized.Bounds()
	box := image.Rect(CanvasWidth-b.Dx()-Padding, Padding, CanvasWidth-Padding, Padding+b.Dy())
	// draw.Over honors the source alpha channel and degrades to an opaque
	// paste for sources without one.
	draw.Draw(img, box, resized, b.Min, draw.Over)
	return box
}

// fitMaxDim scales im so its larger dimension equals maxDim, preserving
// aspect ratio. Small sources are scaled up: the display sits at arm's
// length and a tiny thumbnail would be unreadable.
func fitMaxDim(im image.Image, maxDim int) image.Image {
	b := im.Bounds()
	if b.Dx() >= b.Dy() {
		return imaging.Resize(im, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(im, 0, maxDim, imaging.Lanczos)
}

// drawText draws s in black with its top edge at y. The drawer dot is a
// baseline position, so it is offset by the face ascent.
func drawText(img *image.RGBA, s string, x, y int, face font.Face) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// drawDivider draws the 1px horizontal rule under the title band.
func drawDivider(img *image.RGBA, y, width int) {
	draw.Draw(img, image.Rect(Padding, y, Padding+width, y+1), image.Black, image.Point{}, draw.Src)
}
