// Package generator writes finished card canvases to image files.
//
// Output follows a unified pipeline: the composer produces an image.Image
// and the encoder is chosen from the file extension — ".png" for PNG and
// ".bmp" for 24-bit uncompressed BMP, which e-ink flashing tools accept.
package generator

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// Generate writes img to the file at output, inferring the format from the
// file extension.
func Generate(output string, img image.Image) error {
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
		return writePNG(output, img)
	case ".bmp":
		return writeBMP(output, img)
	default:
		return fmt.Errorf("unsupported format %q: use .png or .bmp", ext)
	}
}

// GenerateTo writes img to w in the format given by ext (".png" or ".bmp").
// This is useful for in-memory generation (e.g., HTTP responses).
func GenerateTo(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return encodeBMP(w, img)
	default:
		return fmt.Errorf("unsupported format %q: use .png or .bmp", ext)
	}
}
