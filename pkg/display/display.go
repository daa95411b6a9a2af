// Package display abstracts the physical summary-card display. The composer
// hands over a finished canvas; drivers own the refresh cycle from there.
package display

import (
	"image"
	"image/color"

	"github.com/seliot/inkcard/pkg/generator"
)

// Driver is the contract a physical or virtual display must satisfy. SetImage
// accepts a finished canvas; Show pushes the last image through the panel's
// own refresh schedule.
type Driver interface {
	SetBorder(color.Color)
	SetImage(image.Image) error
	Show() error
}

// CleanColors is the default ghost-clearing sequence for color e-ink panels.
var CleanColors = []color.Color{
	color.RGBA{R: 255, A: 255},
	color.Black,
	color.White,
}

// Clean pushes one solid frame per color through the driver. E-ink panels
// need this multi-pass flush between refreshes to avoid ghosting.
func Clean(d Driver, size image.Rectangle, colors ...color.Color) error {
	for _, c := range colors {
		d.SetBorder(c)
		if err := d.SetImage(generator.NewSolidImage(size.Dx(), size.Dy(), c)); err != nil {
			return err
		}
		if err := d.Show(); err != nil {
			return err
		}
	}
	return nil
}
