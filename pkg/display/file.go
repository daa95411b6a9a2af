// file.go — File-backed display driver for development machines.
package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/seliot/inkcard/pkg/generator"
)

// FileDriver writes frames to an image file instead of hardware. The border
// color is ignored; Show encodes the last image set.
type FileDriver struct {
	Path string
	img  image.Image
}

func (d *FileDriver) SetBorder(color.Color) {}

func (d *FileDriver) SetImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("set image: nil image")
	}
	d.img = img
	return nil
}

func (d *FileDriver) Show() error {
	if d.img == nil {
		return fmt.Errorf("show: no image set")
	}
	return generator.Generate(d.Path, d.img)
}
