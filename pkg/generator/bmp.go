// bmp.go - 24-bit uncompressed BMP writer.
// Manually constructs the BMP file headers (BITMAPFILEHEADER + BITMAPINFOHEADER)
// and handles BGR pixel ordering and bottom-up rows as required by the BMP
// specification.
package generator

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
)

const bmpHeaderSize = 54

// writeBMP encodes img to a BMP file at the given path.
func writeBMP(output string, img image.Image) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := encodeBMP(w, img); err != nil {
		return fmt.Errorf("encode BMP: %w", err)
	}
	return w.Flush()
}

func encodeBMP(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	rowSize := (width*3 + 3) &^ 3 // rows pad to 4-byte boundaries
	pixelDataSize := rowSize * height
	fileSize := bmpHeaderSize + pixelDataSize

	var header [bmpHeaderSize]byte
	header[0] = 'B'
	header[1] = 'M'
	binary.LittleEndian.PutUint32(header[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(header[10:14], bmpHeaderSize) // pixel data offset
	binary.LittleEndian.PutUint32(header[14:18], 40)            // info header size
	binary.LittleEndian.PutUint32(header[18:22], uint32(width))
	binary.LittleEndian.PutUint32(header[22:26], uint32(height))
	binary.LittleEndian.PutUint16(header[26:28], 1)  // planes
	binary.LittleEndian.PutUint16(header[28:30], 24) // bits per pixel
	binary.LittleEndian.PutUint32(header[34:38], uint32(pixelDataSize))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	row := make([]byte, rowSize)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- { // BMP rows run bottom-up
		i := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			row[i] = byte(bl >> 8) // BGR order
			row[i+1] = byte(g >> 8)
			row[i+2] = byte(r >> 8)
			i += 3
		}
		for ; i < rowSize; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
