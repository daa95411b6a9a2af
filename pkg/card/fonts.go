// fonts.go — Font management for the two card font families.
// Parses each font once with golang.org/x/image/font/opentype and hands out
// cached font.Face values per size. Empty paths fall back to the embedded Go
// fonts; a non-empty path that cannot be loaded is a fatal error.
package card

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrMissingFont reports a font path that could not be resolved to a usable
// font. There is no substitution for an explicitly requested font.
var ErrMissingFont = errors.New("missing font resource")

// Family selects one of the two card font families.
type Family int

const (
	TitleFamily Family = iota
	BodyFamily
)

type faceKey struct {
	family Family
	size   float64
}

// FontManager loads the title and body fonts and serves faces by size.
type FontManager struct {
	title *opentype.Font
	body  *opentype.Font
	dpi   float64

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFontManager parses the title and body fonts. An empty path selects the
// embedded fallback: Go Bold for titles, Go Regular for body text.
func NewFontManager(titlePath, bodyPath string) (*FontManager, error) {
	title, err := loadFont(titlePath, gobold.TTF)
	if err != nil {
		return nil, err
	}
	body, err := loadFont(bodyPath, goregular.TTF)
	if err != nil {
		return nil, err
	}

	return &FontManager{
		title: title,
		body:  body,
		dpi:   72,
		faces: make(map[faceKey]font.Face),
	}, nil
}

func loadFont(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingFont, err)
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrMissingFont, path, err)
	}
	return parsed, nil
}

// Face returns a font.Face for the family at the given size. Faces are cached
// so repeated fit probes at the same size reuse them.
func (fm *FontManager) Face(family Family, size float64) (font.Face, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	key := faceKey{family, size}
	if face, ok := fm.faces[key]; ok {
		return face, nil
	}

	src := fm.body
	if family == TitleFamily {
		src = fm.title
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     fm.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face at %g: %w", size, err)
	}

	fm.faces[key] = face
	return face, nil
}
