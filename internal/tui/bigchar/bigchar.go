// Package bigchar renders Chinese characters as large block art using half-block characters.
package bigchar

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Rasterisation size of the source glyph before scaling down.
const (
	fontSize = 64
	fontDPI  = 72
)

// FontPaths are the system CJK fonts tried by Default, in order.
var FontPaths = []string{
	// macOS
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

// ErrNoFont is returned when none of the candidate fonts could be loaded.
var ErrNoFont = errors.New("bigchar: no usable font")

// Renderer draws glyphs from one font face. It is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex // guards face and cache; font.Face is not concurrency-safe
	face  font.Face
	cache map[cacheKey]string
}

type cacheKey struct {
	glyph      string
	cols, rows int
}

// Parse builds a renderer from font data. Collections (.ttc) and
// CFF-flavoured fonts go through opentype; plain TrueType files use the
// freetype rasteriser.
func Parse(data []byte) (*Renderer, error) {
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: fontSize, DPI: fontDPI}); err == nil {
				return newRenderer(face), nil
			}
		}
	}

	if fnt, err := truetype.Parse(data); err == nil {
		return newRenderer(truetype.NewFace(fnt, &truetype.Options{Size: fontSize, DPI: fontDPI})), nil
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bigchar: parsing font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: fontSize, DPI: fontDPI})
	if err != nil {
		return nil, fmt.Errorf("bigchar: creating face: %w", err)
	}
	return newRenderer(face), nil
}

func newRenderer(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[cacheKey]string)}
}

// Load returns a renderer for the first path that holds a usable font.
func Load(paths ...string) (*Renderer, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if r, err := Parse(data); err == nil {
			return r, nil
		}
	}
	return nil, ErrNoFont
}

var defaultRenderer = sync.OnceValue(func() *Renderer {
	r, _ := Load(FontPaths...)
	return r
})

// Default returns a renderer over the first system CJK font found, or nil
// when there is none.
func Default() *Renderer {
	return defaultRenderer()
}

// Render draws the first rune of glyph as cols x rows terminal cells of
// half-block characters. It returns "" for empty input and for runes the
// font has no outline for.
func (r *Renderer) Render(glyph string, cols, rows int) string {
	if r == nil || glyph == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{glyph: glyph, cols: cols, rows: rows}
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	out := r.render([]rune(glyph)[0], cols, rows)
	r.cache[key] = out
	return out
}

func (r *Renderer) render(ch rune, cols, rows int) string {
	bounds, _, ok := r.face.GlyphBounds(ch)
	if !ok {
		return ""
	}
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	padding := 4
	srcWidth := max(glyphWidth+padding*2, fontSize)
	srcHeight := max(glyphHeight+padding*2, fontSize)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	// Centre horizontally and sit the glyph on the bottom padding.
	x := (srcWidth-glyphWidth)/2 - bounds.Min.X.Floor()
	y := srcHeight - padding - bounds.Max.Y.Ceil()

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(string(ch))

	// Two vertical pixels per cell.
	return halfBlocks(scaleDown(src, cols, rows*2), cols, rows)
}

// scaleDown scales a grayscale image using area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}

			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// threshold is the brightness above which a half-cell is drawn.
const threshold = 40

// halfBlocks converts a grayscale image to half-block art.
func halfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return 0
	}
	return img.GrayAt(x, y).Y
}
