package resize

import (
	"errors"
	"fmt"
	"math"

	"github.com/anas-shakeel/bmpresize/internal/bmp"
)

var ErrInvalidScale = errors.New("invalid scale factor")

// Geometry describes the pixel layout of one side of a resize.
type Geometry struct {
	Width   int // Pixels per row
	Height  int // Signed like BitmapInfoHeader.Height
	Padding int // Filler bytes after each row, in [0,3]
}

func geometryOf(biHeader bmp.BitmapInfoHeader) Geometry {
	return Geometry{
		Width:   int(biHeader.Width),
		Height:  int(biHeader.Height),
		Padding: bmp.RowPadding(int(biHeader.Width)),
	}
}

// Rows returns the absolute number of pixel rows.
func (g Geometry) Rows() int {
	if g.Height < 0 {
		return -g.Height
	}
	return g.Height
}

// RowBytes is the length of one row without padding.
func (g Geometry) RowBytes() int {
	return g.Width * bmp.BytesPerPixel
}

// Stride is the length of one row including padding.
func (g Geometry) Stride() int {
	return g.RowBytes() + g.Padding
}

// ImageSize is the length of the whole pixel array.
func (g Geometry) ImageSize() int64 {
	return int64(g.Stride()) * int64(g.Rows())
}

// Scale derives the headers of the resized image. Width and height are
// truncated towards zero, so the sign of height (row order) is kept.
// Every other info header field is copied verbatim.
func Scale(bfHeader bmp.BitmapFileHeader, biHeader bmp.BitmapInfoHeader, scale float64) (bmp.BitmapFileHeader, bmp.BitmapInfoHeader, Geometry, error) {
	width, err := scaleDimension(biHeader.Width, scale)
	if err != nil {
		return bfHeader, biHeader, Geometry{}, fmt.Errorf("width: %w", err)
	}
	height, err := scaleDimension(biHeader.Height, scale)
	if err != nil {
		return bfHeader, biHeader, Geometry{}, fmt.Errorf("height: %w", err)
	}

	biHeader.Width = width
	biHeader.Height = height
	g := geometryOf(biHeader)

	size := g.ImageSize()
	if size+bmp.HeaderSize > math.MaxUint32 {
		return bfHeader, biHeader, Geometry{}, fmt.Errorf("%w: %dx%d image exceeds 4 GiB", ErrInvalidScale, width, height)
	}
	biHeader.SizeImage = uint32(size)
	bfHeader.Size = uint32(size + bmp.HeaderSize)

	return bfHeader, biHeader, g, nil
}

func scaleDimension(n int32, scale float64) (int32, error) {
	v := math.Trunc(float64(n) * scale)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: %d x %g overflows", ErrInvalidScale, n, scale)
	}
	return int32(v), nil
}
