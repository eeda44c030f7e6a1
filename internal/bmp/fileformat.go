// BMP-specific structs, constants and header codec
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	FileHeaderSize = 14 // Size of BitmapFileHeader on disk
	InfoHeaderSize = 40 // Size of BitmapInfoHeader on disk
	HeaderSize     = FileHeaderSize + InfoHeaderSize
	BitCount       = 24 // The only supported bits-per-pixel
	BytesPerPixel  = BitCount / 8
	CompressionRGB = 0 // BI_RGB (uncompressed)
)

// Signature is the magic "BM" at the start of every bitmap file.
var Signature = [2]byte{0x42, 0x4d}

// ErrUnsupportedFormat is returned for any input that is not a
// 24-bit uncompressed bitmap with a plain 40-byte info header.
var ErrUnsupportedFormat = errors.New("unsupported BMP format: only 24-bit uncompressed is supported")

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader

type BitmapFileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].

type BitmapInfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels (negative: top-down)
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// Rows returns the number of pixel rows regardless of storage order.
func (h BitmapInfoHeader) Rows() int {
	if h.Height < 0 {
		return -int(h.Height)
	}
	return int(h.Height)
}

// TopDown reports whether the first stored row is the visual top row.
func (h BitmapInfoHeader) TopDown() bool {
	return h.Height < 0
}

// RowPadding returns the number of filler bytes after a row of width pixels.
func RowPadding(width int) int {
	return (4 - (width*BytesPerPixel)%4) % 4
}

// Reads both headers from r. A short stream means r is not a bitmap.
func ReadHeaders(r io.Reader) (BitmapFileHeader, BitmapInfoHeader, error) {
	var bfHeader BitmapFileHeader
	var biHeader BitmapInfoHeader

	if err := binary.Read(r, binary.LittleEndian, &bfHeader); err != nil {
		return bfHeader, biHeader, fmt.Errorf("%w: reading file header: %w", ErrUnsupportedFormat, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &biHeader); err != nil {
		return bfHeader, biHeader, fmt.Errorf("%w: reading info header: %w", ErrUnsupportedFormat, err)
	}

	return bfHeader, biHeader, nil
}

// Writes both headers to w
func WriteHeaders(w io.Writer, bfHeader BitmapFileHeader, biHeader BitmapInfoHeader) error {
	if err := binary.Write(w, binary.LittleEndian, bfHeader); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, biHeader)
}

// Validate accepts exactly one profile: "BM" magic, pixel data at byte 54,
// 40-byte info header, 24 bits per pixel, no compression.
func Validate(bfHeader BitmapFileHeader, biHeader BitmapInfoHeader) error {
	switch {
	case bfHeader.Type != Signature:
		return fmt.Errorf("%w: invalid file: not a bitmap (signature %q)", ErrUnsupportedFormat, bfHeader.Type[:])
	case bfHeader.OffBits != HeaderSize:
		return fmt.Errorf("%w: pixel data offset %d, want %d", ErrUnsupportedFormat, bfHeader.OffBits, HeaderSize)
	case biHeader.Size != InfoHeaderSize:
		return fmt.Errorf("%w: info header size %d, want %d", ErrUnsupportedFormat, biHeader.Size, InfoHeaderSize)
	case biHeader.BitCount != BitCount:
		return fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, biHeader.BitCount)
	case biHeader.Compression != CompressionRGB:
		return fmt.Errorf("%w: compression type %d", ErrUnsupportedFormat, biHeader.Compression)
	}
	return nil
}
