// bmp package implements a 24-bit bitmap reader and writer
package bmp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anas-shakeel/bmpresize/internal/utils"
)

type Pixel struct {
	B, G, R byte
}

// BitmapImage holds a fully decoded bitmap. Pixels[0] is always the
// visual top row, whatever the storage order in the file.
type BitmapImage struct {
	Filename string
	BFHeader BitmapFileHeader
	BIHeader BitmapInfoHeader
	Stride   int
	Padding  int
	Pixels   [][]Pixel
}

// Returns the Pixels in bytes as BGR (Blue, Green, Red)
func (p *Pixel) BytesBGR() []byte {
	return []byte{p.B, p.G, p.R}
}

// Creates and returns a bottom-up bitmap image (24 bit uncompressed)
func CreateBitmap(width, height int) (*BitmapImage, error) {
	if width <= 0 {
		return nil, errors.New("width must be greater than 0")
	} else if height <= 0 {
		return nil, errors.New("height must be greater than 0")
	}

	padding := RowPadding(width)
	stride := width*BytesPerPixel + padding
	biSizeImage := uint32(stride * height)
	fileSize := HeaderSize + biSizeImage // Size of the whole bitmap file

	// NewBitmap Headers
	bfh := BitmapFileHeader{Type: Signature, OffBits: HeaderSize, Size: fileSize}
	bih := BitmapInfoHeader{Size: InfoHeaderSize, Width: int32(width), Height: int32(height), Planes: 1, BitCount: BitCount, SizeImage: biSizeImage}

	// Create the pixels 2d slice
	pixels := make([][]Pixel, height)
	for i := 0; i < height; i++ {
		pixels[i] = make([]Pixel, width)
	}

	return &BitmapImage{
		Stride:   stride,
		Padding:  padding,
		BFHeader: bfh,
		BIHeader: bih,
		Pixels:   pixels,
	}, nil
}

// Decodes a whole bitmap from r
func Decode(r io.Reader) (*BitmapImage, error) {
	bfHeader, biHeader, err := ReadHeaders(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(bfHeader, biHeader); err != nil {
		return nil, err
	}
	if biHeader.Width <= 0 || biHeader.Height == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrUnsupportedFormat, biHeader.Width, biHeader.Height)
	}

	width := int(biHeader.Width)
	height := biHeader.Rows()
	padding := RowPadding(width)

	pixels := make([][]Pixel, height)
	for i := 0; i < height; i++ {
		pixels[i] = make([]Pixel, width)
	}

	// Headers end exactly at OffBits, so the pixel array follows directly
	for i := 0; i < height; i++ {
		rowIndex := height - i - 1
		if biHeader.TopDown() {
			rowIndex = i
		}

		// Read pixels of current row (excluding padding)
		if err := binary.Read(r, binary.LittleEndian, pixels[rowIndex]); err != nil {
			return nil, fmt.Errorf("reading row %d: %w", i, err)
		}

		// Skip over padding bytes
		if _, err := io.CopyN(io.Discard, r, int64(padding)); err != nil {
			return nil, fmt.Errorf("reading row %d padding: %w", i, err)
		}
	}

	return &BitmapImage{
		BFHeader: bfHeader,
		BIHeader: biHeader,
		Stride:   width*BytesPerPixel + padding,
		Padding:  padding,
		Pixels:   pixels,
	}, nil
}

// Reads a Bitmap file
func ReadBitmap(filename string) (*BitmapImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	b, err := Decode(bufio.NewReader(file))
	if err != nil {
		return nil, err
	}
	b.Filename = filename
	return b, nil
}

// Encodes the bitmap to w, honouring the storage order of BIHeader.Height
func (b *BitmapImage) Encode(w io.Writer) error {
	height := len(b.Pixels)
	paddingBytes := make([]byte, b.Padding)

	// Create a buffer (to reduce syscalls)
	bw := bufio.NewWriter(w)

	if err := WriteHeaders(bw, b.BFHeader, b.BIHeader); err != nil {
		return err
	}

	// BottomUp: last row first
	for i := 0; i < height; i++ {
		row := b.Pixels[height-i-1]
		if b.BIHeader.TopDown() {
			row = b.Pixels[i]
		}
		for col := range row {
			if _, err := bw.Write(row[col].BytesBGR()); err != nil {
				return err
			}
		}
		if _, err := bw.Write(paddingBytes); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Print the bitmap in terminal. Use for small images only
func (b *BitmapImage) PrintBitmap(w io.Writer) {
	for _, row := range b.Pixels {
		for _, pixel := range row {
			fmt.Fprint(w, utils.ColoredBlock("  ", int(pixel.R), int(pixel.G), int(pixel.B)))
		}
		fmt.Fprintln(w)
	}
}

// Print the bitmap metadata in human-readable format
func PrintMetadata(w io.Writer, name string, bfHeader BitmapFileHeader, biHeader BitmapInfoHeader) {
	padding := RowPadding(int(biHeader.Width))
	fmt.Fprintf(w, "Filename: \t%v\n", name)
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", bfHeader.Size)
	fmt.Fprintf(w, "Width: \t\t%v px\n", biHeader.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", biHeader.Height)
	fmt.Fprintf(w, "BitCount: \t%vbits\n", biHeader.BitCount)
	fmt.Fprintf(w, "PixelOffset: \t%v bytes\n", bfHeader.OffBits)
	fmt.Fprintf(w, "PixelCount: \t%v pixels\n", int(biHeader.Width)*biHeader.Rows())
	fmt.Fprintf(w, "Stride: \t%v bytes\n", int(biHeader.Width)*BytesPerPixel+padding)
	fmt.Fprintf(w, "Padding: \t%v bytes\n", padding)
}
