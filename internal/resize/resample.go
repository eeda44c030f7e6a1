package resize

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/anas-shakeel/bmpresize/internal/bmp"
)

const pixelSize = bmp.BytesPerPixel

// ErrIO marks a read or write failure after the headers were accepted,
// including pixel data that ends early.
var ErrIO = errors.New("i/o failure during processing")

// rowReader reads source rows and skips their padding.
type rowReader struct {
	r       *bufio.Reader
	padding int
}

func (rr rowReader) read(row []byte, index int) error {
	if _, err := io.ReadFull(rr.r, row); err != nil {
		return fmt.Errorf("%w: reading source row %d: %w", ErrIO, index, eof(err))
	}
	if _, err := rr.r.Discard(rr.padding); err != nil {
		return fmt.Errorf("%w: skipping padding of source row %d: %w", ErrIO, index, eof(err))
	}
	return nil
}

// rowWriter writes destination rows followed by zero padding.
type rowWriter struct {
	w       *bufio.Writer
	padding []byte
}

func (rw rowWriter) write(row []byte) error {
	if _, err := rw.w.Write(row); err != nil {
		return fmt.Errorf("%w: writing row: %w", ErrIO, err)
	}
	if _, err := rw.w.Write(rw.padding); err != nil {
		return fmt.Errorf("%w: writing row padding: %w", ErrIO, err)
	}
	return nil
}

func eof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func newRowIO(r *bufio.Reader, w *bufio.Writer, p Plan) (rowReader, rowWriter) {
	return rowReader{r: r, padding: p.Source.Padding},
		rowWriter{w: w, padding: make([]byte, p.Target.Padding)}
}

// copyRows streams every row unchanged. Source padding is dropped and
// replaced by zeros.
func copyRows(r *bufio.Reader, w *bufio.Writer, p Plan) error {
	src, dst := newRowIO(r, w, p)
	row := make([]byte, p.Source.RowBytes())

	for i := 0; i < p.Source.Rows(); i++ {
		if err := src.read(row, i); err != nil {
			return err
		}
		if err := dst.write(row); err != nil {
			return err
		}
	}
	return nil
}

// enlarge turns every source pixel into a Factor x Factor block.
func enlarge(r *bufio.Reader, w *bufio.Writer, p Plan) error {
	src, dst := newRowIO(r, w, p)
	n := p.Factor
	row := make([]byte, p.Source.RowBytes())
	scaled := make([]byte, p.Target.RowBytes())

	for i := 0; i < p.Source.Rows(); i++ {
		if err := src.read(row, i); err != nil {
			return err
		}

		// Duplicate horizontally
		out := scaled[:0]
		for x := 0; x < len(row); x += pixelSize {
			for k := 0; k < n; k++ {
				out = append(out, row[x:x+pixelSize]...)
			}
		}

		// Duplicate vertically
		for k := 0; k < n; k++ {
			if err := dst.write(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// reduce drops every WidthSkip-th column and every HeightSkip-th row.
// Counters are 1-based and wrap back to 1 after reaching skip+1; a
// pixel survives only if neither counter sits on its skip value.
func reduce(r *bufio.Reader, w *bufio.Writer, p Plan) error {
	src, dst := newRowIO(r, w, p)
	row := make([]byte, p.Source.RowBytes())
	kept := make([]byte, 0, p.Target.RowBytes())

	heightCounter := 1
	for i := 0; i < p.Source.Rows(); i++ {
		if heightCounter == p.HeightSkip+1 {
			heightCounter = 1
		}

		if err := src.read(row, i); err != nil {
			return err
		}

		if heightCounter != p.HeightSkip {
			out := kept[:0]
			widthCounter := 1
			for x := 0; x < len(row); x += pixelSize {
				if widthCounter == p.WidthSkip+1 {
					widthCounter = 1
				}
				if widthCounter != p.WidthSkip {
					out = append(out, row[x:x+pixelSize]...)
				}
				widthCounter++
			}

			if err := dst.write(out); err != nil {
				return err
			}
		}

		heightCounter++
	}
	return nil
}
