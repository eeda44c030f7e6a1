// Package resize scales 24-bit bitmaps by duplicating or dropping whole
// pixels. Nothing is interpolated: every output pixel is a copy of an
// input pixel.
package resize

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/anas-shakeel/bmpresize/internal/bmp"
)

var ErrOpen = errors.New("cannot open file")

// Resize reads a bitmap from r and writes it to w scaled by scale.
// The headers are validated before any pixel is read, so a rejected
// input leaves w untouched.
func Resize(r io.Reader, w io.Writer, scale float64) (Plan, error) {
	br := bufio.NewReader(r)

	bfHeader, biHeader, err := bmp.ReadHeaders(br)
	if err != nil {
		return Plan{}, err
	}
	if err := bmp.Validate(bfHeader, biHeader); err != nil {
		return Plan{}, err
	}

	plan, err := NewPlan(bfHeader, biHeader, scale)
	if err != nil {
		return Plan{}, err
	}

	bw := bufio.NewWriter(w)
	if err := bmp.WriteHeaders(bw, plan.FileHeader, plan.InfoHeader); err != nil {
		return plan, fmt.Errorf("%w: writing headers: %w", ErrIO, err)
	}

	switch plan.Strategy {
	case Identity:
		err = copyRows(br, bw, plan)
	case Enlarge:
		err = enlarge(br, bw, plan)
	case Reduce:
		err = reduce(br, bw, plan)
	}
	if err != nil {
		return plan, err
	}

	if err := bw.Flush(); err != nil {
		return plan, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return plan, nil
}

// ResizeFile resizes the bitmap at inPath into outPath. Both files are
// opened before anything is read; on a rejected input outPath is left
// empty. outPath must not name the input file.
func ResizeFile(scale float64, inPath, outPath string) (plan Plan, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer in.Close()

	if sameFile(in, inPath, outPath) {
		return Plan{}, fmt.Errorf("%w: output %s is the input file", ErrOpen, outPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrIO, outPath, cerr)
		}
	}()

	return Resize(in, out, scale)
}

// sameFile reports whether outPath refers to the already opened input,
// either by path or through a link.
func sameFile(in *os.File, inPath, outPath string) bool {
	inAbs, err1 := filepath.Abs(inPath)
	outAbs, err2 := filepath.Abs(outPath)
	if err1 == nil && err2 == nil && inAbs == outAbs {
		return true
	}

	inInfo, err := in.Stat()
	if err != nil {
		return false
	}
	outInfo, err := os.Stat(outPath)
	if err != nil {
		return false
	}
	return os.SameFile(inInfo, outInfo)
}
