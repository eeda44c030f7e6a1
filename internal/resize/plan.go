package resize

import (
	"fmt"
	"math"

	"github.com/anas-shakeel/bmpresize/internal/bmp"
)

// Strategy is the resampling algorithm, chosen once per run.
type Strategy int

const (
	Identity Strategy = iota // scale == 1
	Enlarge                  // scale > 1
	Reduce                   // scale < 1
)

func (s Strategy) String() string {
	switch s {
	case Identity:
		return "identity"
	case Enlarge:
		return "enlarge"
	case Reduce:
		return "reduce"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Plan is everything a strategy needs: the original and scaled geometry,
// the headers to write, and the strategy parameters. It is built once
// before any pixel I/O and passed by value.
type Plan struct {
	Strategy Strategy
	Scale    float64 // Effective scale; enlarge scales are truncated to an integer

	Factor     int // Enlarge: each pixel becomes a Factor x Factor block
	WidthSkip  int // Reduce: drop period along a row
	HeightSkip int // Reduce: drop period across rows

	Source Geometry
	Target Geometry

	FileHeader bmp.BitmapFileHeader // Headers written to the output
	InfoHeader bmp.BitmapInfoHeader
}

// NewPlan validates scale against the source headers and derives the
// scaled headers.
func NewPlan(bfHeader bmp.BitmapFileHeader, biHeader bmp.BitmapInfoHeader, scale float64) (Plan, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return Plan{}, fmt.Errorf("%w: %g (must be a positive number)", ErrInvalidScale, scale)
	}
	if biHeader.Width <= 0 || biHeader.Height == 0 {
		return Plan{}, fmt.Errorf("%w: empty %dx%d image", bmp.ErrUnsupportedFormat, biHeader.Width, biHeader.Height)
	}

	p := Plan{
		Scale:  scale,
		Source: geometryOf(biHeader),
	}

	switch {
	case scale == 1:
		// Copy keeps the original headers byte for byte
		p.Strategy = Identity
		p.Target = p.Source
		p.FileHeader = bfHeader
		p.InfoHeader = biHeader
		return p, nil

	case scale > 1:
		p.Strategy = Enlarge
		p.Factor = int(math.Floor(scale))
		p.Scale = float64(p.Factor)

	default:
		p.Strategy = Reduce
	}

	fh, ih, g, err := Scale(bfHeader, biHeader, p.Scale)
	if err != nil {
		return Plan{}, err
	}
	p.FileHeader, p.InfoHeader, p.Target = fh, ih, g

	if p.Strategy == Reduce {
		if p.WidthSkip, err = skipPeriod(p.Source.Width, p.Target.Width); err != nil {
			return Plan{}, fmt.Errorf("width: %w", err)
		}
		if p.HeightSkip, err = skipPeriod(p.Source.Rows(), p.Target.Rows()); err != nil {
			return Plan{}, fmt.Errorf("height: %w", err)
		}
	}

	return p, nil
}

// skipPeriod returns the drop period that shrinks n to target. The counter
// walk in reduce drops one of every period items, so it keeps
// n - n/period of them; that count has to match target or the headers
// would describe a different image than the one written.
func skipPeriod(n, target int) (int, error) {
	if target <= 0 {
		return 0, fmt.Errorf("%w: %d collapses to %d", ErrInvalidScale, n, target)
	}
	if target >= n {
		return 0, fmt.Errorf("%w: %d does not shrink (got %d)", ErrInvalidScale, n, target)
	}

	period := n / (n - target)
	if kept := n - n/period; kept != target {
		return 0, fmt.Errorf("%w: dropping every %d of %d keeps %d, want %d", ErrInvalidScale, period, n, kept, target)
	}

	return period, nil
}
