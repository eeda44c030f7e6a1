// bmpresize enlarges, shrinks or copies 24-bit uncompressed bitmaps.
//
//	bmpresize [-v] [-preview] <scale> <infile> <outfile>
//	bmpresize [-v] [-preview] -batch jobs.yml
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/anas-shakeel/bmpresize/internal/batch"
	"github.com/anas-shakeel/bmpresize/internal/bmp"
	"github.com/anas-shakeel/bmpresize/internal/resize"
	"github.com/anas-shakeel/bmpresize/internal/utils"
)

// Exit codes
const (
	exitOK          = 0
	exitUsage       = 1
	exitOpen        = 2
	exitScale       = 3
	exitUnsupported = 4
	exitIO          = 5
)

type options struct {
	verbose bool
	preview bool
	batch   string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bmpresize: ")

	os.Exit(run(os.Args[1:]))
}

// run parses the command line and returns the process exit status.
// Flag errors, including a negative scale read as a flag, are usage errors.
func run(arguments []string) int {
	var opts options
	fs := flag.NewFlagSet("bmpresize", flag.ContinueOnError)
	fs.BoolVar(&opts.verbose, "v", false, "print headers of the input and output bitmaps")
	fs.BoolVar(&opts.preview, "preview", false, "print the output bitmap as colored blocks (small images only)")
	fs.StringVar(&opts.batch, "batch", "", "run the jobs listed in a YAML manifest")
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintln(out, "Usage: bmpresize [flags] f infile outfile")
		fmt.Fprintln(out, "       bmpresize [flags] -batch jobs.yml")
		fmt.Fprintln(out, "\nf is a positive scale factor or expression, e.g. 2, 0.5, 3/4")
		fs.PrintDefaults()
	}
	if err := fs.Parse(arguments); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	args := fs.Args()

	if opts.batch != "" {
		if len(args) != 0 {
			fs.Usage()
			return exitUsage
		}
		return runBatch(opts)
	}

	if len(args) != 3 {
		fs.Usage()
		return exitUsage
	}

	if err := runJob(opts, args[0], args[1], args[2]); err != nil {
		log.Print(err)
		return exitCode(err)
	}
	return exitOK
}

// Jobs run in order; a failing job does not stop the rest. The first
// failure decides the exit code.
func runBatch(opts options) int {
	manifest, err := batch.Load(opts.batch)
	if err != nil {
		log.Print(err)
		if errors.Is(err, batch.ErrManifest) {
			return exitUsage
		}
		return exitOpen
	}

	code := exitOK
	for i, job := range manifest.Jobs {
		if err := runJob(opts, job.Scale, job.Input, job.Output); err != nil {
			log.Printf("job %d: %v", i+1, err)
			if code == exitOK {
				code = exitCode(err)
			}
		}
	}
	return code
}

func runJob(opts options, scaleExpr, inPath, outPath string) error {
	scale, err := utils.EvalNumber(scaleExpr)
	if err != nil {
		return fmt.Errorf("%w: %w", resize.ErrInvalidScale, err)
	}

	plan, err := resize.ResizeFile(scale, inPath, outPath)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	if opts.verbose {
		log.Printf("%s -> %s: %s x%g, %dx%d -> %dx%d", inPath, outPath, plan.Strategy, plan.Scale,
			plan.Source.Width, plan.Source.Height, plan.Target.Width, plan.Target.Height)
		bmp.PrintMetadata(os.Stdout, outPath, plan.FileHeader, plan.InfoHeader)
	}

	if opts.preview {
		img, err := bmp.ReadBitmap(outPath)
		if err != nil {
			return fmt.Errorf("%w: preview %s: %w", resize.ErrIO, outPath, err)
		}
		img.PrintBitmap(os.Stdout)
	}
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, resize.ErrOpen):
		return exitOpen
	case errors.Is(err, resize.ErrInvalidScale):
		return exitScale
	case errors.Is(err, bmp.ErrUnsupportedFormat):
		return exitUnsupported
	case errors.Is(err, resize.ErrIO):
		return exitIO
	}
	return exitIO
}
