package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/anas-shakeel/bmpresize/internal/bmp"
	"github.com/anas-shakeel/bmpresize/internal/resize"
)

func writeBitmap(t *testing.T, path string, width, height int) {
	t.Helper()
	b, err := bmp.CreateBitmap(width, height)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := b.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bmp")
	bad := filepath.Join(dir, "bad.bmp")
	writeBitmap(t, good, 4, 4)
	if err := os.WriteFile(bad, []byte("GIF89a................................................"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.bmp")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"success", []string{"2", good, out}, exitOK},
		{"expression scale", []string{"1/2", good, out}, exitOK},
		{"too few args", []string{"2", good}, exitUsage},
		{"too many args", []string{"2", good, out, out}, exitUsage},
		{"missing input", []string{"2", filepath.Join(dir, "missing.bmp"), out}, exitOpen},
		{"bad scale", []string{"two", good, out}, exitScale},
		{"degenerate scale", []string{"0.1", good, out}, exitScale},
		{"unsupported format", []string{"2", bad, out}, exitUnsupported},
		{"negative scale", []string{"-2", good, out}, exitUsage},
		{"unknown flag", []string{"-bogus", "2", good, out}, exitUsage},
		{"flags before args", []string{"-v", "1", good, out}, exitOK},
		{"help", []string{"-h"}, exitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_Batch(t *testing.T) {
	dir := t.TempDir()
	writeBitmap(t, filepath.Join(dir, "a.bmp"), 4, 4)
	manifest := filepath.Join(dir, "jobs.yml")
	data := `
scale: 2
jobs:
  - input: a.bmp
    output: a-2x.bmp
  - input: missing.bmp
    output: never.bmp
  - input: a.bmp
    output: a-half.bmp
    scale: 1/2
`
	if err := os.WriteFile(manifest, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := run([]string{"-batch", manifest}); got != exitOpen {
		t.Errorf("exit = %d, want %d from the failing job", got, exitOpen)
	}

	// Jobs after the failure still ran
	for name, width := range map[string]int32{"a-2x.bmp": 8, "a-half.bmp": 2} {
		img, err := bmp.ReadBitmap(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if img.BIHeader.Width != width {
			t.Errorf("%s width = %d, want %d", name, img.BIHeader.Width, width)
		}
	}
}

func TestRun_BatchManifestErrors(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "jobs.yml")
	if err := os.WriteFile(manifest, []byte("jobs: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := run([]string{"-batch", manifest}); got != exitUsage {
		t.Errorf("empty manifest: exit = %d, want %d", got, exitUsage)
	}
	if got := run([]string{"-batch", manifest, "2"}); got != exitUsage {
		t.Errorf("batch with positional args: exit = %d, want %d", got, exitUsage)
	}
	if got := run([]string{"-batch", filepath.Join(dir, "nope.yml")}); got != exitOpen {
		t.Errorf("missing manifest: exit = %d, want %d", got, exitOpen)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{fmt.Errorf("x: %w", resize.ErrOpen), exitOpen},
		{fmt.Errorf("x: %w", resize.ErrInvalidScale), exitScale},
		{fmt.Errorf("x: %w", bmp.ErrUnsupportedFormat), exitUnsupported},
		{fmt.Errorf("x: %w", resize.ErrIO), exitIO},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
