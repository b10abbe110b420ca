package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Copier copies files with a plain io.Copy. None of the corpus's example
// repos pull in a third-party copy helper for this; os/io is the idiomatic
// standard-library answer and there's nothing domain-specific to wrap.
type Copier struct{}

// NewCopier creates a Copier.
func NewCopier() *Copier {
	return &Copier{}
}

// Copy copies src to dst, creating dst's parent directory if needed and
// preserving src's mode bits.
func (c *Copier) Copy(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open copy source"), "path", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat copy source"), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create copy destination directory"), "path", dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open copy destination"), "path", dst)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to copy file"), "source", src), "destination", dst)
	}
	return nil
}
