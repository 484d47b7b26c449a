// File: pkg/combine/binary.go
package combine

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"

	scanerrors "ctxgen/pkg/errors"
)

// textMIME is the root of every MIME type ClassifySample accepts.
const textMIME = "text/plain"

// IsText reports whether the file at path looks like text, judging by its
// first SampleSize bytes.
func IsText(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, scanerrors.NewError(scanerrors.IO, "error opening file", path, err)
	}
	defer file.Close()

	return sniff(file, path)
}

// sniff classifies the sample at the current position of r.
func sniff(r io.Reader, path string) (bool, error) {
	buffer := make([]byte, SampleSize)
	n, err := io.ReadFull(r, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, scanerrors.NewError(scanerrors.IO, "error reading file", path, err)
	}
	return ClassifySample(buffer[:n]), nil
}

// ClassifySample reports whether sample looks like text. An empty sample is
// text and any NUL byte makes it binary. Otherwise the sample is text when
// its detected MIME type is text/plain or descends from it, so JSON, HTML
// and legacy single-byte encodings count as text.
func ClassifySample(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}

	for m := mimetype.Detect(sample); m != nil; m = m.Parent() {
		if m.Is(textMIME) {
			return true
		}
	}
	return false
}
