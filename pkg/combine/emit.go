package combine

import (
	"bufio"
	"errors"
	"io"
	"strings"

	scanerrors "ctxgen/pkg/errors"
)

const linePrefix = "    "

// emitter writes the content-mode stream.
type emitter struct {
	w *bufio.Writer
}

func (e *emitter) separator() {
	e.w.WriteString(Separator)
	e.w.WriteByte('\n')
}

// header writes the block that introduces a file.
func (e *emitter) header(relPath string) {
	e.separator()
	e.w.WriteString("file: ")
	e.w.WriteString(relPath)
	e.w.WriteByte('\n')
	e.separator()
}

// body copies r line by line, each line indented by four spaces. Line
// endings are normalised to '\n'; a final line without one is still emitted.
func (e *emitter) body(r io.Reader, path string) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			e.w.WriteString(linePrefix)
			e.w.WriteString(line)
			e.w.WriteByte('\n')
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return scanerrors.NewError(scanerrors.IO, "error reading file", path, err)
		}
	}
}
