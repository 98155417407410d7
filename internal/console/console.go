// Package console handles the terminal side of the calculator: reading one
// expression line and reporting failures on the error stream.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/GriffinCanCode/calc/internal/expr"
)

// DefaultLineLimit is the longest accepted input line in bytes, excluding
// the line terminator.
const DefaultLineLimit = 1024

// ReadLine reads a single line from r. The trailing LF or CRLF is optional
// at EOF and does not count toward limit. Every failure wraps expr.ErrRead.
func ReadLine(r io.Reader, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultLineLimit
	}

	br := bufio.NewReaderSize(r, limit+len("\r\n"))
	line, err := br.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		if len(line) == 0 {
			return "", fmt.Errorf("%w: no input", expr.ErrRead)
		}
	case errors.Is(err, bufio.ErrBufferFull):
		return "", fmt.Errorf("%w: line exceeds %d bytes", expr.ErrRead, limit)
	default:
		return "", fmt.Errorf("%w: %v", expr.ErrRead, err)
	}

	text := strings.TrimSuffix(strings.TrimSuffix(string(line), "\n"), "\r")
	if len(text) > limit {
		return "", fmt.Errorf("%w: line exceeds %d bytes", expr.ErrRead, limit)
	}
	return text, nil
}

// Report writes a one-line diagnostic for err to w, in red when w is a
// terminal.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	c := color.New(color.FgRed)
	if !isTerminal(w) {
		c.DisableColor()
	}
	c.Fprintf(w, "calc: %v\n", err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
