// Package input reads prompted lines for the interactive session.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineReader prints a prompt and reads one line at a time.
type LineReader struct {
	r      *bufio.Reader
	out    io.Writer
	Prompt string
}

// NewLineReader reads from in and writes prompts to out.
func NewLineReader(in io.Reader, out io.Writer, prompt string) *LineReader {
	return &LineReader{r: bufio.NewReader(in), out: out, Prompt: prompt}
}

// ReadLine returns the next line without its line ending. A final line with no
// newline is returned before io.EOF.
func (l *LineReader) ReadLine() (string, error) {
	if l.Prompt != "" {
		fmt.Fprint(l.out, l.Prompt)
	}

	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
