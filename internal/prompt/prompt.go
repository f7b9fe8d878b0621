package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	// ErrNoInput is returned when input ends before any text is entered.
	ErrNoInput = errors.New("no input received")
	// ErrClosed is returned by Prompt after Close.
	ErrClosed = errors.New("line reader is closed")
)

// LineReader asks a question on out and reads one line of the answer from in.
// It is acquired once, used for a single prompt, and released with Close.
type LineReader struct {
	in     *bufio.Reader
	out    io.Writer
	closed bool
	mu     sync.Mutex
}

func New(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt writes message and blocks until a line is read. The trailing line
// terminator is stripped; a final line without one is still accepted.
func (r *LineReader) Prompt(message string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrClosed
	}

	if _, err := io.WriteString(r.out, message); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := r.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", ErrNoInput
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Close releases the reader. It is safe to call more than once.
func (r *LineReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.in = nil
	return nil
}
