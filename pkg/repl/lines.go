package repl

import (
	"bufio"
	"context"
	"io"
	"sync"
)

const maxLineBytes = 1 << 20

// LineReader reads lines from an input stream in the background so that a
// pending read can be abandoned when the context is cancelled. Reading
// starts on the first call to ReadLine.
type LineReader struct {
	r     io.Reader
	once  sync.Once
	lines chan string
	err   error
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: r, lines: make(chan string)}
}

func (l *LineReader) start() {
	go func() {
		sc := bufio.NewScanner(l.r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for sc.Scan() {
			l.lines <- sc.Text()
		}
		l.err = sc.Err()
		close(l.lines)
	}()
}

// ReadLine returns the next line without its newline. It returns io.EOF
// when input ends and ctx.Err() when ctx is done first.
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(l.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-l.lines:
		if !ok {
			if l.err != nil {
				return "", l.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}
