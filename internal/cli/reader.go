package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// ErrInputClosed is returned once the input stream has ended.
var ErrInputClosed = errors.New("input closed")

// LineReader reads lines from a stream without blocking past context cancellation.
// A single goroutine owns the underlying reader; lines are handed over on a channel.
type LineReader struct {
	lines     chan string
	done      chan struct{}
	stop      chan struct{}
	err       error
	src       *bufio.Scanner
	once      sync.Once
	closeOnce sync.Once
}

// NewLineReader creates a reader over r. Reading starts on the first ReadLine.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		src:   bufio.NewScanner(r),
		lines: make(chan string),
		done:  make(chan struct{}),
		stop:  make(chan struct{}),
	}
}

func (r *LineReader) start() {
	r.once.Do(func() {
		go func() {
			defer close(r.done)
			for r.src.Scan() {
				select {
				case r.lines <- r.src.Text():
				case <-r.stop:
					return
				}
			}
			r.err = r.src.Err()
		}()
	})
}

// ReadLine returns the next line with surrounding space trimmed.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	r.start()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line := <-r.lines:
		return strings.TrimSpace(line), nil
	case <-r.done:
		if r.err != nil {
			return "", r.err
		}
		return "", ErrInputClosed
	case <-r.stop:
		return "", ErrInputClosed
	}
}

// Close stops handing out lines. A line read after Close is dropped and the reading
// goroutine exits; it cannot interrupt a read already blocked on the source.
func (r *LineReader) Close() {
	r.closeOnce.Do(func() { close(r.stop) })
}
