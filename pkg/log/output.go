package log

import (
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes formatted entries to stderr, guarded by a mutex since
// os.File writes from concurrent goroutines can otherwise interleave.
type ConsoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func (c *ConsoleOutput) writer() io.Writer {
	if c.w != nil {
		return c.w
	}
	return os.Stderr
}

func (c *ConsoleOutput) Write(_ *Entry, formatted []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.writer().Write(formatted)
	return err
}

func (c *ConsoleOutput) Close() error { return nil }

// WriterOutput writes formatted entries to an arbitrary io.Writer, e.g. a
// file opened by the caller.
type WriterOutput struct {
	mu sync.Mutex
	W  io.Writer
}

func NewWriterOutput(w io.Writer) *WriterOutput { return &WriterOutput{W: w} }

func (w *WriterOutput) Write(_ *Entry, formatted []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.W.Write(formatted)
	return err
}

func (w *WriterOutput) Close() error {
	if closer, ok := w.W.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NullOutput discards every entry; useful in tests that only assert on
// return values, not log output.
type NullOutput struct{}

func (NullOutput) Write(*Entry, []byte) error { return nil }
func (NullOutput) Close() error               { return nil }
