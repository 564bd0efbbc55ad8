package response

import (
	"errors"
	"fmt"
	"io"
)

var ErrAlreadyWritten = errors.New("response already written")

type writerState int

const (
	stateStart writerState = iota
	stateWritten
	stateFailed
)

// Writer delivers exactly one response to an io.Writer
type Writer struct {
	w       io.Writer
	state   writerState
	written int64
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// Write sends msg in full, retrying on short writes. A second call fails
// with ErrAlreadyWritten since a connection carries a single response.
func (w *Writer) Write(msg []byte) error {
	if w.state != stateStart {
		return ErrAlreadyWritten
	}

	for len(msg) > 0 {
		n, err := w.w.Write(msg)
		w.written += int64(n)
		if err != nil {
			w.state = stateFailed
			return fmt.Errorf("write response: %w", err)
		}
		if n == 0 {
			w.state = stateFailed
			return fmt.Errorf("write response: %w", io.ErrShortWrite)
		}
		msg = msg[n:]
	}

	w.state = stateWritten
	return nil
}

// BytesWritten reports how many bytes reached the underlying writer
func (w *Writer) BytesWritten() int64 {
	return w.written
}

// HadError reports whether the write failed part way
func (w *Writer) HadError() bool {
	return w.state == stateFailed
}
