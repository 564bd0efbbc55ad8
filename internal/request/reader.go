package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	ErrHeadTooLarge = errors.New("request head too large")
	ErrInvalidUTF8  = errors.New("request is not valid UTF-8")
	ErrEmptyRequest = errors.New("connection closed before any data")
)

var headTerminator = []byte("\r\n\r\n")

// ReadHead reads from r until the accumulated text contains the header
// terminator. A peer close ends the head early with whatever arrived. A zero
// maxBytes means no limit.
func ReadHead(r io.Reader, maxBytes int) (string, error) {
	chunk := getChunk()
	defer putChunk(chunk)

	var buf []byte
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			// Only the tail can complete a terminator split across reads.
			from := len(buf) - (len(headTerminator) - 1)
			if from < 0 {
				from = 0
			}
			buf = append(buf, chunk[:n]...)

			// Bytes past the terminator do not count against the cap.
			headLen := len(buf)
			idx := bytes.Index(buf[from:], headTerminator)
			if idx >= 0 {
				headLen = from + idx + len(headTerminator)
			}
			if maxBytes > 0 && headLen > maxBytes {
				return "", fmt.Errorf("%w: more than %d bytes", ErrHeadTooLarge, maxBytes)
			}
			if idx >= 0 {
				break
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(buf) == 0 {
					return "", ErrEmptyRequest
				}
				break
			}
			return "", fmt.Errorf("read request: %w", err)
		}
	}

	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}
