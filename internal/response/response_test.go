package response

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	got := OK([]byte("<html></html>"), "text/html")
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n<html></html>", string(got))

	// Empty body still ends with the blank line
	got = OK(nil, "text/plain")
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\n", string(got))

	// Binary bodies pass through untouched
	body := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	got = OK(body, "image/png")
	assert.True(t, bytes.HasSuffix(got, body))
}

func TestNotFound(t *testing.T) {
	assert.Equal(t,
		"HTTP/1.1 404 Not Found\r\nContent-Type: text/plain\r\n\r\nError encountered while visiting",
		string(NotFound()))
}

func TestMethodNotAllowed(t *testing.T) {
	assert.Equal(t,
		"HTTP/1.1 405 Method Not Allowed\r\nContent-Type: text/html\r\n\r\n"+
			"<html><h1>The request method is not allowed...\r\n</h1></html>",
		string(MethodNotAllowed()))
}

func TestNoContentLength(t *testing.T) {
	for _, msg := range [][]byte{OK([]byte("x"), "text/plain"), NotFound(), MethodNotAllowed()} {
		assert.NotContains(t, string(msg), "Content-Length")
		assert.NotContains(t, string(msg), "Connection")
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.Text())
	assert.Equal(t, "Not Found", StatusNotFound.Text())
	assert.Equal(t, "Method Not Allowed", StatusMethodNotAllowed.Text())
	assert.Equal(t, "Unknown", StatusCode(999).Text())
}

func TestWriterWritesOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	err := w.Write(NotFound())
	require.NoError(t, err)
	assert.Equal(t, string(NotFound()), buf.String())
	assert.Equal(t, int64(len(NotFound())), w.BytesWritten())

	err = w.Write(OK([]byte("again"), "text/plain"))
	assert.ErrorIs(t, err, ErrAlreadyWritten)
	assert.Equal(t, string(NotFound()), buf.String())
}

func TestWriterShortWrites(t *testing.T) {
	sw := &trickleWriter{max: 3}
	w := NewWriter(sw)

	msg := OK([]byte("hello world"), "text/plain")
	require.NoError(t, w.Write(msg))
	assert.Equal(t, string(msg), sw.buf.String())
	assert.False(t, w.HadError())
}

func TestWriterError(t *testing.T) {
	boom := errors.New("broken pipe")
	w := NewWriter(&trickleWriter{max: 4, failAfter: 8, err: boom})

	err := w.Write(NotFound())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, w.HadError())
	assert.Equal(t, int64(8), w.BytesWritten())

	assert.ErrorIs(t, w.Write(NotFound()), ErrAlreadyWritten)
}

// trickleWriter accepts at most max bytes per call and fails once
// failAfter bytes have been taken
type trickleWriter struct {
	buf       bytes.Buffer
	max       int
	failAfter int
	err       error
}

func (t *trickleWriter) Write(p []byte) (int, error) {
	if t.err != nil && t.buf.Len() >= t.failAfter {
		return 0, t.err
	}
	if len(p) > t.max {
		p = p[:t.max]
	}
	return t.buf.Write(p)
}
