package response

import (
	"bytes"
	"strconv"
)

const (
	crlf = "\r\n"

	notFoundBody         = "Error encountered while visiting"
	methodNotAllowedBody = "<html><h1>The request method is not allowed..." + crlf + "</h1></html>"
)

// build renders status line, a single Content-Type header, a blank line and
// the body. No Content-Length is sent; the body ends when the connection closes.
func build(code StatusCode, contentType string, body []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len("HTTP/1.1 000 ") + len(code.Text()) + len(contentType) + len(body) + 32)

	buf.WriteString("HTTP/1.1 ")
	buf.WriteString(strconv.Itoa(int(code)))
	buf.WriteByte(' ')
	buf.WriteString(code.Text())
	buf.WriteString(crlf)
	buf.WriteString("Content-Type: ")
	buf.WriteString(contentType)
	buf.WriteString(crlf)
	buf.WriteString(crlf)
	buf.Write(body)

	return buf.Bytes()
}

// OK returns a 200 response carrying body as-is. The caller guarantees
// mimetype contains no CRLF.
func OK(body []byte, mimetype string) []byte {
	return build(StatusOK, mimetype, body)
}

// MethodNotAllowed returns the fixed 405 response
func MethodNotAllowed() []byte {
	return build(StatusMethodNotAllowed, "text/html", []byte(methodNotAllowedBody))
}

// NotFound returns the fixed 404 response
func NotFound() []byte {
	return build(StatusNotFound, "text/plain", []byte(notFoundBody))
}
