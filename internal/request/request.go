package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Brownie44l1/webroot/internal/headers"
)

var (
	ErrUnsupportedMethod = errors.New("unsupported method")
	ErrMalformedRequest  = errors.New("malformed request")
)

// Request is the parsed form of one request head
type Request struct {
	Raw     string
	Method  string
	Path    string
	Headers *headers.Headers

	// HeaderErrors lists header lines that were skipped as malformed.
	HeaderErrors []error
}

// Parse extracts the method and request-target from raw request text.
//
// Only GET is served, and the check is a plain substring test for "GET"
// anywhere in raw, not a comparison against the first token. A POST whose
// target contains "GET" therefore passes. The target is the second
// whitespace-separated token of the text, taken verbatim.
func Parse(raw string) (*Request, error) {
	if !strings.Contains(raw, "GET") {
		return nil, ErrUnsupportedMethod
	}

	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %d token(s) in request", ErrMalformedRequest, len(fields))
	}

	req := &Request{
		Raw:    raw,
		Method: fields[0],
		Path:   fields[1],
	}

	if _, block, ok := strings.Cut(raw, "\r\n"); ok {
		req.Headers, req.HeaderErrors = headers.ParseLenient(block)
	} else {
		req.Headers = headers.NewHeaders()
	}

	return req, nil
}

// Host returns the Host header, if the client sent one
func (r *Request) Host() string {
	v, _ := r.Headers.Get("host")
	return v
}

func (r *Request) UserAgent() string {
	v, _ := r.Headers.Get("user-agent")
	return v
}
