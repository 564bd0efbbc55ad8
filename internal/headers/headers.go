package headers

import (
	"fmt"
	"strings"
)

// Headers holds request header fields keyed by lower-cased name. They are
// only used for diagnostics; nothing in request handling depends on them.
type Headers struct {
	fields map[string][]string
	order  []string
}

func NewHeaders() *Headers {
	return &Headers{
		fields: make(map[string][]string),
	}
}

// Get returns the first value for a header
func (h *Headers) Get(key string) (string, bool) {
	values := h.fields[strings.ToLower(key)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// GetAll returns all values for a header
func (h *Headers) GetAll(key string) []string {
	return h.fields[strings.ToLower(key)]
}

// Names returns the header names in first-seen order
func (h *Headers) Names() []string {
	return h.order
}

func (h *Headers) Len() int {
	return len(h.order)
}

func (h *Headers) Add(key, value string) {
	key = strings.ToLower(key)
	if _, ok := h.fields[key]; !ok {
		h.order = append(h.order, key)
	}
	h.fields[key] = append(h.fields[key], value)
}

// ParseLenient parses the field lines of a request head. It stops at the
// first empty line. Malformed lines are skipped and reported, never fatal.
func ParseLenient(block string) (*Headers, []error) {
	h := NewHeaders()
	var errs []error

	for i, line := range strings.Split(block, "\r\n") {
		if line == "" {
			break
		}
		if line[0] == ' ' || line[0] == '\t' {
			errs = append(errs, fmt.Errorf("line %d: obsolete line folding", i+1))
			continue
		}
		name, value, err := parseField(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		h.Add(name, value)
	}

	return h, errs
}

func parseField(line string) (string, string, error) {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", fmt.Errorf("malformed header: no colon")
	}
	if name == "" {
		return "", "", fmt.Errorf("malformed header: empty name")
	}

	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return "", "", fmt.Errorf("invalid character in header name: %q", name[i])
		}
	}

	return name, strings.TrimSpace(value), nil
}

func isTokenChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') ||
		strings.IndexByte("!#$%&'*+-.^_`|~", b) >= 0
}
