package response

// StatusCode represents the HTTP status codes this server can emit
type StatusCode int

const (
	StatusOK               StatusCode = 200
	StatusNotFound         StatusCode = 404
	StatusMethodNotAllowed StatusCode = 405
)

var statusText = map[StatusCode]string{
	StatusOK:               "OK",
	StatusNotFound:         "Not Found",
	StatusMethodNotAllowed: "Method Not Allowed",
}

// Text returns the reason phrase for the status code
func (c StatusCode) Text() string {
	if text, ok := statusText[c]; ok {
		return text
	}
	return "Unknown"
}
