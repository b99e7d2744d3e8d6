package request

import (
	"fmt"
	"strings"
)

// Header is a single response header as a (name, value) pair. Headers are
// kept as an ordered slice rather than a map so repeated names survive and
// the rendered block lists them one per line.
type Header struct {
	Name  string
	Value string
}

// Response is the normalized result of a network call. It is constructed
// once by the client and never mutated afterwards.
type Response struct {
	// URL is the final URL actually requested, after query merging and
	// scheme normalization.
	URL string
	// Proto is one of HTTP/1.0, HTTP/1.1 or HTTP/2. Unrecognized protocol
	// versions fall back to HTTP/1.1.
	Proto      string
	StatusCode int
	Reason     string
	Headers    []Header
	// Body holds the raw bytes as received, before any decoding.
	Body []byte
}

// DefaultContentType is assumed when the response carries no Content-Type
// header.
const DefaultContentType = "application/octet-stream"

// ContentType returns the value of the first header whose name matches
// Content-Type case-insensitively, or DefaultContentType if absent.
func (r *Response) ContentType() string {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			return h.Value
		}
	}
	return DefaultContentType
}

// Header returns the value of the first header matching key
// case-insensitively, or "" when absent.
func (r *Response) Header(key string) string {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, key) {
			return h.Value
		}
	}
	return ""
}

// StatusLine renders the response status line, e.g. "HTTP/1.1 200 OK".
func (r *Response) StatusLine() string {
	return fmt.Sprintf("%s %d %s", r.Proto, r.StatusCode, r.Reason)
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

// protoVersion maps the wire protocol version to the small enum the
// rendered block uses. Anything unrecognized reads as HTTP/1.1.
func protoVersion(major, minor int) string {
	switch {
	case major == 1 && minor == 0:
		return "HTTP/1.0"
	case major == 1 && minor == 1:
		return "HTTP/1.1"
	case major == 2:
		return "HTTP/2"
	default:
		return "HTTP/1.1"
	}
}
