// Package render turns a Response, or any pipeline failure, into the single
// canonical text block handed back to the caller: a status line, an optional
// header block, a blank-line separator and the body, CRLF-separated to read
// like a raw HTTP exchange.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jasonpaulso/mcp-server-requests/packages/content"
	"github.com/jasonpaulso/mcp-server-requests/packages/request"
)

// Mode selects how a text/html body is transformed before serialization.
// It has no effect on other content types.
type Mode string

const (
	// ModeRaw passes the body through unchanged.
	ModeRaw Mode = "raw"
	// ModeBasicClean strips non-visible elements, keeping all attributes.
	ModeBasicClean Mode = "basic_clean"
	// ModeStrictClean strips non-visible elements and prunes attributes to
	// an allow-list of id, src and href.
	ModeStrictClean Mode = "strict_clean"
	// ModeMarkdown converts the HTML to Markdown.
	ModeMarkdown Mode = "markdown"
)

// Modes lists every valid Mode value.
var Modes = []Mode{ModeRaw, ModeBasicClean, ModeStrictClean, ModeMarkdown}

// StrictAllowedAttrs is the attribute allow-list ModeStrictClean keeps.
var StrictAllowedAttrs = []string{"id", "src", "href"}

// ParseMode validates a mode name coming from a tool argument or flag.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", request.NewArgumentError(
		fmt.Sprintf("invalid return_content value: %q, must be one of %v", s, Modes), nil)
}

// decodeRule pairs a content-type predicate with the decoder to apply.
// Rules are evaluated top to bottom; the first match wins.
type decodeRule struct {
	match  func(contentType string) bool
	decode func(resp *request.Response, contentType string) (string, error)
}

var decodeRules = []decodeRule{
	{matchPrefix("text/"), decodeUTF8},
	{matchPrefix("application/json"), decodeUTF8},
}

func matchPrefix(prefix string) func(string) bool {
	return func(contentType string) bool {
		return strings.HasPrefix(contentType, prefix)
	}
}

func decodeUTF8(resp *request.Response, contentType string) (string, error) {
	if !utf8.Valid(resp.Body) {
		return "", request.NewResponseError(resp,
			fmt.Sprintf("response content type is %q, but not utf-8 encoded", contentType),
			"not utf-8 encoded", nil)
	}
	return string(resp.Body), nil
}

// Render serializes the response into the canonical text block. The body is
// decoded according to its content type and, for text/html, transformed per
// mode. Content types outside text/* and application/json cannot be
// rendered and yield a ResponseError carrying the response.
func Render(resp *request.Response, mode Mode, includeHeaders bool) (string, error) {
	contentType := resp.ContentType()

	var body string
	decoded := false
	for _, rule := range decodeRules {
		if rule.match(contentType) {
			text, err := rule.decode(resp, contentType)
			if err != nil {
				return "", err
			}
			body = text
			decoded = true
			break
		}
	}
	if !decoded {
		return "", request.NewResponseError(resp,
			fmt.Sprintf("response content type is %q, cannot be converted to a string", contentType),
			fmt.Sprintf("content type %q is not supported", contentType), nil)
	}

	if strings.HasPrefix(contentType, "text/html") {
		body = transformHTML(body, mode)
	}

	var b strings.Builder
	b.WriteString(resp.StatusLine())
	b.WriteString("\r\n")
	if includeHeaders {
		for _, h := range resp.Headers {
			b.WriteString(h.Name)
			b.WriteString(": ")
			b.WriteString(h.Value)
			b.WriteString("\r\n")
		}
	}
	b.WriteString("\r\n")
	b.WriteString(body)

	return b.String(), nil
}

// transformHTML applies the selected cleaning. The transformer contract is
// best effort, so a conversion failure falls back to the untransformed text.
func transformHTML(html string, mode Mode) string {
	var out string
	var err error
	switch mode {
	case ModeBasicClean:
		out, err = content.Clean(html)
	case ModeStrictClean:
		out, err = content.CleanWithAllowedAttrs(html, StrictAllowedAttrs)
	case ModeMarkdown:
		out, err = content.ToMarkdown(html)
	default:
		return html
	}
	if err != nil {
		return html
	}
	return out
}
