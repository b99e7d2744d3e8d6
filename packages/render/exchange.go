package render

import (
	"context"

	"github.com/jasonpaulso/mcp-server-requests/packages/request"
)

// Exchange runs one full request/render cycle and funnels every failure
// through FormatError. The result is always exactly one string, whatever
// happened on the way.
func Exchange(ctx context.Context, c *request.Client, method, url string, opts *request.Options, mode Mode, includeHeaders bool) string {
	resp, err := c.Do(ctx, method, url, opts)
	if err != nil {
		return FormatError(err)
	}
	out, err := Render(resp, mode, includeHeaders)
	if err != nil {
		return FormatError(err)
	}
	return out
}
