package render

import (
	"errors"
	"fmt"

	"github.com/jasonpaulso/mcp-server-requests/packages/request"
)

// FormatError converts any pipeline failure into the same canonical text
// shape a successful render produces, so callers always receive a string and
// never a raised fault. Argument and transport failures get a synthetic 500
// status line; a rendering failure echoes the real status line of the
// response it could not render.
func FormatError(err error) string {
	var argErr *request.ArgumentError
	var reqErr *request.RequestError
	var respErr *request.ResponseError

	switch {
	case errors.As(err, &argErr):
		return "HTTP/1.1 500 MCP Service Internal Error, invalid argument\r\n" +
			"Content-Type: text/plain\r\n\r\n" +
			"MCP service found an error while checking parameters:\r\n" +
			argErr.Message + "\r\n"
	case errors.As(err, &reqErr):
		return "HTTP/1.1 500 MCP Service Internal Error\r\n" +
			"Content-Type: text/plain\r\n\r\n" +
			"the MCP service encountered an internal error when making a request, with the following error message:\r\n" +
			reqErr.Message
	case errors.As(err, &respErr):
		reason := ", but there was an error when processing the response"
		if respErr.Reason != "" {
			reason = ", but " + respErr.Reason
		}
		return fmt.Sprintf("%s%s\r\n", respErr.Response.StatusLine(), reason) +
			"Content-Type: text/plain\r\n\r\n" +
			"The request sent has successfully received a response, but an error occurred during the processing of the response." +
			" The error message is as follows:\r\n" +
			respErr.Message
	default:
		return "HTTP/1.1 500 MCP Service Internal Error\r\n" +
			"Content-Type: text/plain\r\n\r\n" +
			"An unexpected error occurred in the MCP service."
	}
}
