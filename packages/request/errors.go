package request

// The pipeline reports failures through three exclusive error kinds that
// record when the failure happened: before any network I/O (ArgumentError),
// during I/O (RequestError), or after I/O while the response was being
// processed (ResponseError). The render package matches on these kinds to
// produce the caller-facing error block.

// ArgumentError reports an input validation failure. No network request
// was attempted.
type ArgumentError struct {
	Message string
	cause   error
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func (e *ArgumentError) Unwrap() error {
	return e.cause
}

// NewArgumentError creates an ArgumentError with an optional underlying cause.
func NewArgumentError(message string, cause error) *ArgumentError {
	return &ArgumentError{Message: message, cause: cause}
}

// RequestError reports a transport-level failure. No usable Response exists.
type RequestError struct {
	Message string
	cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

// NewRequestError creates a RequestError with an optional underlying cause.
func NewRequestError(message string, cause error) *RequestError {
	return &RequestError{Message: message, cause: cause}
}

// ResponseError reports that a response was received but could not be
// rendered. It retains the Response so the real status line can still be
// reported alongside the failure.
type ResponseError struct {
	Response *Response
	Message  string
	// Reason is a short phrase describing why rendering failed, suitable
	// for appending to the echoed status line.
	Reason string
	cause  error
}

func (e *ResponseError) Error() string {
	return e.Message
}

func (e *ResponseError) Unwrap() error {
	return e.cause
}

// NewResponseError creates a ResponseError carrying the response it failed on.
func NewResponseError(resp *Response, message, reason string, cause error) *ResponseError {
	return &ResponseError{Response: resp, Message: message, Reason: reason, cause: cause}
}
