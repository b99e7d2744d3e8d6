package request

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/jasonpaulso/mcp-server-requests/packages/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout. The upstream
	// behavior set none; a bound keeps a stuck peer from blocking the
	// agent forever. Zero disables it.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// Methods lists the HTTP methods the executor accepts.
var Methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var log = logging.GetLogger("request")

// Options carries the optional parts of a single request.
type Options struct {
	// Query parameters merged into the URL. Values must be strings,
	// integers or floats.
	Query map[string]any
	// Headers are request headers applied after the client defaults.
	Headers map[string]string
	// Data is a raw request body, either a string or a []byte. Mutually
	// exclusive with JSON.
	Data any
	// JSON is a value serialized into a JSON request body. Mutually
	// exclusive with Data.
	JSON any
}

// Client executes HTTP requests and normalizes the outcome into a Response
// or one of the pipeline error kinds. A zero-configured client from
// NewClient is safe for concurrent use; each call is fully independent.
type Client struct {
	httpClient     *http.Client
	timeout        time.Duration
	followRedirect bool
	maxRedirects   int
	validateSSL    bool
	proxyURL       string
	defaultHeaders map[string]string
	userAgent      string
	forceUserAgent bool
	limiter        *rate.Limiter
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout:        DefaultTimeout,
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		validateSSL:    true,
		defaultHeaders: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	if !c.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	if c.proxyURL != "" {
		proxyURL, err := neturl.Parse(c.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	redirectPolicy := func(req *http.Request, via []*http.Request) error {
		if !c.followRedirect {
			return http.ErrUseLastResponse
		}
		if len(via) >= c.maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	c.httpClient = &http.Client{
		Transport:     transport,
		Timeout:       c.timeout,
		CheckRedirect: redirectPolicy,
	}

	return c
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirect = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithDefaultHeaders sets multiple default headers for all requests
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithUserAgent sets the User-Agent merged into outbound requests. When
// force is false the value only applies if the caller did not supply one;
// when force is true it always overwrites.
func WithUserAgent(ua string, force bool) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
		c.forceUserAgent = force
	}
}

// WithRateLimit caps outbound requests at rps requests per second.
// Zero or negative disables limiting.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// Do validates the inputs, merges query parameters, dispatches the request
// and returns the normalized Response. Remote error statuses (4xx/5xx) are
// Responses, not errors; only validation failures (ArgumentError) and
// transport failures (RequestError) come back on the error path.
func (c *Client) Do(ctx context.Context, method, rawURL string, opts *Options) (*Response, error) {
	if opts == nil {
		opts = &Options{}
	}

	normalized := strings.ToUpper(method)
	if !methodAllowed(normalized) {
		return nil, NewArgumentError(
			fmt.Sprintf("invalid HTTP method: %s, must be one of %v", method, Methods), nil)
	}

	if opts.Data != nil && opts.JSON != nil {
		return nil, NewArgumentError("both data and json cannot be provided at the same time", nil)
	}

	targetURL := rawURL
	if opts.Query != nil {
		merged, err := MergeQueryToURL(targetURL, opts.Query)
		if err != nil {
			return nil, err
		}
		targetURL = merged
	}

	body, err := buildBody(opts)
	if err != nil {
		return nil, err
	}

	targetURL = EnsureScheme(targetURL)

	reqLog := log.WithField("request_id", uuid.New().String())

	httpReq, err := http.NewRequestWithContext(ctx, normalized, targetURL, bodyReader(body))
	if err != nil {
		reqLog.Errorf("create request for %s failed: %s", targetURL, err)
		return nil, NewRequestError(fmt.Sprintf("failed to send request, %s", err), err)
	}

	for k, v := range c.defaultHeaders {
		httpReq.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		httpReq.Header.Set(k, v)
	}
	c.applyUserAgent(httpReq)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewRequestError(fmt.Sprintf("failed to send request, %s", err), err)
		}
	}

	reqLog.Debugf("%s %s", normalized, targetURL)
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		reqLog.Errorf("%s %s failed: %s", normalized, targetURL, err)
		return nil, NewRequestError(fmt.Sprintf("failed to send request, %s", transportReason(err)), err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		reqLog.Errorf("reading response from %s failed: %s", targetURL, err)
		return nil, NewRequestError(fmt.Sprintf("failed to send request, %s when reading response", err), err)
	}

	resp := &Response{
		URL:        httpReq.URL.String(),
		Proto:      protoVersion(httpResp.ProtoMajor, httpResp.ProtoMinor),
		StatusCode: httpResp.StatusCode,
		Reason:     reasonPhrase(httpResp),
		Headers:    headerPairs(httpResp.Header),
		Body:       respBody,
	}
	reqLog.Debugf("%s %s -> %d (%d bytes)", normalized, targetURL, resp.StatusCode, len(respBody))

	return resp, nil
}

// Get issues a GET request with optional headers.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, "GET", url, &Options{Headers: headers})
}

func methodAllowed(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

// buildBody converts Options.Data or Options.JSON into body bytes. A string
// body is encoded as UTF-8, a []byte passes through, and JSON values are
// serialized; serialization failures are argument errors since no I/O has
// happened yet.
func buildBody(opts *Options) ([]byte, error) {
	if opts.Data != nil {
		switch data := opts.Data.(type) {
		case string:
			return []byte(data), nil
		case []byte:
			return data, nil
		default:
			return nil, NewArgumentError("data must be a string or a byte slice", nil)
		}
	}
	if opts.JSON != nil {
		encoded, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, NewArgumentError(fmt.Sprintf("failed to serialize JSON data: %s", err), err)
		}
		return encoded, nil
	}
	return nil, nil
}

func bodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return bytes.NewReader(body)
}

// EnsureScheme prepends https:// when the URL carries neither an http nor
// an https prefix.
func EnsureScheme(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

func (c *Client) applyUserAgent(req *http.Request) {
	if c.userAgent == "" {
		return
	}
	if c.forceUserAgent || req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// transportReason digs the underlying cause out of a *url.Error so the
// rendered message reads like "connection refused" rather than the full
// operation wrapper.
func transportReason(err error) string {
	var urlErr *neturl.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// reasonPhrase extracts the reason phrase from the wire status, falling back
// to the canonical text for the code.
func reasonPhrase(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if strings.HasPrefix(resp.Status, prefix) {
		return strings.TrimPrefix(resp.Status, prefix)
	}
	return http.StatusText(resp.StatusCode)
}

// headerPairs flattens the header map into ordered pairs. net/http stores
// headers in a canonicalized map, so the original wire order is gone; keys
// are sorted for a stable rendering, with repeated values kept in received
// order.
func headerPairs(h http.Header) []Header {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Header, 0, len(h))
	for _, k := range keys {
		for _, v := range h[k] {
			pairs = append(pairs, Header{Name: k, Value: v})
		}
	}
	return pairs
}
