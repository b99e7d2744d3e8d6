package request

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_Get(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/test", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "hello"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), "GET", server.URL+"/test", nil)

	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", resp.Reason)
	assert.Equal(t, "HTTP/1.1", resp.Proto)
	assert.Equal(t, "application/json", resp.ContentType())
	assert.Equal(t, server.URL+"/test", resp.URL)
	assert.Contains(t, string(resp.Body), "hello")
}

func TestClient_Do_MethodCaseInsensitive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), "delete", server.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestClient_Do_InvalidMethod(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Do(context.Background(), "TRACE", server.URL, nil)

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, argErr.Message, "invalid HTTP method: TRACE")
	assert.Equal(t, 0, hits, "validation failures must not reach the network")
}

func TestClient_Do_QueryMergedIntoURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		assert.Equal(t, "1", values.Get("a"))
		assert.Equal(t, "2", values.Get("b"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), "GET", server.URL+"/x?a=1", &Options{
		Query: map[string]any{"b": float64(2)},
	})

	require.NoError(t, err)
	assert.Contains(t, resp.URL, "a=1")
	assert.Contains(t, resp.URL, "b=2")
}

func TestClient_Do_DataAndJSONExclusive(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Do(context.Background(), "POST", server.URL, &Options{
		Data: "raw",
		JSON: map[string]any{"a": 1},
	})

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, argErr.Message, "both data and json")
	assert.Equal(t, 0, hits)
}

func TestClient_Do_StringData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "name=test", string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), "POST", server.URL, &Options{Data: "name=test"})

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestClient_Do_ByteData(t *testing.T) {
	payload := []byte{0x01, 0x02, 0xff}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, payload, body)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Do(context.Background(), "PUT", server.URL, &Options{Data: payload})

	require.NoError(t, err)
}

func TestClient_Do_InvalidDataType(t *testing.T) {
	client := NewClient()
	_, err := client.Do(context.Background(), "POST", "https://example.com", &Options{Data: 42})

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, argErr.Message, "data must be a string or a byte slice")
}

func TestClient_Do_JSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name": "test", "count": 3}`, string(body))
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Do(context.Background(), "POST", server.URL, &Options{
		JSON: map[string]any{"name": "test", "count": 3},
	})

	require.NoError(t, err)
}

func TestClient_Do_JSONSerializeFailure(t *testing.T) {
	client := NewClient()
	_, err := client.Do(context.Background(), "POST", "https://example.com", &Options{
		JSON: map[string]any{"fn": func() {}},
	})

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, argErr.Message, "failed to serialize JSON data")
}

func TestClient_Do_RemoteErrorStatusIsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "missing"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), "GET", server.URL, nil)

	require.NoError(t, err, "a remote 404 is a response, not a transport failure")
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.Reason)
	assert.Contains(t, string(resp.Body), "missing")
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient()
	_, err := client.Do(context.Background(), "GET", url, nil)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Message, "failed to send request")
}

func TestClient_Do_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := client.Do(context.Background(), "GET", server.URL, nil)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestClient_Do_UserAgentIfAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "configured-agent", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client := NewClient(WithUserAgent("configured-agent", false))
	_, err := client.Do(context.Background(), "GET", server.URL, nil)

	require.NoError(t, err)
}

func TestClient_Do_UserAgentNotOverridden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "caller-agent", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client := NewClient(WithUserAgent("configured-agent", false))
	_, err := client.Do(context.Background(), "GET", server.URL, &Options{
		Headers: map[string]string{"User-Agent": "caller-agent"},
	})

	require.NoError(t, err)
}

func TestClient_Do_ForceUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "configured-agent", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client := NewClient(WithUserAgent("configured-agent", true))
	_, err := client.Do(context.Background(), "GET", server.URL, &Options{
		Headers: map[string]string{"User-Agent": "caller-agent"},
	})

	require.NoError(t, err)
}

func TestClient_Do_DefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "override", r.Header.Get("X-Custom"))
	}))
	defer server.Close()

	client := NewClient(WithDefaultHeaders(map[string]string{
		"Authorization": "test-token",
		"X-Custom":      "default",
	}))
	_, err := client.Do(context.Background(), "GET", server.URL, &Options{
		Headers: map[string]string{"X-Custom": "override"},
	})

	require.NoError(t, err)
}

func TestClient_Do_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithRateLimit(100))
	for i := 0; i < 3; i++ {
		_, err := client.Do(context.Background(), "GET", server.URL, nil)
		require.NoError(t, err)
	}
}

func TestClient_Do_HeadersSortedAndComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Add("X-Multi", "one")
		w.Header().Add("X-Multi", "two")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), "GET", server.URL, nil)
	require.NoError(t, err)

	var multi []string
	for _, h := range resp.Headers {
		if h.Name == "X-Multi" {
			multi = append(multi, h.Value)
		}
	}
	assert.Equal(t, []string{"one", "two"}, multi, "repeated values keep received order")

	for i := 1; i < len(resp.Headers); i++ {
		assert.LessOrEqual(t, resp.Headers[i-1].Name, resp.Headers[i].Name, "headers sorted by name")
	}
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"example.com", "https://example.com"},
		{"example.com/path?a=1", "https://example.com/path?a=1"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EnsureScheme(tt.url))
	}
}
