package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jasonpaulso/mcp-server-requests/packages/render"
	"github.com/jasonpaulso/mcp-server-requests/packages/request"
)

const returnContentDescription = "Controls how HTML content is returned: " +
	"raw returns the original HTML; " +
	"basic_clean removes non-visible tags (script, style, etc.); " +
	"strict_clean additionally deletes most unnecessary HTML attributes; " +
	"markdown converts the HTML to Markdown. " +
	"Non-HTML text or JSON is always returned directly."

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("fetch",
		mcp.WithDescription("Fetch web page content. HTML is returned according to return_content; "+
			"other text or JSON is returned directly; any other content type yields an error message."),
		mcp.WithString("url", mcp.Required(),
			mcp.Description("The URL of the web page to fetch.")),
		mcp.WithString("return_content",
			mcp.Description(returnContentDescription),
			mcp.Enum("raw", "basic_clean", "strict_clean", "markdown"),
			mcp.DefaultString("markdown")),
	), s.handleFetch)

	s.mcp.AddTool(mcp.NewTool("fetch_to_file",
		mcp.WithDescription("Fetch web page content and save it to a file. "+
			"The file path must be absolute and outside protected system directories."),
		mcp.WithString("url", mcp.Required(),
			mcp.Description("The URL of the web page to fetch.")),
		mcp.WithString("file_path", mcp.Required(),
			mcp.Description("The absolute file path to save to.")),
		mcp.WithString("return_content",
			mcp.Description(returnContentDescription),
			mcp.Enum("raw", "basic_clean", "strict_clean", "markdown"),
			mcp.DefaultString("markdown")),
	), s.handleFetchToFile)

	s.mcp.AddTool(httpTool("http_get", "GET", false), s.httpHandler("GET", false))
	s.mcp.AddTool(httpTool("http_post", "POST", true), s.httpHandler("POST", true))
	s.mcp.AddTool(httpTool("http_put", "PUT", true), s.httpHandler("PUT", true))
	s.mcp.AddTool(httpTool("http_patch", "PATCH", true), s.httpHandler("PATCH", true))
	s.mcp.AddTool(httpTool("http_delete", "DELETE", true), s.httpHandler("DELETE", true))
}

// httpTool declares one of the verb tools. Tools with a body additionally
// accept data (raw text) or json (serialized structure), mutually exclusive.
func httpTool(name, method string, withBody bool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf("Execute HTTP %s request. Returns a standard HTTP response "+
			"format string containing status line, response headers, and response body.", method)),
		mcp.WithString("url", mcp.Required(),
			mcp.Description("The target URL for the request.")),
		mcp.WithObject("query",
			mcp.Description("Query parameter key-value pairs. Values must be strings or numbers "+
				"and are appended to the URL.")),
		mcp.WithObject("headers",
			mcp.Description("Custom HTTP request headers.")),
	}
	if withBody {
		opts = append(opts,
			mcp.WithString("data",
				mcp.Description("HTTP request body as text. Cannot be used together with json.")),
			mcp.WithObject("json",
				mcp.Description("HTTP request body as a JSON structure. Cannot be used together with data.")),
		)
	}
	return mcp.NewTool(name, opts...)
}

func (s *Server) handleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := render.ParseMode(req.GetString("return_content", string(render.ModeMarkdown)))
	if err != nil {
		return mcp.NewToolResultText(render.FormatError(err)), nil
	}

	out := render.Exchange(ctx, s.client, "GET", url, nil, mode, false)
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleFetchToFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := render.ParseMode(req.GetString("return_content", string(render.ModeMarkdown)))
	if err != nil {
		return mcp.NewToolResultText(render.FormatError(err)), nil
	}

	if err := CheckWritePath(path); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error: %s", err)), nil
	}

	out := render.Exchange(ctx, s.client, "GET", url, nil, mode, false)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error: cannot create directory: %s", err)), nil
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error: cannot write file: %s", err)), nil
	}

	s.log.Infof("fetched %s to %s", url, path)
	return mcp.NewToolResultText(fmt.Sprintf("File written successfully to: %s", path)), nil
}

func (s *Server) httpHandler(method string, withBody bool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := req.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		args := req.GetArguments()

		opts := &request.Options{}

		query, err := objectArg(args, "query")
		if err != nil {
			return mcp.NewToolResultText(render.FormatError(err)), nil
		}
		opts.Query = query

		headers, err := stringMapArg(args, "headers")
		if err != nil {
			return mcp.NewToolResultText(render.FormatError(err)), nil
		}
		opts.Headers = headers

		if withBody {
			data, err := stringArg(args, "data")
			if err != nil {
				return mcp.NewToolResultText(render.FormatError(err)), nil
			}
			if data != "" {
				opts.Data = data
			}
			if v, ok := args["json"]; ok && v != nil {
				opts.JSON = v
			}
		}

		out := render.Exchange(ctx, s.client, method, url, opts, render.ModeRaw, true)
		return mcp.NewToolResultText(out), nil
	}
}

// objectArg extracts an optional JSON-object argument as a generic map.
func objectArg(args map[string]any, key string) (map[string]any, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, request.NewArgumentError(fmt.Sprintf("%s must be an object", key), nil)
	}
	return m, nil
}

// stringMapArg extracts an optional JSON-object argument whose values must
// all be strings.
func stringMapArg(args map[string]any, key string) (map[string]string, error) {
	m, err := objectArg(args, key)
	if err != nil || m == nil {
		return nil, err
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			return nil, request.NewArgumentError(fmt.Sprintf("%s value for %q must be a string", key, k), nil)
		}
		out[k] = s
	}
	return out, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", request.NewArgumentError(fmt.Sprintf("%s must be a string", key), nil)
	}
	return s, nil
}
