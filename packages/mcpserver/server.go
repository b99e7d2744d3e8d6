// Package mcpserver is the registration layer that exposes the request
// pipeline to an MCP client over stdio. Every tool returns exactly one text
// result; pipeline failures come back as formatted error strings, never as
// protocol-level errors.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/jasonpaulso/mcp-server-requests/packages/logging"
	"github.com/jasonpaulso/mcp-server-requests/packages/request"
)

// Server wraps an MCP stdio server around a request client.
type Server struct {
	mcp    *server.MCPServer
	client *request.Client
	log    *logrus.Entry
}

// New builds the server and registers the tool surface.
func New(version string, client *request.Client) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			"Requests",
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		client: client,
		log:    logging.GetLogger("mcpserver"),
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout until the
// client disconnects.
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}
