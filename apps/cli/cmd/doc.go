// Package cmd implements the mcp-server-requests CLI commands using Cobra.
//
// Available commands:
//   - (root): Start the MCP server on stdio
//   - fetch: Fetch a web page and print it, optionally cleaned or as Markdown
//   - get/post/put/patch/delete: Execute a single HTTP request and print the exchange
//   - llms: Print AI-readable usage documentation
//   - version: Show version information
//
// Persistent flags control the User-Agent policy, timeout, and the config
// file location.
package cmd
