package cmd

// Exit codes for the mcp-server-requests CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitError indicates a request, server or configuration failure
	ExitError = 1

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
