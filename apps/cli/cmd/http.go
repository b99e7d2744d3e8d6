package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jasonpaulso/mcp-server-requests/packages/render"
	"github.com/jasonpaulso/mcp-server-requests/packages/request"
)

// newHTTPCommand builds the CLI command for one HTTP verb. GET carries no
// body flags; the other verbs accept --data or --json, mutually exclusive.
func newHTTPCommand(method string) *cobra.Command {
	var (
		headerFlags []string
		queryFlag   string
		dataFlag    string
		jsonFlag    string
		noHeaders   bool
	)

	use := strings.ToLower(method)
	cmd := &cobra.Command{
		Use:   use + " <url>",
		Short: fmt.Sprintf("Execute HTTP %s request", method),
		Long: fmt.Sprintf(`Execute an HTTP %s request and print the exchange as a standard
HTTP response format string: status line, response headers, and body.

Examples:
  mcp-server-requests %s https://httpbin.org/%s
  mcp-server-requests %s example.com --header "Accept: application/json"
  mcp-server-requests %s example.com --query '{"page": 2, "lang": "en"}'`,
			method, use, use, use, use),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &request.Options{}

			headers, err := parseHeaderFlags(headerFlags)
			if err != nil {
				return err
			}
			opts.Headers = headers

			query, err := parseObjectFlag("query", queryFlag)
			if err != nil {
				return err
			}
			opts.Query = query

			if dataFlag != "" {
				opts.Data = dataFlag
			}
			if jsonFlag != "" {
				body, err := parseJSONFlag(jsonFlag)
				if err != nil {
					return err
				}
				opts.JSON = body
			}

			_, client, err := buildClient()
			if err != nil {
				return err
			}

			out := render.Exchange(cmd.Context(), client, method, args[0], opts, render.ModeRaw, !noHeaders)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, `Custom header as "Name: value", repeatable`)
	cmd.Flags().StringVarP(&queryFlag, "query", "q", "", `Query parameters as a JSON object, e.g. '{"page": 2}'`)
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Omit response headers from the output")
	if method != "GET" {
		cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Request body as text; cannot be combined with --json")
		cmd.Flags().StringVar(&jsonFlag, "json", "", "Request body as a JSON document; cannot be combined with --data")
	}

	return cmd
}
