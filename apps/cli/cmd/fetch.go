package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasonpaulso/mcp-server-requests/packages/render"
)

var returnContentFlag string

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch web page content",
	Long: `Fetch a web page and print its rendered content.

HTML is transformed according to --return-content; other text or JSON is
printed directly. Response headers are omitted.

Examples:
  mcp-server-requests fetch https://example.com
  mcp-server-requests fetch example.com --return-content strict_clean`,
	Args: cobra.ExactArgs(1),
	RunE: fetchCommand,
}

func init() {
	fetchCmd.Flags().StringVar(&returnContentFlag, "return-content", string(render.ModeMarkdown),
		"How to return HTML content: raw, basic_clean, strict_clean, markdown")
}

func fetchCommand(cmd *cobra.Command, args []string) error {
	mode, err := render.ParseMode(returnContentFlag)
	if err != nil {
		return err
	}

	_, client, err := buildClient()
	if err != nil {
		return err
	}

	out := render.Exchange(cmd.Context(), client, "GET", args[0], nil, mode, false)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
