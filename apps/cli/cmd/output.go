package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jasonpaulso/mcp-server-requests/packages/useragent"
)

var headingColor = color.New(color.Bold, color.FgCyan)

// printUACatalog lists the browser and OS names the --random-user-agent
// selection understands.
func printUACatalog(cmd *cobra.Command) {
	w := cmd.OutOrStdout()

	headingColor.Fprintln(w, "Available browsers:")
	for _, b := range useragent.Browsers() {
		fmt.Fprintf(w, "- %s\n", b)
	}
	headingColor.Fprintln(w, "Available operating systems:")
	for _, o := range useragent.OSes() {
		fmt.Fprintf(w, "- %s\n", o)
	}
}
