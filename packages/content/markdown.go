package content

import (
	"fmt"
	"strings"

	markdown "github.com/JohannesKaufmann/html-to-markdown"
)

// ToMarkdown converts HTML to a Markdown rendering.
func ToMarkdown(html string) (string, error) {
	converter := markdown.NewConverter("", true, nil)
	out, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}
