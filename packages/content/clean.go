// Package content implements the HTML cleaning and Markdown conversion the
// renderer applies to text/html bodies. Both operations are best effort:
// malformed HTML is parsed permissively and never causes a panic.
package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonVisibleSelector matches elements that never contribute visible page
// content.
const nonVisibleSelector = "script, style, noscript, iframe, svg, template, object, embed"

// Clean removes non-visible elements from the HTML and keeps every
// attribute on the surviving elements.
func Clean(html string) (string, error) {
	return clean(html, nil)
}

// CleanWithAllowedAttrs removes non-visible elements and prunes attributes
// down to the given allow-list.
func CleanWithAllowedAttrs(html string, allowed []string) (string, error) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[strings.ToLower(a)] = struct{}{}
	}
	return clean(html, allowedSet)
}

func clean(html string, allowedAttrs map[string]struct{}) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(nonVisibleSelector).Remove()

	if allowedAttrs != nil {
		doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
			for _, node := range sel.Nodes {
				kept := node.Attr[:0]
				for _, attr := range node.Attr {
					if _, ok := allowedAttrs[strings.ToLower(attr.Key)]; ok {
						kept = append(kept, attr)
					}
				}
				node.Attr = kept
			}
		})
	}

	return doc.Html()
}
