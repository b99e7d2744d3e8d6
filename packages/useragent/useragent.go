// Package useragent supplies the User-Agent values offered to the request
// pipeline: a service default, and a catalog of real browser/OS strings for
// callers that want to blend in with regular traffic. The catalog is static
// and resolved once; nothing here mutates after startup.
package useragent

import (
	"fmt"
	"math/rand"
	"sort"
)

type entry struct {
	browser string
	os      string
	value   string
}

var catalog = []entry{
	{"chrome", "windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"},
	{"chrome", "macos", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"},
	{"chrome", "linux", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"},
	{"chrome", "android", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36"},
	{"firefox", "windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0"},
	{"firefox", "macos", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14.4; rv:125.0) Gecko/20100101 Firefox/125.0"},
	{"firefox", "linux", "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"},
	{"firefox", "android", "Mozilla/5.0 (Android 14; Mobile; rv:125.0) Gecko/125.0 Firefox/125.0"},
	{"safari", "macos", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"},
	{"safari", "ios", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"},
	{"edge", "windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0"},
	{"edge", "macos", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0"},
}

// Browsers returns the browser names available for selection, sorted.
func Browsers() []string {
	return uniqueField(func(e entry) string { return e.browser })
}

// OSes returns the operating system names available for selection, sorted.
func OSes() []string {
	return uniqueField(func(e entry) string { return e.os })
}

func uniqueField(field func(entry) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range catalog {
		name := field(e)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Random picks a catalog User-Agent, optionally constrained to a browser
// and/or OS. An empty constraint matches everything. An impossible
// combination (e.g. safari on linux) is an error.
func Random(browser, os string) (string, error) {
	var candidates []string
	for _, e := range catalog {
		if browser != "" && e.browser != browser {
			continue
		}
		if os != "" && e.os != os {
			continue
		}
		candidates = append(candidates, e.value)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("can't find suitable user-agent, os or browser: %q, %q, try a different combination", os, browser)
	}
	return candidates[rand.Intn(len(candidates))], nil
}

// Default is the service's own User-Agent, used when the caller selects
// nothing else.
func Default(version string) string {
	return fmt.Sprintf("Mozilla/5.0 (compatible; mcp-server-requests/%s)", version)
}
