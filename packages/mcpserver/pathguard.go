package mcpserver

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// protectedPaths lists directory trees the fetch_to_file tool refuses to
// write into.
func protectedPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{
			filepath.Join("C:", "Windows"),
			filepath.Join("C:", "Program Files"),
			filepath.Join("C:", "Program Files (x86)"),
		}
	}
	return []string{
		"/etc",
		"/usr",
		"/bin",
		"/sbin",
		"/lib",
		"/root",
	}
}

// CheckWritePath validates a fetch_to_file target: it must be absolute and
// must not land inside a protected system tree. The path is cleaned first so
// ".." segments cannot slip past the prefix check.
func CheckWritePath(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	cleaned := filepath.Clean(path)
	for _, protected := range protectedPaths() {
		if cleaned == protected || strings.HasPrefix(cleaned, protected+string(filepath.Separator)) {
			return fmt.Errorf("do not allow writing to protected paths: %s", protected)
		}
	}
	return nil
}
