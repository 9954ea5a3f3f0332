package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputDir returns the directory reports for symbol are written to,
// namespaced by date so repeated runs do not clobber each other.
func OutputDir(base, symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		s = "UNKNOWN"
	}
	if base == "" {
		base = "output"
	}
	return filepath.Join(base, fmt.Sprintf("%s_%s", s, time.Now().UTC().Format("2006-01-02")))
}

// EnsureDirectoryExists creates the parent directory of path if needed.
func EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
