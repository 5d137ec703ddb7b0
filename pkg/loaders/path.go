package loaders

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateSceneFilePath checks a scene file path supplied by an untrusted caller.
// Only .toml files inside dir are accepted.
func ValidateSceneFilePath(dir, filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if len(filename) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".toml") {
		return fmt.Errorf("invalid file type: only .toml files are allowed")
	}

	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(filename))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("file path must be in %s/ directory", dir)
	}

	return nil
}
