package errors

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

const maxPathLength = 500

// ValidateOutputPath checks the path the station file is written to.
//
// Unlike repository paths, output paths may be absolute; they must still be
// non-empty, free of control characters and name a file rather than a
// directory.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file: %q", path)
	}
	switch filepath.Base(path) {
	case ".", "..":
		return New(ErrCodeInvalidPath, "output path must name a file: %q", path)
	}
	return nil
}

// ValidateBaseURL validates the upstream API root.
// It must be an absolute http or https URL with a host.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "base URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid base URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidConfig, "base URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "base URL must include a host")
	}
	return nil
}
