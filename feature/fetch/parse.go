package fetch

import (
	"fmt"
	"strings"
)

// PathPrefix is the scheme prefix required on combined storage paths.
const PathPrefix = "s3://"

// ParseObjectPath splits a combined path like "s3://bucket/path/to/object"
// into its bucket and object key. The split happens on the first separator
// only, so the key keeps any further separators intact.
func ParseObjectPath(path string) (string, string, error) {
	if !strings.HasPrefix(path, PathPrefix) {
		return "", "", fmt.Errorf("%w: path must start with %q", ErrInvalidPath, PathPrefix)
	}

	rest := strings.TrimPrefix(path, PathPrefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: no object key in %q", ErrInvalidPath, path)
	}

	return parts[0], parts[1], nil
}
