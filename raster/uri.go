package raster

import (
	"fmt"
	"strings"
)

// s3Schemes are the URI schemes classified as the S3 object-store backend.
var s3Schemes = map[string]bool{
	"s3":  true,
	"s3a": true,
	"s3n": true,
}

// IsS3URI reports whether the URI targets the S3 object-store backend.
func IsS3URI(uri string) bool {
	return s3Schemes[uriScheme(uri)]
}

// uriScheme returns the scheme token of a URI: the prefix up to (not
// including) the first colon. Plain local paths have no colon and yield
// an empty token.
func uriScheme(uri string) string {
	if i := strings.IndexByte(uri, ':'); i >= 0 {
		return uri[:i]
	}
	return ""
}

// normalizeURIs validates the input URI list and returns it together with
// the scheme token of its first element. Only the first element's scheme
// classifies the backend: callers must not mix backends with heterogeneous
// credential requirements in one call.
func normalizeURIs(uris []string) ([]string, string, error) {
	if len(uris) == 0 {
		return nil, "", fmt.Errorf("raster: %w", ErrNoURIs)
	}
	out := make([]string, len(uris))
	copy(out, uris)
	return out, uriScheme(out[0]), nil
}
