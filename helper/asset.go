package helper

import (
	"path"
	"regexp"
	"strings"
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL recovers the public id from a hosted asset URL of the form
// https://res.cloudinary.com/<cloud>/<type>/upload/[v<version>/]<folder>/<id>.<ext>.
// It returns "" when url does not look like an upload URL.
func PublicIDFromURL(url string) string {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok || rest == "" {
		return ""
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	parts := strings.Split(rest, "/")
	if len(parts) > 1 && versionSegment.MatchString(parts[0]) {
		parts = parts[1:]
	}
	publicID := strings.Join(parts, "/")
	return strings.TrimSuffix(publicID, path.Ext(publicID))
}
