package soda

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var fourByFour = regexp.MustCompile(`^[a-z0-9]{4}-[a-z0-9]{4}$`)

// ResourceID extracts the dataset id from an endpoint URL. Very dumb:
// takes the last path segment and strips the format suffix.
func ResourceID(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}

	segment := path.Base(u.Path)
	if segment == "." || segment == "/" {
		return ""
	}

	return strings.TrimSuffix(segment, path.Ext(segment))
}

// LooksLikeResource reports whether the endpoint ends in a Socrata
// four-by-four id. Endpoints that don't still get queried; this only
// feeds a warning in the check command.
func LooksLikeResource(endpoint string) bool {
	return fourByFour.MatchString(ResourceID(endpoint))
}
