package apiclient

import (
	"strings"
)

// RouteTemplate replaces numeric path segments with "{id}" so metrics and span names
// stay low-cardinality: "/projects/4/employees/9" becomes "/projects/{id}/employees/{id}".
func RouteTemplate(path string) string {
	path = "/" + strings.Trim(path, "/")
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" && isDigits(seg) {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
