package anubis

import (
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// isCircuitFailure counts only transport and 5xx/429 errors against the
// breaker; a rejected token is a healthy answer.
func isCircuitFailure(err error) bool {
	return crerr.Is(err, errAnubisTransient)
}

// buildURL joins the introspection path onto the base URL. A path that is
// already an absolute http(s) URL wins.
func buildURL(baseURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return base
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	}

	joined, err := url.JoinPath(base, path)
	if err != nil {
		return base + "/" + strings.TrimLeft(path, "/")
	}
	return joined
}
