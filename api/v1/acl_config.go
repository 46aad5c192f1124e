package v1

import (
	"net/http"

	"github.com/bookgrove/bookgrove/util"
)

var authenticationAllowlist = map[string]bool{
	"/api/v1/signup": true,
	"/api/v1/signin": true,
}

// Anonymous visitors may GET these paths: browsing the catalog never
// needs an account.
var readOnlyAllowlist = []string{
	"/api/v1/books",
	"/api/v1/genres",
	"/api/v1/book/",
}

// isUnauthorizeAllowed returns whether the request is exempted from
// authentication.
func isUnauthorizeAllowed(path, method string) bool {
	if authenticationAllowlist[path] {
		return true
	}
	return method == http.MethodGet && util.HasPrefixes(path, readOnlyAllowlist...)
}
