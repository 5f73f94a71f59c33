package panelapi

import "net/http"

// IsMutating reports whether a request with this verb must carry the
// anti-forgery header. Safe methods never do.
func IsMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}
