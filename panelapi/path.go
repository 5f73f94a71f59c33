package panelapi

import (
	"net/url"
	"strings"
)

// Path fills the {name} wildcards of a route pattern with escaped values, in order.
//
//	Path(RouteCategory, "c1") == "/menu/category/c1"
func Path(route string, values ...string) string {
	var b strings.Builder
	rest := route
	for _, v := range values {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			break
		}
		b.WriteString(rest[:start])
		b.WriteString(url.PathEscape(v))
		rest = rest[start+end+1:]
	}
	b.WriteString(rest)
	return b.String()
}
