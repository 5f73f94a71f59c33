package session

// state is internal. Consumers only observe IsAuthenticated, which is derived
// from the presence of an access credential.
type state int

const (
	stateAnonymous state = iota
	stateAuthenticating
	stateAuthenticated
	stateRefreshing
)

func (s state) String() string {
	switch s {
	case stateAuthenticating:
		return "authenticating"
	case stateAuthenticated:
		return "authenticated"
	case stateRefreshing:
		return "refreshing"
	default:
		return "anonymous"
	}
}

// RefreshMode selects where refresh material comes from.
type RefreshMode string

const (
	// RefreshModeCookie relies on the server-set HttpOnly cookie. The client never reads it.
	RefreshModeCookie RefreshMode = "cookie"
	// RefreshModeBody keeps the refresh token in the token store and posts it in the body.
	RefreshModeBody RefreshMode = "body"
	// RefreshModeCookieBridge reads the refresh cookie and posts it in the body, for servers
	// that only accept body refresh but set the cookie.
	RefreshModeCookieBridge RefreshMode = "cookie-bridge"
)

func ParseRefreshMode(s string) (RefreshMode, bool) {
	switch m := RefreshMode(s); m {
	case RefreshModeCookie, RefreshModeBody, RefreshModeCookieBridge:
		return m, true
	}
	return RefreshModeCookie, false
}
