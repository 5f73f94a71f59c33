package config

type SecurityConfig interface {
	GetCSRFEnabled() bool
	GetCSRFCookieName() string
	GetCSRFHeaderName() string
	GetRefreshCookieName() string
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetCSRFEnabled() bool {
	return GetEnvBool("PANEL_CSRF", true)
}

func (Security) GetCSRFCookieName() string {
	return "XSRF-TOKEN"
}

func (Security) GetCSRFHeaderName() string {
	return "X-CSRF-TOKEN"
}

func (Security) GetRefreshCookieName() string {
	return "refreshToken"
}
