package session

import (
	"time"

	"github.com/jrsteele09/restaurant-panel/internal/metrics"
)

// CookieJar exposes the cookies the API set. tokenstore.CookieJar implements it.
type CookieJar interface {
	Cookie(name string) (string, bool)
	Clear()
}

// Timer is the cancellable handle returned by the after func.
type Timer interface {
	Stop() bool
}

type ManagerOption func(*Manager)

func WithCookieJar(jar CookieJar) ManagerOption {
	return func(m *Manager) {
		m.cookies = jar
	}
}

func WithRefreshMode(mode RefreshMode) ManagerOption {
	return func(m *Manager) {
		m.refreshMode = mode
	}
}

// WithExpiryMargin sets how long before expiry the refresh timer fires. Zero disables the timer.
func WithExpiryMargin(margin time.Duration) ManagerOption {
	return func(m *Manager) {
		m.expiryMargin = margin
	}
}

func WithCookieNames(refreshCookie, csrfCookie string) ManagerOption {
	return func(m *Manager) {
		m.refreshCookieName = refreshCookie
		m.csrfCookieName = csrfCookie
	}
}

func WithRecorder(recorder metrics.Recorder) ManagerOption {
	return func(m *Manager) {
		m.recorder = recorder
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(after func(time.Duration, func()) Timer) ManagerOption {
	return func(m *Manager) {
		m.afterFunc = after
	}
}
