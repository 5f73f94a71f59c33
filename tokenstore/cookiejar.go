package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

// CookieJar holds the cookies the panel API sets: the HttpOnly refresh
// credential and the anti-forgery token. Client code reads cookies only through
// Cookie, which the session manager uses for the CSRF header and the legacy
// refresh bridge.
type CookieJar struct {
	mu      sync.RWMutex
	jar     *cookiejar.Jar
	baseURL *url.URL
	path    string
}

var _ http.CookieJar = (*CookieJar)(nil)

type CookieJarOption func(*CookieJar)

// WithCookieFile keeps the API cookies in path so a later process starts with
// them, the way a browser profile keeps its cookies between visits.
func WithCookieFile(path string) CookieJarOption {
	return func(j *CookieJar) {
		j.path = path
	}
}

func NewCookieJar(baseURL string, options ...CookieJarOption) (*CookieJar, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	j := &CookieJar{jar: jar, baseURL: u}
	for _, opt := range options {
		opt(j)
	}
	if j.path != "" {
		j.load()
	}
	return j, nil
}

func (j *CookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
	j.saveLocked()
}

func (j *CookieJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.jar.Cookies(u)
}

// Cookie returns the value of the named cookie the jar would send to the API.
func (j *CookieJar) Cookie(name string) (string, bool) {
	for _, c := range j.Cookies(j.baseURL) {
		if c.Name == name && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

// Clear drops every cookie.
func (j *CookieJar) Clear() {
	jar, err := newJar()
	if err != nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = jar
	if j.path != "" {
		if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Err(err).Str("path", j.path).Msg("tokenstore: failed to remove cookie file")
		}
	}
}

func (j *CookieJar) load() {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		log.Err(err).Str("path", j.path).Msg("tokenstore: failed to read cookie file")
		return
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		log.Err(err).Str("path", j.path).Msg("tokenstore: ignoring unreadable cookie file")
		return
	}
	cookies := make([]*http.Cookie, 0, len(values))
	for name, value := range values {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	j.jar.SetCookies(j.baseURL, cookies)
}

func (j *CookieJar) saveLocked() {
	if j.path == "" {
		return
	}
	values := make(map[string]string)
	for _, c := range j.jar.Cookies(j.baseURL) {
		values[c.Name] = c.Value
	}
	data, err := json.Marshal(values)
	if err == nil {
		err = writePrivateFile(j.path, data)
	}
	if err != nil {
		log.Err(err).Str("path", j.path).Msg("tokenstore: failed to save cookie file")
	}
}

func newJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return jar, nil
}
