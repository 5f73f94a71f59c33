package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/internal/metrics"
	"github.com/jrsteele09/restaurant-panel/internal/utils"
	"github.com/jrsteele09/restaurant-panel/panelapi"
	"github.com/jrsteele09/restaurant-panel/tokenstore"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	defaultExpiryMargin = 60 * time.Second
	refreshTimeout      = 30 * time.Second
)

// Manager is the single source of truth for whether the operator is
// authenticated. It owns login, logout and refresh, persists the access
// credential through the token store and keeps a refresh timer armed while a
// token lifetime is known.
//
// One Manager is created at start-up and passed to every consumer.
type Manager struct {
	api               AuthAPI
	store             tokenstore.Store
	cookies           CookieJar
	refreshMode       RefreshMode
	refreshCookieName string
	csrfCookieName    string
	expiryMargin      time.Duration
	recorder          metrics.Recorder
	nowFunc           func() time.Time
	afterFunc         func(time.Duration, func()) Timer

	// persistMu orders store and jar writes the same way as the in-memory
	// transitions they follow. Taken before mu.
	persistMu sync.Mutex

	mu        sync.Mutex
	state     state
	token     *oauth2.Token
	epoch     uint64 // bumped whenever a session ends
	timer     Timer
	timerSeq  uint64
	listeners map[int]func(bool)
	nextID    int
	closed    bool

	refreshGroup singleflight.Group
}

var _ oauth2.TokenSource = (*Manager)(nil)

func NewManager(api AuthAPI, store tokenstore.Store, options ...ManagerOption) *Manager {
	m := &Manager{
		api:               api,
		store:             store,
		refreshMode:       RefreshModeCookie,
		refreshCookieName: "refreshToken",
		csrfCookieName:    "XSRF-TOKEN",
		expiryMargin:      defaultExpiryMargin,
		listeners:         make(map[int]func(bool)),
	}

	for _, opt := range options {
		opt(m)
	}

	if m.recorder == nil {
		m.recorder = metrics.Nop{}
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	if m.afterFunc == nil {
		m.afterFunc = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}
	return m
}

// Restore settles the initial state. Without a persisted access credential the
// manager stays anonymous; with one it attempts a silent refresh and settles
// anonymous, without surfacing an error, when that fails.
func (m *Manager) Restore(ctx context.Context) {
	if _, ok := m.store.Get(ctx, tokenstore.AccessSlot); !ok {
		log.Debug().Msg("session: no persisted credential")
		return
	}
	if _, err := m.RefreshAccessToken(ctx); err != nil {
		log.Debug().Err(err).Msg("session: silent refresh failed, starting anonymous")
		return
	}
	log.Info().Msg("session: restored")
}

// Login exchanges credentials for tokens. On failure the session is anonymous
// and the returned error matches ErrAuthenticationFailed.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.persistMu.Lock()
	m.mu.Lock()
	m.setStateLocked(stateAuthenticating)
	epoch := m.epoch
	m.mu.Unlock()
	m.persistMu.Unlock()

	resp, err := m.api.Login(ctx, email, password)
	if err == nil && !utils.Present(resp.AccessToken) {
		err = perrors.Wrapf(perrors.ErrInvalidRequest, "login response without access token")
	}
	if err != nil {
		m.end(ctx, epoch)
		log.Warn().Err(err).Msg("session: login failed")
		return perrors.Join(perrors.ErrAuthenticationFailed, err)
	}

	if !m.establish(ctx, epoch, resp) {
		return perrors.Wrapf(perrors.ErrAuthenticationFailed, "session ended during login")
	}
	log.Info().Msg("session: logged in")
	return nil
}

// Logout clears every credential and cancels the refresh timer. It is safe to
// call when already anonymous.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	m.end(ctx, epoch)
	log.Debug().Msg("session: logged out")
}

// RefreshAccessToken obtains a new access credential and returns it.
// Concurrent callers share one refresh call. On any failure every credential
// is cleared and the error matches ErrRefreshFailed.
//
// The shared call is detached from the callers' cancellation: a caller whose
// ctx ends gets ctx.Err() back while the refresh carries on for the others.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	result := m.refreshGroup.DoChan("refresh", func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return m.refresh(refreshCtx)
	})
	select {
	case res := <-result:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	m.persistMu.Lock()
	m.mu.Lock()
	m.setStateLocked(stateRefreshing)
	epoch := m.epoch
	m.mu.Unlock()
	m.persistMu.Unlock()

	material, err := m.refreshMaterial(ctx)
	if err != nil {
		return "", m.failRefresh(ctx, epoch, err)
	}

	resp, err := m.api.Refresh(ctx, material)
	if err == nil && !utils.Present(resp.AccessToken) {
		err = perrors.Wrapf(perrors.ErrInvalidRequest, "refresh response without access token")
	}
	if err != nil {
		return "", m.failRefresh(ctx, epoch, err)
	}

	if !m.establish(ctx, epoch, resp) {
		m.recorder.RecordRefresh(false)
		return "", perrors.Wrapf(perrors.ErrRefreshFailed, "session ended during refresh")
	}
	m.recorder.RecordRefresh(true)
	log.Debug().Msg("session: access token refreshed")
	return *resp.AccessToken, nil
}

func (m *Manager) refreshMaterial(ctx context.Context) (string, error) {
	switch m.refreshMode {
	case RefreshModeBody:
		token, ok := m.store.Get(ctx, tokenstore.RefreshSlot)
		if !ok {
			return "", perrors.ErrNoRefreshMaterial
		}
		return token, nil
	case RefreshModeCookieBridge:
		token, ok := m.RefreshCookie()
		if !ok {
			return "", perrors.ErrNoRefreshMaterial
		}
		return token, nil
	default:
		// The jar attaches the HttpOnly cookie; the server decides whether it is valid.
		return "", nil
	}
}

func (m *Manager) failRefresh(ctx context.Context, epoch uint64, cause error) error {
	m.recorder.RecordRefresh(false)
	m.end(ctx, epoch)
	log.Warn().Err(cause).Msg("session: refresh failed, credentials cleared")
	return perrors.Join(perrors.ErrRefreshFailed, cause)
}

// establish installs a new token unless the session ended since epoch was read.
func (m *Manager) establish(ctx context.Context, epoch uint64, resp *panelapi.TokenResponse) bool {
	now := m.nowFunc()
	token := &oauth2.Token{
		AccessToken:  *resp.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: utils.Value(resp.RefreshToken),
		Expiry:       tokenExpiry(resp, now),
	}

	m.persistMu.Lock()
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.persistMu.Unlock()
		return false
	}
	wasAuthenticated := m.token != nil
	m.token = token
	m.setStateLocked(stateAuthenticated)
	m.armTimerLocked(now, token.Expiry)
	m.mu.Unlock()

	if err := m.store.Set(ctx, tokenstore.AccessSlot, token.AccessToken); err != nil {
		log.Err(err).Msg("session: failed to persist access token")
	}
	if m.refreshMode == RefreshModeBody && token.RefreshToken != "" {
		if err := m.store.Set(ctx, tokenstore.RefreshSlot, token.RefreshToken); err != nil {
			log.Err(err).Msg("session: failed to persist refresh token")
		}
	}
	m.persistMu.Unlock()

	if !wasAuthenticated {
		m.notify(true)
	}
	return true
}

// end moves to anonymous and clears stored credentials, unless another
// transition already ended the session identified by epoch.
func (m *Manager) end(ctx context.Context, epoch uint64) {
	m.persistMu.Lock()
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.persistMu.Unlock()
		return
	}
	m.epoch++
	wasAuthenticated := m.token != nil
	m.token = nil
	m.setStateLocked(stateAnonymous)
	m.stopTimerLocked()
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		log.Err(err).Msg("session: failed to clear token store")
	}
	if m.cookies != nil {
		m.cookies.Clear()
	}
	m.persistMu.Unlock()

	if wasAuthenticated {
		m.notify(false)
	}
}

func (m *Manager) setStateLocked(to state) {
	if m.state != to {
		log.Debug().Stringer("from", m.state).Stringer("to", to).Msg("session: transition")
	}
	m.state = to
}

func (m *Manager) armTimerLocked(now, expiry time.Time) {
	m.stopTimerLocked()
	if m.closed || m.expiryMargin <= 0 || expiry.IsZero() {
		return
	}
	remaining := expiry.Sub(now)
	if remaining <= 0 {
		return
	}
	delay := remaining - m.expiryMargin
	if delay <= 0 {
		// Lifetime shorter than the margin: refresh half way instead of immediately.
		delay = remaining / 2
	}

	m.timerSeq++
	seq := m.timerSeq
	m.timer = m.afterFunc(delay, func() { m.onTimer(seq) })
	log.Debug().Dur("in", delay).Msg("session: refresh timer armed")
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.timerSeq++
}

func (m *Manager) onTimer(seq uint64) {
	m.mu.Lock()
	stale := seq != m.timerSeq || m.closed || m.token == nil
	m.mu.Unlock()
	if stale {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := m.RefreshAccessToken(ctx); err != nil {
		log.Warn().Err(err).Msg("session: scheduled refresh failed")
	}
}

// Close cancels the refresh timer for good. Credentials are left in place.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopTimerLocked()
}

// AccessToken returns the current access credential, or "" when anonymous.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil {
		return ""
	}
	return m.token.AccessToken
}

func (m *Manager) IsAuthenticated() bool {
	return m.AccessToken() != ""
}

// Expiry is the access credential expiry, zero when unknown or anonymous.
func (m *Manager) Expiry() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil {
		return time.Time{}
	}
	return m.token.Expiry
}

// Token implements oauth2.TokenSource. It never refreshes; the pipeline does that on 403.
func (m *Manager) Token() (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil {
		return nil, perrors.ErrUnauthorized
	}
	t := *m.token
	return &t, nil
}

// CSRFToken reads the anti-forgery cookie on demand. It is not part of the session.
func (m *Manager) CSRFToken() string {
	if m.cookies == nil {
		return ""
	}
	token, _ := m.cookies.Cookie(m.csrfCookieName)
	return token
}

// RefreshCookie reads the refresh cookie. Only the cookie-bridge refresh mode uses it.
func (m *Manager) RefreshCookie() (string, bool) {
	if m.cookies == nil {
		return "", false
	}
	return m.cookies.Cookie(m.refreshCookieName)
}

// Subscribe registers fn to be called whenever IsAuthenticated changes.
func (m *Manager) Subscribe(fn func(authenticated bool)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) notify(authenticated bool) {
	m.mu.Lock()
	listeners := make([]func(bool), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(authenticated)
	}
}

// tokenExpiry prefers the server's expiresIn and falls back to the JWT exp claim.
func tokenExpiry(resp *panelapi.TokenResponse, now time.Time) time.Time {
	if resp.ExpiresIn > 0 {
		return now.Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(utils.Value(resp.AccessToken), claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
