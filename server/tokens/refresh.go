package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnknownRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// StoredRefreshToken is the server side record of an opaque refresh token.
type StoredRefreshToken struct {
	Token     string
	AccountID string
	Iat       time.Time
}

// RefreshManager creates, rotates and revokes refresh tokens. Each account
// holds at most one live refresh token; rotation replaces it.
type RefreshManager struct {
	length     int
	expiry     time.Duration
	tokens     map[string]*StoredRefreshToken
	accountIDs map[string]string // account id to token
	lock       sync.Mutex
}

func NewRefreshManager(length int, expiry time.Duration) *RefreshManager {
	return &RefreshManager{
		length:     length,
		expiry:     expiry,
		tokens:     make(map[string]*StoredRefreshToken),
		accountIDs: make(map[string]string),
	}
}

// Create issues a refresh token for accountID, revoking any previous one.
func (m *RefreshManager) Create(accountID string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.createLocked(accountID)
}

// Rotate consumes token and returns its account with a replacement token.
// A consumed, unknown or expired token is rejected.
func (m *RefreshManager) Rotate(token string) (string, string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	rt, ok := m.tokens[token]
	if !ok {
		return "", "", ErrUnknownRefreshToken
	}
	m.deleteLocked(rt)
	if NowTimeFunc().Sub(rt.Iat) > m.expiry {
		return "", "", ErrRefreshTokenExpired
	}

	next, err := m.createLocked(rt.AccountID)
	if err != nil {
		return "", "", errors.Wrap(err, "RefreshManager.Rotate")
	}
	return rt.AccountID, next, nil
}

// Revoke deletes token if it is live.
func (m *RefreshManager) Revoke(token string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if rt, ok := m.tokens[token]; ok {
		m.deleteLocked(rt)
	}
}

func (m *RefreshManager) createLocked(accountID string) (string, error) {
	if existing, ok := m.accountIDs[accountID]; ok {
		m.deleteLocked(m.tokens[existing])
	}

	tokenBytes := make([]byte, m.length)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", errors.Wrap(err, "RefreshManager.Create rand.Read")
	}
	token := hex.EncodeToString(tokenBytes)
	m.tokens[token] = &StoredRefreshToken{Token: token, AccountID: accountID, Iat: NowTimeFunc()}
	m.accountIDs[accountID] = token
	return token, nil
}

func (m *RefreshManager) deleteLocked(rt *StoredRefreshToken) {
	delete(m.tokens, rt.Token)
	if m.accountIDs[rt.AccountID] == rt.Token {
		delete(m.accountIDs, rt.AccountID)
	}
}
