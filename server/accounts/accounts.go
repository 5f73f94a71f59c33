// Package accounts keeps the operator accounts allowed to sign in to the panel.
package accounts

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type Account struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Blocked      bool      `json:"blocked,omitempty"`
	LastLogin    time.Time `json:"last_login,omitempty"`
}

// Repo is an in-memory account store keyed by normalised email.
type Repo struct {
	accounts map[string]*Account
	emailIDs map[string]string // email to account id
	lock     sync.RWMutex
}

func NewRepo() *Repo {
	return &Repo{
		accounts: make(map[string]*Account),
		emailIDs: make(map[string]string),
	}
}

// Add creates an account or replaces the password of an existing one.
func (r *Repo) Add(email, password string) (*Account, error) {
	email = normaliseEmail(email)
	if email == "" || password == "" {
		return nil, perrors.Wrapf(perrors.ErrInvalidRequest, "email and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, perrors.Wrapf(err, "failed to hash password for %s", email)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if id, ok := r.emailIDs[email]; ok {
		r.accounts[id].PasswordHash = hash
		return r.accounts[id], nil
	}
	account := &Account{ID: uuid.New().String(), Email: email, PasswordHash: hash}
	r.accounts[account.ID] = account
	r.emailIDs[email] = account.ID
	return account, nil
}

// Authenticate checks the credentials and records the login time.
// Unknown emails and wrong passwords fail the same way.
func (r *Repo) Authenticate(email, password string) (*Account, error) {
	email = normaliseEmail(email)

	r.lock.Lock()
	defer r.lock.Unlock()

	id, ok := r.emailIDs[email]
	if !ok {
		return nil, perrors.ErrAuthenticationFailed
	}
	account := r.accounts[id]
	if account.Blocked || !CheckPasswordHash(password, account.PasswordHash) {
		return nil, perrors.ErrAuthenticationFailed
	}
	account.LastLogin = NowTimeFunc()
	copied := *account
	return &copied, nil
}

func (r *Repo) Get(id string) (*Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, perrors.Wrapf(perrors.ErrNotFound, "account %s", id)
	}
	copied := *account
	return &copied, nil
}

// Block stops an account from signing in or refreshing.
func (r *Repo) Block(email string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	id, ok := r.emailIDs[normaliseEmail(email)]
	if !ok {
		return perrors.Wrapf(perrors.ErrNotFound, "account %s", email)
	}
	r.accounts[id].Blocked = true
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
