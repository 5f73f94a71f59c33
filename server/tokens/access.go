// Package tokens issues and checks the credentials handed out by the stand-in panel API.
package tokens

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const issuer = "restaurant-panel"

// AccessIssuer signs short-lived HS256 access tokens.
type AccessIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewAccessIssuer(secret string, expiry time.Duration) *AccessIssuer {
	return &AccessIssuer{secret: []byte(secret), expiry: expiry}
}

// Issue returns a signed access token for accountID and its lifetime in seconds.
func (a *AccessIssuer) Issue(accountID string) (string, int, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"iss":        issuer,
		"sub":        accountID,
		"iat":        now.Unix(),
		"exp":        now.Add(a.expiry).Unix(),
		"jti":        uuid.New().String(),
		"token_type": "access",
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", 0, errors.Wrap(err, "AccessIssuer.Issue SignedString")
	}
	return signed, int(a.expiry / time.Second), nil
}

// Verify checks the signature, algorithm, issuer and expiry of raw and returns its subject.
func (a *AccessIssuer) Verify(raw string) (string, error) {
	token, err := jwtlib.Parse(raw,
		func(*jwtlib.Token) (any, error) { return a.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return "", errors.Wrap(err, "AccessIssuer.Verify Parse")
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", errors.Wrap(err, "AccessIssuer.Verify GetSubject")
	}
	if subject == "" {
		return "", errors.New("access token without subject")
	}
	return subject, nil
}
