package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, issuer or
// expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are carried by session tokens. The subject is the user's email.
type Claims struct {
	SessionID string `json:"sid"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer for tokens valid for ttl.
func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue returns a token referencing the session and its expiry.
func (t *TokenIssuer) Issue(s *Session) (string, time.Time, error) {
	u := s.User()
	if u == nil {
		return "", time.Time{}, ErrSessionNotFound
	}

	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		SessionID: s.ID(),
		Role:      u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies a token and returns its claims.
func (t *TokenIssuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidToken)
	}
	return claims, nil
}

// Gate resolves bearer tokens to live sessions.
type Gate struct {
	Store  *SessionStore
	Tokens *TokenIssuer
}

// NewGate wires a store and issuer with the same lifetime.
func NewGate(p CredentialProvider, secret, issuer string, ttl time.Duration) *Gate {
	return &Gate{
		Store:  NewSessionStore(p, ttl),
		Tokens: NewTokenIssuer(secret, issuer, ttl),
	}
}

// Authenticate returns the session a token refers to. A signed-out session
// makes its tokens invalid even before they expire.
func (g *Gate) Authenticate(token string) (*Session, error) {
	claims, err := g.Tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	s, err := g.Store.Get(claims.SessionID)
	if err != nil {
		return nil, err
	}
	return s, nil
}
