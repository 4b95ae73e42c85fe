package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is wrapped by every sign-in rejection.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailNotAllowed = fmt.Errorf("%w: email not allowed", ErrInvalidCredentials)
	ErrWrongPassword   = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
)

// Sign-in messages shown to users.
const (
	MsgEmailNotAllowed = "Email não autorizado para acesso ao sistema"
	MsgWrongPassword   = "Senha incorreta"
	MsgSignInFailed    = "Erro ao fazer login"
)

// User is the identity of a signed-in person.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// CredentialProvider checks an email and password and returns the user
// they belong to.
type CredentialProvider interface {
	Authenticate(ctx context.Context, email, password string) (User, error)
}

type allowEntry struct {
	user User
	hash []byte
}

// AllowListProvider authenticates against a fixed list of users with
// bcrypt password hashes.
type AllowListProvider struct {
	entries map[string]allowEntry
}

// ParseAllowList builds a provider from "email|role|bcrypt-hash" entries.
func ParseAllowList(entries []string) (*AllowListProvider, error) {
	p := &AllowListProvider{entries: make(map[string]allowEntry, len(entries))}
	for i, raw := range entries {
		parts := strings.Split(strings.TrimSpace(raw), "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("allow-list entry %d: want email|role|hash", i+1)
		}
		email := normalizeEmail(parts[0])
		if email == "" {
			return nil, fmt.Errorf("allow-list entry %d: empty email", i+1)
		}
		role, err := ParseRole(parts[1])
		if err != nil {
			return nil, fmt.Errorf("allow-list entry %d: %w", i+1, err)
		}
		hash := strings.TrimSpace(parts[2])
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("allow-list entry %d: %w", i+1, err)
		}
		p.entries[email] = allowEntry{user: userFromEmail(email, role), hash: []byte(hash)}
	}
	return p, nil
}

// Authenticate implements CredentialProvider.
func (p *AllowListProvider) Authenticate(_ context.Context, email, password string) (User, error) {
	entry, ok := p.entries[normalizeEmail(email)]
	if !ok {
		return User{}, ErrEmailNotAllowed
	}
	if err := bcrypt.CompareHashAndPassword(entry.hash, []byte(password)); err != nil {
		return User{}, ErrWrongPassword
	}
	return entry.user, nil
}

// Len returns the number of allowed users.
func (p *AllowListProvider) Len() int {
	return len(p.entries)
}

// HashPassword returns a bcrypt hash suitable for an allow-list entry.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// userFromEmail derives the id and display name from the local part.
func userFromEmail(email string, role Role) User {
	local, _, _ := strings.Cut(email, "@")
	name := local
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return User{ID: local, Email: email, Name: name, Role: role}
}

// signInMessage converts a provider error into the message shown to users.
func signInMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmailNotAllowed):
		return MsgEmailNotAllowed
	case errors.Is(err, ErrWrongPassword):
		return MsgWrongPassword
	}
	return MsgSignInFailed
}
