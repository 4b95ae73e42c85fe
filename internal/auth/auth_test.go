package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"
)

func testProvider(t *testing.T) *AllowListProvider {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	p, err := ParseAllowList([]string{
		"Admin@Clinica.com|admin|" + string(hash),
		"recepcao@clinica.com|viewer|" + string(hash),
	})
	if err != nil {
		t.Fatalf("ParseAllowList() error = %v", err)
	}
	return p
}

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role    Role
		allowed []Permission
		denied  []Permission
	}{
		{
			role:    RoleViewer,
			allowed: []Permission{AssetsRead, MovementsRead, ReportsRead},
			denied:  []Permission{AssetsCreate, AssetsUpdate, AssetsDelete, MovementsCreate, ReportsExport, AdminUsers},
		},
		{
			role:    RoleOperator,
			allowed: []Permission{AssetsRead, AssetsCreate, AssetsUpdate, MovementsCreate, ReportsExport},
			denied:  []Permission{AssetsDelete, AdminUsers, AdminSettings},
		},
		{
			role:    RoleManager,
			allowed: []Permission{AssetsDelete, ReportsExport},
			denied:  []Permission{AdminUsers, AdminSettings},
		},
		{
			role:    RoleAdmin,
			allowed: []Permission{AssetsRead, AssetsDelete, MovementsCreate, AdminUsers, AdminSettings},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for _, p := range tt.allowed {
				if !tt.role.Allows(p) {
					t.Errorf("%s should allow %s", tt.role, p)
				}
			}
			for _, p := range tt.denied {
				if tt.role.Allows(p) {
					t.Errorf("%s should not allow %s", tt.role, p)
				}
			}
		})
	}

	if len(RoleAdmin.Permissions()) != 10 {
		t.Errorf("admin has %d permissions, want 10", len(RoleAdmin.Permissions()))
	}
	if Role("guest").Allows(AssetsRead) {
		t.Error("unknown role should allow nothing")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(" Manager "); err != nil || r != RoleManager {
		t.Errorf("ParseRole() = %q, %v", r, err)
	}
	if r, _ := ParseRole(""); r != RoleViewer {
		t.Errorf("empty role = %q, want viewer", r)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestParseAllowList_Errors(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"two parts", "a@b.com|admin"},
		{"empty email", "|admin|$2a$04$abc"},
		{"bad role", "a@b.com|root|$2a$04$abc"},
		{"plaintext password", "a@b.com|admin|segredo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAllowList([]string{tt.entry}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSession_SignIn(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantMsg  string
	}{
		{"unknown email", "outro@clinica.com", "segredo", ErrEmailNotAllowed, MsgEmailNotAllowed},
		{"wrong password", "admin@clinica.com", "errada", ErrWrongPassword, MsgWrongPassword},
		{"email case ignored", "ADMIN@clinica.com", "segredo", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(testProvider(t))
			res := s.SignIn(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				if res.Success || !errors.Is(res.Err, tt.wantErr) || res.Error != tt.wantMsg {
					t.Errorf("SignIn() = %+v, want error %v", res, tt.wantErr)
				}
				if !errors.Is(res.Err, ErrInvalidCredentials) {
					t.Error("rejection should wrap ErrInvalidCredentials")
				}
				if s.IsAuthenticated() {
					t.Error("failed sign-in must not authenticate")
				}
				return
			}

			if !res.Success {
				t.Fatalf("SignIn() = %+v", res)
			}
			want := &User{ID: "admin", Email: "admin@clinica.com", Name: "Admin", Role: RoleAdmin}
			if diff := cmp.Diff(want, s.User()); diff != "" {
				t.Errorf("User mismatch (-want +got):\n%s", diff)
			}
			if !s.HasPermission(AdminSettings) {
				t.Error("admin should hold admin:settings")
			}
		})
	}
}

func TestSession_SubscribeAndSignOut(t *testing.T) {
	s := NewSession(testProvider(t))

	var first, second []string
	record := func(dst *[]string) AuthStateListener {
		return func(u *User) {
			if u == nil {
				*dst = append(*dst, "out")
				return
			}
			*dst = append(*dst, "in:"+u.Email)
		}
	}
	s.OnAuthStateChange(record(&first))
	unsubscribe := s.OnAuthStateChange(record(&second))

	s.SignIn(context.Background(), "recepcao@clinica.com", "segredo")
	if s.RequirePermission(AssetsCreate) == nil {
		t.Error("viewer should not hold assets:create")
	}
	if err := s.RequirePermission(AssetsCreate); err.Error() != "Permission required: assets:create" {
		t.Errorf("RequirePermission() = %v", err)
	}

	unsubscribe()
	unsubscribe()
	s.SignOut()
	s.SignOut()

	if diff := cmp.Diff([]string{"in:recepcao@clinica.com", "out"}, first); diff != "" {
		t.Errorf("first listener (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"in:recepcao@clinica.com"}, second); diff != "" {
		t.Errorf("unsubscribed listener (-want +got):\n%s", diff)
	}
	if s.IsAuthenticated() || s.User() != nil || s.Permissions() != nil || s.HasPermission(AssetsRead) {
		t.Error("sign-out should clear user and permissions")
	}
}

func TestSession_ListenerMaySubscribe(t *testing.T) {
	s := NewSession(testProvider(t))
	calls := 0
	s.OnAuthStateChange(func(*User) {
		calls++
		s.OnAuthStateChange(func(*User) {})
	})
	s.SignIn(context.Background(), "admin@clinica.com", "segredo")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSessionStore(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewSessionStore(testProvider(t), time.Hour)
	st.now = func() time.Time { return now }

	if s, res := st.SignIn(context.Background(), "admin@clinica.com", "errada"); s != nil || res.Success {
		t.Fatal("failed sign-in should not create a session")
	}

	s, res := st.SignIn(context.Background(), "admin@clinica.com", "segredo")
	if !res.Success {
		t.Fatalf("SignIn() = %+v", res)
	}
	if got, err := st.Get(s.ID()); err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}

	s.SignOut()
	if _, err := st.Get(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("signed-out session still stored: %v", err)
	}

	s2, _ := st.SignIn(context.Background(), "admin@clinica.com", "segredo")
	if !st.Revoke(s2.ID()) || s2.IsAuthenticated() {
		t.Error("Revoke should sign the session out")
	}
	if st.Revoke(s2.ID()) {
		t.Error("second Revoke should report false")
	}

	s3, _ := st.SignIn(context.Background(), "admin@clinica.com", "segredo")
	now = now.Add(2 * time.Hour)
	if s3.IsAuthenticated() {
		t.Error("session should expire after the ttl")
	}
	if n := st.Sweep(); n != 1 || st.Len() != 0 {
		t.Errorf("Sweep() = %d, Len() = %d", n, st.Len())
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gate := NewGate(testProvider(t), strings.Repeat("k", 32), "sistema-patrimonial", time.Hour)
	gate.Store.now = func() time.Time { return now }
	gate.Tokens.now = func() time.Time { return now }

	s, _ := gate.Store.SignIn(context.Background(), "recepcao@clinica.com", "segredo")
	token, exp, err := gate.Tokens.Issue(s)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Errorf("exp = %v", exp)
	}

	claims, err := gate.Tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.SessionID != s.ID() || claims.Subject != "recepcao@clinica.com" || claims.Role != RoleViewer {
		t.Errorf("claims = %+v", claims)
	}

	got, err := gate.Authenticate(token)
	if err != nil || got != s {
		t.Fatalf("Authenticate() = %v, %v", got, err)
	}

	t.Run("tampered", func(t *testing.T) {
		if _, err := gate.Tokens.Parse(token + "x"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenIssuer(strings.Repeat("z", 32), "sistema-patrimonial", time.Hour)
		other.now = gate.Tokens.now
		if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		gate.Store.Revoke(s.ID())
		if _, err := gate.Authenticate(token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		gate.Tokens.now = func() time.Time { return now.Add(2 * time.Hour) }
		if _, err := gate.Tokens.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("segredo")
	if err != nil {
		t.Fatal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("segredo")) != nil {
		t.Error("hash does not match password")
	}
}
