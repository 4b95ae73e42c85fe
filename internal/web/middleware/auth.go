package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/auth"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/logging"
)

// Messages of the JSON bodies written by the auth middleware.
const (
	MsgMissingHeader = "Authorization header is required"
	MsgBadHeader     = "Invalid authorization header format"
	MsgInvalidToken  = "Invalid or expired token"
)

type sessionKey struct{}

// Authenticator resolves a bearer token to a live session. *auth.Gate
// satisfies it.
type Authenticator interface {
	Authenticate(token string) (*auth.Session, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer <jwt>"
// header. Accepted requests carry the session in their context, and the
// user's email for audit entries and log lines.
func BearerAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, r, MsgMissingHeader)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w, r, MsgBadHeader)
				return
			}

			sess, err := a.Authenticate(strings.TrimSpace(token))
			if err != nil {
				logging.FromContext(r.Context()).Debug("auth: token rejected", "error", err)
				unauthorized(w, r, MsgInvalidToken)
				return
			}

			email := ""
			if u := sess.User(); u != nil {
				email = u.Email
			}
			setUser(w, email)

			ctx := ContextWithSession(r.Context(), sess)
			ctx = core.ContextWithUserEmail(ctx, email)
			ctx = logging.ContextWithAttrs(ctx, "user", email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission rejects requests whose session lacks p with 403. It
// must run after BearerAuth.
func RequirePermission(p auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				unauthorized(w, r, MsgMissingHeader)
				return
			}
			if err := sess.RequirePermission(p); err != nil {
				slog.Warn("auth: permission denied",
					"path", r.URL.Path,
					"method", r.Method,
					"permission", string(p),
					"user", core.GetUserEmailFromContext(r.Context()),
				)
				writeJSONError(w, http.StatusForbidden, err.Error(), "AUTH006")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the session BearerAuth stored, or nil.
func SessionFromContext(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return s
}

// ContextWithSession stores sess the way BearerAuth does.
func ContextWithSession(ctx context.Context, sess *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	slog.Warn("auth: unauthorized",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"reason", msg,
	)
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeJSONError(w, http.StatusUnauthorized, msg, "AUTH005")
}

// writeJSONError writes the same error envelope the API handlers use.
func writeJSONError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   msg,
		"message": msg,
		"code":    code,
	})
}
