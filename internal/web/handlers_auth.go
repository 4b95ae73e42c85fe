package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/auth"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/validation"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/web/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string            `json:"token"`
	ExpiresAt   time.Time         `json:"expiresAt"`
	User        *auth.User        `json:"user"`
	Permissions []auth.Permission `json:"permissions"`
}

type meResponse struct {
	User        *auth.User        `json:"user"`
	Permissions []auth.Permission `json:"permissions"`
	SignedInAt  time.Time         `json:"signedInAt"`
}

// handleLogin checks credentials and returns a bearer token for a new
// session. Failed attempts are audited with the rejection reason.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	values := map[string]any{"email": req.Email, "password": req.Password}
	if errs := validation.Validate(validation.LoginSchema(), values); len(errs) > 0 {
		delete(values, "password")
		s.respondError(w, r, &core.InputError{Errors: validation.List(errs, values)}, 0)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	sess, res := s.gate.Store.SignIn(ctx, req.Email, req.Password)
	if !res.Success {
		reason := res.Error
		if res.Err != nil {
			reason = res.Err.Error()
		}
		s.svc.RecordSignInFailed(ctx, req.Email, reason)

		err := res.Err
		if err == nil {
			err = auth.ErrInvalidCredentials
		}
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		mapped := core.MapError(err)
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   res.Error,
			Message: res.Error,
			Action:  mapped.Action,
			Code:    mapped.Code,
		})
		return
	}

	token, exp, err := s.gate.Tokens.Issue(sess)
	if err != nil {
		s.gate.Store.Revoke(sess.ID())
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.svc.RecordSignIn(ctx, res.User.Email, sess.ID())

	writeJSON(w, http.StatusOK, loginResponse{
		Token:       token,
		ExpiresAt:   exp,
		User:        res.User,
		Permissions: sess.Permissions(),
	})
}

// handleLogout revokes the caller's session. Its tokens stop working
// immediately.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	email := core.GetUserEmailFromContext(r.Context())
	id := sess.ID()

	s.gate.Store.Revoke(id)
	s.svc.RecordSignOut(WithRequestMetadata(r.Context(), r), email, id)

	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, meResponse{
		User:        sess.User(),
		Permissions: sess.Permissions(),
		SignedInAt:  sess.SignedInAt(),
	})
}
