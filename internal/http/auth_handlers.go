package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"schoolapp-backend-go/internal/legacy"
	"schoolapp-backend-go/internal/normalize"
	"schoolapp-backend-go/internal/services"
	"schoolapp-backend-go/internal/session"
)

type loginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
	Branch   string `json:"branch"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
	UserName     string `json:"userName"`
	StudentID    string `json:"studentId"`
	Branch       string `json:"branch"`
}

// Login proxies the credential check to the legacy backend and, on success,
// stores the session and issues the gateway's own token pair. The backend
// reports the student's branch with the credential check; the request's
// branch field is only a fallback for older backends that omit it.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "loginId and password are required")
		return
	}

	payload, err := s.Legacy.LoginCheck(r.Context(), req.LoginID, req.Password)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	result, err := normalize.LoginResultFrom(payload)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	if !result.OK {
		WriteError(w, http.StatusUnauthorized, result.Message)
		return
	}

	branch := result.Branch
	if branch == "" {
		branch = req.Branch
	}
	sess := &session.Session{
		LoginID:    req.LoginID,
		UserName:   result.UserName,
		StudentID:  result.StudentID,
		Branch:     branch,
		IsLoggedIn: true,
	}
	if err := s.Store.Save(sess); err != nil {
		s.Log.WithError(err).Error("session save failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	access, expiresAt, err := s.Tokens.CreateAccessToken(req.LoginID, result.UserName)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refresh, err := s.Tokens.CreateRefreshToken(req.LoginID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		UserName:     result.UserName,
		StudentID:    result.StudentID,
		Branch:       branch,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "refreshToken is required")
		return
	}
	token, claims, err := s.Tokens.ParseToken(req.RefreshToken)
	if err != nil || !token.Valid || claims["typ"] != "refresh" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	loginID, _ := claims["sub"].(string)
	sess, err := s.Store.Load(loginID)
	if err != nil || sess == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	access, expiresAt, err := s.Tokens.CreateAccessToken(loginID, sess.UserName)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refresh, err := s.Tokens.CreateRefreshToken(loginID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		UserName:     sess.UserName,
		StudentID:    sess.StudentID,
		Branch:       sess.Branch,
	})
}

// Logout clears the stored session and forgets the user's controllers, so a
// later login starts every resource from idle.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	loginID := CurrentLoginID(r)
	if err := s.Store.Clear(loginID); err != nil {
		s.Log.WithError(err).Error("session clear failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.dropUserControllers(loginID)
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeUpstreamError maps a taxonomy or service error on a non-resource path
// (login, password change, admin ops) to an HTTP status. Resource reads never
// come here; their errors ride inside the snapshot envelope.
func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	var lerr *legacy.Error
	if errors.As(err, &lerr) {
		WriteError(w, http.StatusBadGateway, lerr.Message)
		return
	}
	var serr services.ServiceError
	if errors.As(err, &serr) {
		WriteError(w, serr.Status, serr.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
