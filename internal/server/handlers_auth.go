package server

import (
	"net/http"
	"time"
)

// TokenRequest exchanges API client credentials for a bearer token
type TokenRequest struct {
	ClientID     string `json:"client_id" validate:"required,max=128"`
	ClientSecret string `json:"client_secret" validate:"required,max=256"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
	ExpiresIn   int    `json:"expires_in"`
}

// handleToken verifies client_secret against the bcrypt hash configured for
// client_id and issues a JWT.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "token issuance"})
		return
	}

	var req TokenRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validateStruct(&req); err != nil {
		s.writeError(w, r, err)
		return
	}

	hash, ok := s.cfg.Auth.Clients[req.ClientID]
	if !ok || !s.secrets.Verify(req.ClientSecret, hash) {
		s.logger.Warn("token request rejected", "client_id", req.ClientID)
		s.writeError(w, r, &ErrInvalidCredentials{})
		return
	}

	token, expiresAt, err := s.jwtService.GenerateToken(req.ClientID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
	})
}
