package server

import (
	"net/http"
	"time"
)

type challengeRequest struct {
	Identity string `json:"identity"`
}

type verifyRequest struct {
	Identity string `json:"identity"`
	Code     string `json:"code"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	CompanyID string    `json:"company_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChallengeHandler starts the administrator challenge login. The code goes
// out through the notification port and never appears in the response.
func (s *Server) ChallengeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req challengeRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		if _, err := s.authority.IssueChallenge(req.Identity); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "challenge_sent"})
	}
}

// VerifyHandler exchanges a pending challenge code for a super-admin session.
func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		session, err := s.authority.VerifyChallenge(req.Identity, req.Code)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, sessionResponse{
			Token:     session.ID,
			Role:      string(session.Role),
			CompanyID: session.CompanyID,
			ExpiresAt: session.ExpiresAt,
		})
	}
}

// CompanyLoginHandler exchanges company credentials for a company-admin
// session bound to the company.
func (s *Server) CompanyLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		session, err := s.authority.LoginCompany(req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, sessionResponse{
			Token:     session.ID,
			Role:      string(session.Role),
			CompanyID: session.CompanyID,
			ExpiresAt: session.ExpiresAt,
		})
	}
}

// LogoutHandler revokes the caller's own session. Runs behind RequireSession
// so the token is already known to be live.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionCtx := sessionContext(r)
		if sessionCtx == nil {
			s.writeErrorTag(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := s.authority.Revoke(sessionCtx.SessionID); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
	}
}
