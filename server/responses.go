package server

import (
	"encoding/json"
	"net/http"

	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("response encode")
	}
}

func (s *Server) writeErrorTag(w http.ResponseWriter, status int, tag string) {
	s.writeJSON(w, status, errorResponse{Error: tag})
}

// writeError maps domain errors to HTTP responses. The response body carries
// only a stable tag; the full error chain stays in the server log. Key
// material and credential details never reach the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, tag := classifyError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		s.log.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}
	s.writeErrorTag(w, status, tag)
}

func classifyError(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case apperrors.Is(err, apperrors.ErrNoPendingChallenge):
		return http.StatusUnauthorized, "no_pending_challenge"
	case apperrors.Is(err, apperrors.ErrChallengeExpired):
		return http.StatusUnauthorized, "challenge_expired"
	case apperrors.Is(err, apperrors.ErrInvalidCode):
		return http.StatusUnauthorized, "invalid_code"
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case apperrors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case apperrors.Is(err, apperrors.ErrProviderNotConfigured),
		apperrors.Is(err, apperrors.ErrKeyImport),
		apperrors.Is(err, apperrors.ErrSigningFailed):
		return http.StatusBadGateway, "wallet_unavailable"
	}
	return http.StatusInternalServerError, "server_error"
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Wrapf(apperrors.ErrValidation, "malformed request body: %v", err)
	}
	return nil
}
