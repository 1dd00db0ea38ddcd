package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/cardlinkhq/cardlink-server/internal/utils"
	"github.com/cardlinkhq/cardlink-server/sessions"
	"github.com/google/uuid"
)

type companyCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	LogoURL  string `json:"logo_url"`
	Website  string `json:"website"`
}

// companyUpdateRequest uses pointers so omitted fields keep their stored
// values while empty strings clear them.
type companyUpdateRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	LogoURL  *string `json:"logo_url"`
	Website  *string `json:"website"`
}

// CompaniesListHandler lists all companies. Super admin only.
func (s *Server) CompaniesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionCtx := sessionContext(r)
		if sessionCtx == nil || sessionCtx.Role != sessions.RoleSuperAdmin {
			s.writeErrorTag(w, http.StatusForbidden, "forbidden")
			return
		}

		offset, limit := paginationParams(r)
		list, err := s.repos.Companies.List(offset, limit)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]any{"companies": list})
	}
}

// CompanyCreateHandler registers a new company. Super admin only.
func (s *Server) CompanyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionCtx := sessionContext(r)
		if sessionCtx == nil || sessionCtx.Role != sessions.RoleSuperAdmin {
			s.writeErrorTag(w, http.StatusForbidden, "forbidden")
			return
		}

		var req companyCreateRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if req.Password == "" {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrValidation, "company password is required"))
			return
		}

		hash, err := companies.HashPassword(req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		company := &companies.Company{
			ID:           uuid.New().String(),
			Name:         req.Name,
			Email:        companies.NormalizeEmail(req.Email),
			PasswordHash: hash,
			LogoURL:      req.LogoURL,
			Website:      req.Website,
			CreatedAt:    time.Now(),
		}
		if err := company.Validate(); err != nil {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrValidation, "%v", err))
			return
		}

		if err := s.repos.Companies.Upsert(company); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, company)
	}
}

// CompanyGetHandler returns one company. Super admins see any company;
// company admins only their own.
func (s *Server) CompanyGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := r.PathValue("id")
		sessionCtx := sessionContext(r)
		if sessionCtx == nil || !sessionCtx.CanAccessCompany(companyID) {
			s.writeErrorTag(w, http.StatusForbidden, "forbidden")
			return
		}

		company, err := s.repos.Companies.Get(companyID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, company)
	}
}

// CompanyUpdateHandler applies a partial update to a company. Login email is
// immutable; a new password is re-hashed before storage.
func (s *Server) CompanyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := r.PathValue("id")
		sessionCtx := sessionContext(r)
		if sessionCtx == nil || !sessionCtx.CanAccessCompany(companyID) {
			s.writeErrorTag(w, http.StatusForbidden, "forbidden")
			return
		}

		var req companyUpdateRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		company, err := s.repos.Companies.Get(companyID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		if req.Name != nil {
			company.Name = utils.Value(req.Name)
		}
		if req.LogoURL != nil {
			company.LogoURL = utils.Value(req.LogoURL)
		}
		if req.Website != nil {
			company.Website = utils.Value(req.Website)
		}
		if req.Password != nil && utils.Value(req.Password) != "" {
			hash, err := companies.HashPassword(utils.Value(req.Password))
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			company.PasswordHash = hash
		}

		if err := company.Validate(); err != nil {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrValidation, "%v", err))
			return
		}

		if err := s.repos.Companies.Upsert(company); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, company)
	}
}

// CompanyDeleteHandler removes a company. Super admin only.
func (s *Server) CompanyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionCtx := sessionContext(r)
		if sessionCtx == nil || sessionCtx.Role != sessions.RoleSuperAdmin {
			s.writeErrorTag(w, http.StatusForbidden, "forbidden")
			return
		}

		companyID := r.PathValue("id")
		if err := s.repos.Companies.Delete(companyID); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func paginationParams(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return offset, limit
}
