package server

import (
	"net/http"
	"time"

	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/cardlinkhq/cardlink-server/internal/utils"
	"github.com/google/uuid"
)

type contactCreateRequest struct {
	DisplayName string `json:"display_name"`
	Title       string `json:"title"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Location    string `json:"location"`
}

type contactUpdateRequest struct {
	DisplayName *string `json:"display_name"`
	Title       *string `json:"title"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Location    *string `json:"location"`
}

// ContactsListHandler lists a company's contacts, scoped by ownership.
func (s *Server) ContactsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := r.PathValue("id")
		sessionCtx := sessionContext(r)
		if sessionCtx == nil || !sessionCtx.CanAccessCompany(companyID) {
			s.writeErrorTag(w, http.StatusForbidden, "forbidden")
			return
		}

		offset, limit := paginationParams(r)
		list, err := s.repos.Contacts.ListByCompany(companyID, offset, limit)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]any{"contacts": list})
	}
}

// ContactCreateHandler adds a contact under a company the caller controls.
func (s *Server) ContactCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := r.PathValue("id")
		sessionCtx := sessionContext(r)
		if sessionCtx == nil || !sessionCtx.CanAccessCompany(companyID) {
			s.writeErrorTag(w, http.StatusForbidden, "forbidden")
			return
		}

		if _, err := s.repos.Companies.Get(companyID); err != nil {
			s.writeError(w, r, err)
			return
		}

		var req contactCreateRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		now := time.Now()
		contact := &contacts.Contact{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			DisplayName: req.DisplayName,
			Title:       req.Title,
			Phone:       req.Phone,
			Email:       req.Email,
			Location:    req.Location,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := contact.Validate(); err != nil {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrValidation, "%v", err))
			return
		}

		if err := s.repos.Contacts.Upsert(contact); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, contact)
	}
}

// ContactGetHandler returns one contact for its owning company's admin.
func (s *Server) ContactGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, ok := s.ownedContact(w, r)
		if !ok {
			return
		}
		s.writeJSON(w, http.StatusOK, contact)
	}
}

// ContactUpdateHandler applies a partial update. The owning company never
// changes; a contact cannot be moved between companies.
func (s *Server) ContactUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, ok := s.ownedContact(w, r)
		if !ok {
			return
		}

		var req contactUpdateRequest
		if err := decodeJSONBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		if req.DisplayName != nil {
			contact.DisplayName = utils.Value(req.DisplayName)
		}
		if req.Title != nil {
			contact.Title = utils.Value(req.Title)
		}
		if req.Phone != nil {
			contact.Phone = utils.Value(req.Phone)
		}
		if req.Email != nil {
			contact.Email = utils.Value(req.Email)
		}
		if req.Location != nil {
			contact.Location = utils.Value(req.Location)
		}
		contact.UpdatedAt = time.Now()

		if err := contact.Validate(); err != nil {
			s.writeError(w, r, apperrors.Wrapf(apperrors.ErrValidation, "%v", err))
			return
		}

		if err := s.repos.Contacts.Upsert(contact); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, contact)
	}
}

// ContactDeleteHandler removes a contact for its owning company's admin.
func (s *Server) ContactDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, ok := s.ownedContact(w, r)
		if !ok {
			return
		}

		if err := s.repos.Contacts.Delete(contact.ID); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ownedContact loads the contact on the path and enforces ownership through
// its company. Writes the error response itself when the check fails.
func (s *Server) ownedContact(w http.ResponseWriter, r *http.Request) (*contacts.Contact, bool) {
	sessionCtx := sessionContext(r)
	if sessionCtx == nil {
		s.writeErrorTag(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	contact, err := s.repos.Contacts.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}

	if !sessionCtx.CanAccessCompany(contact.CompanyID) {
		s.writeErrorTag(w, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return contact, true
}
