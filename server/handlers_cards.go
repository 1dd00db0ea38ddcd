package server

import (
	"net/http"

	"github.com/cardlinkhq/cardlink-server/wallet"
)

// publicCard is the unauthenticated view of a contact. It carries display
// fields only: no company credentials, no timestamps, no internal ids beyond
// the contact's own.
type publicCard struct {
	ContactID   string `json:"contact_id"`
	DisplayName string `json:"display_name"`
	Title       string `json:"title,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Location    string `json:"location,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	Website     string `json:"website,omitempty"`
}

// PublicCardHandler serves the public card view for a contact.
func (s *Server) PublicCardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, err := s.repos.Contacts.Get(r.PathValue("contactID"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		company, err := s.repos.Companies.Get(contact.CompanyID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, publicCard{
			ContactID:   contact.ID,
			DisplayName: contact.DisplayName,
			Title:       contact.Title,
			Phone:       contact.Phone,
			Email:       contact.Email,
			Location:    contact.Location,
			CompanyName: company.Name,
			LogoURL:     company.LogoURL,
			Website:     company.Website,
		})
	}
}

// WalletSaveLinkHandler issues a signed save link for the requested wallet
// provider. No login required: the card page offers the save buttons to
// anyone viewing it.
func (s *Server) WalletSaveLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := wallet.ParseProvider(r.PathValue("provider"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		contact, err := s.repos.Contacts.Get(r.PathValue("contactID"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		company, err := s.repos.Companies.Get(contact.CompanyID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		saveURL, err := s.wallet.SaveLink(provider, contact, company)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{"save_url": saveURL})
	}
}
