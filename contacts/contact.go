package contacts

import (
	"fmt"
	"strings"
	"time"
)

// Contact is a single cardholder belonging to a company. Optional display
// fields default to empty strings, never null, to satisfy the wallet
// providers' schema expectations.
type Contact struct {
	ID        string    `json:"id,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`

	DisplayName string `json:"display_name,omitempty"`
	Title       string `json:"title,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Location    string `json:"location,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Validate checks the fields a contact must carry before it can be stored or
// turned into a wallet pass.
func (c *Contact) Validate() error {
	if strings.TrimSpace(c.ID) == "" && strings.TrimSpace(c.CompanyID) == "" {
		return fmt.Errorf("contact must belong to a company")
	}
	if strings.TrimSpace(c.DisplayName) == "" {
		return fmt.Errorf("contact display name is required")
	}
	return nil
}
