package companies

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Company is a registered organisation. Each company owns a set of contacts
// and authenticates with an email/password pair for its admin area.
type Company struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`   // Login email, stored lowercase
	PasswordHash string    `json:"-"`                 // bcrypt hash - never serialize
	LogoURL      string    `json:"logo_url,omitempty"`
	Website      string    `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Validate checks the fields required before a company can be stored.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("company name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("company email is required")
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("company email is malformed")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for lookups. Company emails
// are matched case-insensitively everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
