package bunstore

import (
	"time"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/uptrace/bun"
)

type companyRecord struct {
	bun.BaseModel `bun:"table:companies,alias:co"`

	ID           string    `bun:"id,pk"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	LogoURL      string    `bun:"logo_url"`
	Website      string    `bun:"website"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func newCompanyRecord(c *companies.Company) *companyRecord {
	return &companyRecord{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		LogoURL:      c.LogoURL,
		Website:      c.Website,
		CreatedAt:    c.CreatedAt,
	}
}

func (r *companyRecord) toDomain() *companies.Company {
	return &companies.Company{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		LogoURL:      r.LogoURL,
		Website:      r.Website,
		CreatedAt:    r.CreatedAt,
	}
}

type contactRecord struct {
	bun.BaseModel `bun:"table:contacts,alias:ct"`

	ID          string    `bun:"id,pk"`
	CompanyID   string    `bun:"company_id,notnull"`
	DisplayName string    `bun:"display_name,notnull"`
	Title       string    `bun:"title"`
	Phone       string    `bun:"phone"`
	Email       string    `bun:"email"`
	Location    string    `bun:"location"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func newContactRecord(c *contacts.Contact) *contactRecord {
	return &contactRecord{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		DisplayName: c.DisplayName,
		Title:       c.Title,
		Phone:       c.Phone,
		Email:       c.Email,
		Location:    c.Location,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *contactRecord) toDomain() *contacts.Contact {
	return &contacts.Contact{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		DisplayName: r.DisplayName,
		Title:       r.Title,
		Phone:       r.Phone,
		Email:       r.Email,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
