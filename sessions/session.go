package sessions

import "time"

// Role is the authorization level carried by a session.
type Role string

const (
	// RoleSuperAdmin may act on any company.
	RoleSuperAdmin Role = "super_admin"
	// RoleCompanyAdmin may act only on its own bound company.
	RoleCompanyAdmin Role = "company_admin"
)

// Session is an opaque server-side login record. The ID is the bearer token
// handed to the client; nothing inside the session ever leaves the server.
type Session struct {
	ID        string    // Opaque token (UUID)
	Identity  string    // Email of the authenticated caller
	Role      Role      // super_admin or company_admin
	CompanyID string    // Bound company; set iff Role is company_admin
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Challenge is a pending one-time login code for an administrator identity.
// At most one live challenge exists per identity; a new request overwrites.
type Challenge struct {
	Identity  string
	Code      string // 6 digit numeric, single use
	ExpiresAt time.Time
}

// Context is what Validate hands back to callers: just enough to enforce the
// ownership policy, without exposing the session record itself.
type Context struct {
	SessionID string
	Identity  string
	Role      Role
	CompanyID string
}

// CanAccessCompany reports whether the caller may act on the given company.
// Super admins act on any company; company admins only on their own.
func (c Context) CanAccessCompany(companyID string) bool {
	switch c.Role {
	case RoleSuperAdmin:
		return true
	case RoleCompanyAdmin:
		return companyID != "" && c.CompanyID == companyID
	}
	return false
}
