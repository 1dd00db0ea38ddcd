package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthChallenge = "/auth/challenge"
	RouteAuthVerify    = "/auth/verify"
	RouteAuthLogin     = "/auth/login"
	RouteAuthLogout    = "/auth/logout"

	// Admin API Routes
	RouteAPICompanies       = "/api/companies"
	RouteAPICompany         = "/api/companies/{id}"
	RouteAPICompanyContacts = "/api/companies/{id}/contacts"
	RouteAPIContact         = "/api/contacts/{id}"

	// Public Card Routes
	RouteCard       = "/cards/{contactID}"
	RouteCardWallet = "/cards/{contactID}/wallet/{provider}"
)
