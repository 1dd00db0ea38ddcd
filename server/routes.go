package server

func (s *Server) initRoutes() {
	// Auth
	s.RegisterRouteHandler("POST "+RouteAuthChallenge, ChainMiddleware(s.ChallengeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthVerify, ChainMiddleware(s.VerifyHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.CompanyLoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.ProtectedMiddleware()...))

	// Company administration
	s.RegisterRouteHandler("GET "+RouteAPICompanies, ChainMiddleware(s.CompaniesListHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPICompanies, ChainMiddleware(s.CompanyCreateHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPICompany, ChainMiddleware(s.CompanyGetHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPICompany, ChainMiddleware(s.CompanyUpdateHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPICompany, ChainMiddleware(s.CompanyDeleteHandler(), s.ProtectedMiddleware()...))

	// Contact administration
	s.RegisterRouteHandler("GET "+RouteAPICompanyContacts, ChainMiddleware(s.ContactsListHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPICompanyContacts, ChainMiddleware(s.ContactCreateHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIContact, ChainMiddleware(s.ContactGetHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteAPIContact, ChainMiddleware(s.ContactUpdateHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAPIContact, ChainMiddleware(s.ContactDeleteHandler(), s.ProtectedMiddleware()...))

	// Public card endpoints
	s.RegisterRouteHandler("GET "+RouteCard, ChainMiddleware(s.PublicCardHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCardWallet, ChainMiddleware(s.WalletSaveLinkHandler(), s.APIMiddleware()...))
}
