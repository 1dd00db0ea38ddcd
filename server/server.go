package server

import (
	"net/http"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/cardlinkhq/cardlink-server/internal/config"
	"github.com/cardlinkhq/cardlink-server/sessions"
	"github.com/cardlinkhq/cardlink-server/wallet"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Repos holds the data-store collaborators the API surface reads from.
type Repos struct {
	Companies companies.Repo
	Contacts  contacts.Repo
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PRODUCTION")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	log       zerolog.Logger
	authority *sessions.Authority
	wallet    *wallet.Service
	repos     Repos
}

func New(cfg config.Config, log zerolog.Logger, authority *sessions.Authority, walletService *wallet.Service, repos Repos) (*Server, error) {
	if authority == nil {
		return nil, errors.New("[Server.New] session authority is required")
	}
	if walletService == nil {
		return nil, errors.New("[Server.New] wallet service is required")
	}
	if repos.Companies == nil || repos.Contacts == nil {
		return nil, errors.New("[Server.New] company and contact repos are required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		log:       log,
		authority: authority,
		wallet:    walletService,
		repos:     repos,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.log.Debug().Str("route", route).Msg("registered")
	}
}
