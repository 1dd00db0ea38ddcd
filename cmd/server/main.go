package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cardlinkhq/cardlink-server/companies"
	fakecompanyrepo "github.com/cardlinkhq/cardlink-server/companies/repofake"
	"github.com/cardlinkhq/cardlink-server/contacts"
	fakecontactrepo "github.com/cardlinkhq/cardlink-server/contacts/repofake"
	"github.com/cardlinkhq/cardlink-server/internal/config"
	"github.com/cardlinkhq/cardlink-server/notify"
	"github.com/cardlinkhq/cardlink-server/server"
	"github.com/cardlinkhq/cardlink-server/sessions"
	"github.com/cardlinkhq/cardlink-server/sessions/redisrepo"
	fakesessionrepo "github.com/cardlinkhq/cardlink-server/sessions/repofakes"
	"github.com/cardlinkhq/cardlink-server/store/bunstore"
	"github.com/cardlinkhq/cardlink-server/wallet"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	cfg := config.New()
	logger := newLogger(cfg)
	displayAppname(cfg.GetAppName())

	handler, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: handler}
	go listenAndServe(httpServer, logger)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(cfg config.Config, logger zerolog.Logger) (*server.Server, error) {
	companyRepo, contactRepo, err := newCardStores(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessionRepo, challengeRepo := newSessionStores(cfg, logger)

	isDev := !strings.EqualFold(cfg.GetEnv(), "PRODUCTION")
	sender := notify.NewLogSender(logger, isDev)

	authorityOptions := []sessions.Option{
		sessions.WithChallengeExpiry(cfg.GetChallengeExpiry()),
		sessions.WithSessionExpiry(cfg.GetSessionExpiry()),
	}
	if isDev && cfg.GetDebugBypassCode() != "" {
		authorityOptions = append(authorityOptions, sessions.WithStaticBypassCode(cfg.GetDebugBypassCode()))
		logger.Warn().Msg("static auth bypass code active")
	}

	authority, err := sessions.NewAuthority(sessions.Repos{
		Sessions:   sessionRepo,
		Challenges: challengeRepo,
		Companies:  companyRepo,
	}, cfg.GetAdminIdentities(), sender, authorityOptions...)
	if err != nil {
		return nil, err
	}

	walletService, err := wallet.NewService(wallet.NewStore(cfg))
	if err != nil {
		return nil, err
	}
	for _, provider := range []wallet.Provider{wallet.ProviderGoogle, wallet.ProviderSamsung} {
		logger.Info().
			Str("provider", string(provider)).
			Bool("configured", walletService.Configured(provider)).
			Msg("wallet provider")
	}

	return server.New(cfg, logger, authority, walletService, server.Repos{
		Companies: companyRepo,
		Contacts:  contactRepo,
	})
}

// newCardStores picks the company/contact store: SQLite when SQLITE_PATH is
// set, in-memory fakes otherwise.
func newCardStores(cfg config.Config, logger zerolog.Logger) (companies.Repo, contacts.Repo, error) {
	path := cfg.GetSQLitePath()
	if path == "" {
		logger.Info().Msg("using in-memory company/contact store")
		return fakecompanyrepo.NewFakeCompanyRepo(), fakecontactrepo.NewFakeContactRepo(), nil
	}

	db, err := bunstore.Open(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", path).Msg("using sqlite company/contact store")
	return bunstore.NewCompanyStore(db), bunstore.NewContactStore(db), nil
}

// newSessionStores picks the session/challenge store: Redis when REDIS_ADDR
// is set, in-memory fakes otherwise.
func newSessionStores(cfg config.Config, logger zerolog.Logger) (sessions.SessionRepo, sessions.ChallengeRepo) {
	addr := cfg.GetRedisAddr()
	if addr == "" {
		logger.Info().Msg("using in-memory session store")
		return fakesessionrepo.NewFakeSessionRepo(), fakesessionrepo.NewFakeChallengeRepo()
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	logger.Info().Str("addr", addr).Msg("using redis session store")
	return redisrepo.NewSessionRepo(client), redisrepo.NewChallengeRepo(client)
}

func newLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if !strings.EqualFold(cfg.GetEnv(), "PRODUCTION") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func listenAndServe(httpServer *http.Server, logger zerolog.Logger) {
	logger.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
