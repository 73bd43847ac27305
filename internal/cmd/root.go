// Package cmd wires the callctl command tree.
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/api"
	"github.com/grandcallpro/callctl/internal/auth"
	"github.com/grandcallpro/callctl/internal/config"
	"github.com/grandcallpro/callctl/internal/errors"
	"github.com/grandcallpro/callctl/internal/log"
	"github.com/grandcallpro/callctl/internal/route"
	"github.com/grandcallpro/callctl/internal/session"
)

var (
	flagConfig   string
	flagEnv      string
	flagAPIURL   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "callctl",
	Short: "GrandCall Pro administration CLI",
	Long: `callctl is the administrative client for the GrandCall Pro PBX
platform: call records, extensions, users, dashboard data, backups, and
notifications over the /v1 REST API.

Authenticate once with 'callctl auth login'; the session is stored in
~/.callctl and attached to every request until logout or expiry.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.callctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "environment profile: development, test, production")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides the profile)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// app holds the wired components for one command invocation.
// Everything is constructed explicitly here; no package-level session
// state exists anywhere in the program.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *auth.FileStore
	client  *api.Client
	service *auth.Service
	manager *session.Manager
	guard   *route.Guard
}

// newApp builds the component graph from configuration and flags
func newApp() (*app, error) {
	cfgPath := flagConfig
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if flagEnv != "" {
		cfg.Environment = config.Environment(flagEnv)
	}
	if flagAPIURL != "" {
		cfg.BaseURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = log.ParseFormat(cfg.LogFormat)
	logger := log.New(logCfg)
	log.SetDefault(logger)

	store := auth.NewFileStore(cfg.StateDir)
	client := api.NewClient(cfg.APIBaseURL(),
		api.WithCredentials(store),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
	)
	service := auth.NewService(client, store, logger)
	manager := session.NewManager(service, client.Notifier(),
		session.WithConfirmTimeout(cfg.ConfirmTimeout),
		session.WithLogger(logger),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  client,
		service: service,
		manager: manager,
		guard:   route.NewGuard(),
	}, nil
}

// Close releases the app's subscriptions
func (a *app) Close() {
	a.manager.Close()
}

// requireSession hydrates the session and applies the guard for a
// protected location. Commands never reach the API without this.
func (a *app) requireSession(ctx context.Context, location string) error {
	a.manager.Start(ctx)

	wctx, cancel := context.WithTimeout(ctx, a.cfg.ConfirmTimeout+2*time.Second)
	defer cancel()
	if err := a.manager.WaitReady(wctx); err != nil {
		return err
	}

	decision := a.guard.Decide(a.manager.State(), location)
	if decision.Action == route.ActionRedirect {
		return errors.NewNotLoggedInError()
	}
	return nil
}
