// Package commands implements the pennywise CLI on top of the client SDK.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"pennywise/internal/api"
	"pennywise/internal/config"
	"pennywise/internal/logger"
	"pennywise/internal/prefs"
	"pennywise/internal/session"
)

// app bundles the wired client stack the subcommands operate on.
type app struct {
	cfg     *config.Config
	session *session.Manager
	client  *api.Client
	prefs   *prefs.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path, err := session.DefaultSessionPath()
	if err != nil {
		return nil, err
	}
	m := session.NewManager(cfg.APIBaseURL, nil, session.NewFileStore(path))
	client := api.New(cfg, m)

	return &app{
		cfg:     cfg,
		session: m,
		client:  client,
		prefs:   prefs.NewStore(client.Profile),
	}, nil
}

// loadPrefs pulls display preferences for an authenticated session. Failures
// are logged and ignored; display falls back to defaults.
func (a *app) loadPrefs(ctx context.Context) {
	if !a.session.Authenticated() {
		return
	}
	if err := a.prefs.Load(ctx); err != nil {
		logger.Get().Debugw("preference load failed", "error", err.Error())
	}
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pennywise",
		Short: "Personal finance from the command line",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newRegisterCommand())
	rootCmd.AddCommand(newLogoutCommand())
	rootCmd.AddCommand(newWhoamiCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newTransactionsCommand())
	rootCmd.AddCommand(newBudgetsCommand())
	rootCmd.AddCommand(newGoalsCommand())
	rootCmd.AddCommand(newRecurringCommand())
	rootCmd.AddCommand(newNotificationsCommand())
	rootCmd.AddCommand(newAnalyticsCommand())
	rootCmd.AddCommand(newPrefsCommand())
	rootCmd.AddCommand(newHealthCommand())

	return rootCmd
}
