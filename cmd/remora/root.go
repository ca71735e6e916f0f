package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/agents"
	"github.com/remora-ai/remora/internal/config"
	"github.com/remora-ai/remora/internal/llm"
	"github.com/remora-ai/remora/internal/persistence"
	"github.com/remora-ai/remora/internal/session"
	"github.com/remora-ai/remora/internal/tools"
	"github.com/remora-ai/remora/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "remora",
	Short: "Remora is a tool-calling agent runtime with persistent sessions",
	Long: `Remora runs LLM agents that remember users across conversations.
Session state lives in a pluggable backend (memory, sqlite or redis),
and agents mutate it through typed tools.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to the .env file with credentials")
	rootCmd.PersistentFlags().String("user", "", "User identity to run as (default: USER_ID env)")
}

// loadConfig resolves configuration from the .env file and the process
// environment. Missing credentials abort startup here, before any
// session or network work begins.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, err
	}

	log.InitLogger(log.ParseLevel(cfg.App.LogLevel))

	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.App.UserID = user
	}
	return cfg, nil
}

// openService builds the configured session backend.
func openService(cfg *config.Config) (session.Service, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return session.NewInMemoryService(), nil
	case "sqlite":
		return persistence.NewSQLiteService(cfg.Storage.SQLitePath)
	case "redis":
		return persistence.NewRedisService(
			cfg.Storage.RedisAddr,
			cfg.Storage.RedisPassword,
			cfg.Storage.RedisDB,
			persistence.WithTTL(cfg.Storage.SessionTTL),
		), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// buildStack wires the model client, agent catalog and runner.
func buildStack(cfg *config.Config, service session.Service) (*agents.Catalog, *agent.Runner, error) {
	client, err := llm.NewClient(&cfg.LLM)
	if err != nil {
		return nil, nil, err
	}

	search := tools.NewWebSearchTool(cfg.Search.APIKey, cfg.Search.APIURL)
	catalog, err := agents.NewCatalog(client, search)
	if err != nil {
		return nil, nil, err
	}

	return catalog, agent.NewRunner(client, service), nil
}
