// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cite-editor CLI.
// See docs/ARCHITECTURE § Command Line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-editor/internal/logging"
	"github.com/pdiddy/cite-editor/internal/search"
	"github.com/pdiddy/cite-editor/internal/secrets"
	"github.com/pdiddy/cite-editor/internal/server"
	"github.com/pdiddy/cite-editor/internal/store"
	"github.com/pdiddy/cite-editor/internal/suggest"
	"github.com/pdiddy/cite-editor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "cite-editor/0.1"

var (
	// cfg is the merged configuration, filled before any subcommand runs.
	cfg types.Config

	logger *slog.Logger
)

// rootCmd is the base command for the cite-editor CLI.
var rootCmd = &cobra.Command{
	Use:   "cite-editor",
	Short: "Rich-text editing with inline citation autocomplete",
	Long: `cite-editor pairs a document editor with a citation lookup service.
Typing "@" in the editor starts a search; picking a suggestion replaces the
query with "Author (Title)".

serve runs the citation API that proxies Open Library. edit opens the stored
document and talks to that API. search, export and clear work without a
running server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./cite-editor.yaml or ~/.config/cite-editor/cite-editor.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")
	pf.String("store", "", "document database path (default cite-editor.db)")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("store.path", pf.Lookup("store"))
}

func setDefaults() {
	viper.SetDefault("server.addr", ":5000")
	viper.SetDefault("server.shutdown_timeout", server.DefaultShutdownTimeout)
	viper.SetDefault("search.backend", string(types.BackendOpenLibrary))
	viper.SetDefault("search.max_results", search.DefaultMaxResults)
	viper.SetDefault("search.timeout", "10s")
	viper.SetDefault("search.user_agent", defaultUserAgent)
	viper.SetDefault("search.contact_email", "")
	viper.SetDefault("search.semantic_scholar_api_key", "")
	viper.SetDefault("store.path", store.DefaultPath)
	viper.SetDefault("editor.server_url", suggest.DefaultBaseURL)
	viper.SetDefault("editor.max_query_length", 64)
	viper.SetDefault("editor.timeout", "10s")
	viper.SetDefault("editor.user_agent", defaultUserAgent)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", logging.FormatText)
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cite-editor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cite-editor"))
		}
	}

	viper.SetEnvPrefix("CITE_EDITOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals viper into cfg, builds the logger and merges secrets.
func loadConfig() error {
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing configuration: %w", err)
	}

	l, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(logger)

	s, err := secrets.Load(secrets.DefaultDir, logger)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		logger.Debug("loaded secrets", "keys", s.Keys())
	}
	s.ApplySearch(&cfg.Search)
	return nil
}

// openDocuments opens the configured store. The caller closes the KV.
func openDocuments() (*store.SQLiteKV, *store.DocumentStore, error) {
	kv, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	return kv, store.NewDocumentStore(kv), nil
}

// newSearchService builds the suggestion provider from cfg.Search.
func newSearchService() (*search.Service, error) {
	backend, err := search.NewBackend(cfg.Search, nil)
	if err != nil {
		return nil, err
	}
	return search.NewService(backend, cfg.Search), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
