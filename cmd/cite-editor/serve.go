package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-editor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the citation search API",
	Long: `Serve answers GET /api/citation/search?q=<term> with up to max-results
candidates from the configured bibliographic backend. Each request makes one
upstream call; nothing is cached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newSearchService()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting citation API", "backend", svc.Backend(), "max_results", svc.MaxResults())
		return server.Run(ctx, cfg.Server, server.New(svc, logger), logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :5000)")
	serveCmd.Flags().String("backend", "", "upstream API: openlibrary, openalex, semantic_scholar")
	serveCmd.Flags().Int("max-results", 0, "maximum candidates per response (default 10)")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("search.backend", serveCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("search.max_results", serveCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(serveCmd)
}
