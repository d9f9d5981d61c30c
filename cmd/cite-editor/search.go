package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-editor/internal/search"
	"github.com/pdiddy/cite-editor/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Look up citation candidates without the server",
	Long: `Search runs one lookup against the configured backend and prints the
candidates the editor would offer for the same query. --save keeps the lookup
as a YAML snapshot; --load prints a saved snapshot instead of searching.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("backend", "", "upstream API: openlibrary, openalex, semantic_scholar")
	searchCmd.Flags().Int("max-results", 0, "maximum candidates (default from config)")
	searchCmd.Flags().String("format", "table", "output format: table, json, yaml")
	searchCmd.Flags().String("save", "", "write a YAML snapshot of the lookup to this path")
	searchCmd.Flags().String("load", "", "print a snapshot written by --save instead of searching")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")

	if path, _ := cmd.Flags().GetString("load"); path != "" {
		if len(args) > 0 {
			return fmt.Errorf("--load takes no query")
		}
		return showQueryFile(out, path, format)
	}
	if len(args) == 0 {
		return fmt.Errorf("provide a query, or --load a saved lookup")
	}

	searchCfg := cfg.Search
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		searchCfg.Backend = types.BackendName(b)
	}
	if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
		searchCfg.MaxResults = n
	}

	backend, err := search.NewBackend(searchCfg, nil)
	if err != nil {
		return err
	}
	svc := search.NewService(backend, searchCfg)

	query := strings.Join(args, " ")
	results, err := svc.Search(cmd.Context(), query)
	if err != nil {
		return err
	}
	if err := writeCandidates(out, format, results); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, svc, query, results); err != nil {
			return err
		}
		logger.Info("saved lookup", "path", path)
	}
	return nil
}

// showQueryFile prints a saved lookup in format.
func showQueryFile(w io.Writer, path, format string) error {
	qf, err := search.ReadQueryFile(path)
	if err != nil {
		return err
	}
	if format == "table" {
		fmt.Fprintf(w, "Query %q via %s (top %d), %s\n\n",
			qf.Query, qf.Backend, qf.MaxResults, qf.SearchedAt.Format(time.RFC3339))
	}
	return writeCandidates(w, format, qf.Results)
}

func writeCandidates(w io.Writer, format string, results []types.Candidate) error {
	switch format {
	case "table":
		search.FormatTable(results, w)
		return nil
	case "json":
		return search.FormatJSON(results, w)
	case "yaml":
		return search.FormatYAML(results, w)
	default:
		return fmt.Errorf("unknown format %q (want table, json, or yaml)", format)
	}
}
