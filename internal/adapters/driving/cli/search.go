package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

var (
	searchLimit   int
	searchType    string
	searchNoFuzzy bool
	searchJSON    bool
	searchNoColor bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Ranks every indexed document against the query using TF-IDF.

Query terms also match indexed terms that contain them (fuzzy matching),
unless --no-fuzzy is given. Matches in the title and description and
recently published documents rank higher.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "only return documents of this type")
	searchCmd.Flags().BoolVar(&searchNoFuzzy, "no-fuzzy", false, "disable fuzzy term matching")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchNoColor, "no-color", false, "do not colour matches")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search service: %w", errServicesNotConfigured)
	}

	docType, err := domain.ParseDocumentType(searchType)
	if err != nil {
		return fmt.Errorf("invalid --type %q (want one of %s): %w", searchType, typeList(), err)
	}

	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Limit:        searchLimit,
		Type:         docType,
		DisableFuzzy: searchNoFuzzy,
	}

	results, err := searchService.Search(ctx, strings.Join(args, " "), opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		doc := &results[i].Document
		title := doc.Title
		if title == "" {
			title = doc.ID
		}

		// Format: [N] Title (type, score)
		cmd.Printf("  [%d] %s (%s, %.2f)\n", i+1, title, doc.Type, results[i].Score)
		cmd.Printf("      %s\n", doc.URL)
		for _, h := range results[i].Highlights {
			cmd.Printf("      %s\n", h)
		}
		cmd.Println()
	}

	return nil
}

func typeList() string {
	types := domain.DocumentTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
