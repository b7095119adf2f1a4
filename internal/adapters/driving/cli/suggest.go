package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	suggestLimit int
	suggestJSON  bool
	relatedLimit int
	relatedJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Suggest query completions",
	Long: `Lists title words and tags that start with or contain the prefix.
Prefixes shorter than two characters produce no suggestions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

var relatedCmd = &cobra.Command{
	Use:   "related [doc-id]",
	Short: "List documents related to a document",
	Long: `Scores other documents by shared category, type and tags and lists
the best matches. Documents sharing nothing are left out.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 5, "maximum number of suggestions")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	relatedCmd.Flags().IntVarP(&relatedLimit, "limit", "n", 3, "maximum number of related documents")
	relatedCmd.Flags().BoolVar(&relatedJSON, "json", false, "output related documents as JSON")
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(relatedCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search service: %w", errServicesNotConfigured)
	}

	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	suggestions, err := searchService.Suggest(ctx, strings.Join(args, " "), suggestLimit)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if suggestJSON {
		return outputJSON(cmd, suggestions)
	}
	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Println(s)
	}
	return nil
}

func runRelated(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search service: %w", errServicesNotConfigured)
	}

	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	related, err := searchService.Related(ctx, args[0], relatedLimit)
	if err != nil {
		return fmt.Errorf("related failed: %w", err)
	}

	if relatedJSON {
		return outputJSON(cmd, related)
	}
	if len(related) == 0 {
		cmd.Println("No related documents.")
		return nil
	}
	for i := range related {
		doc := &related[i].Document
		cmd.Printf("  [%d] %s (%s, %d)\n", i+1, doc.Title, doc.Type, related[i].Score)
		cmd.Printf("      %s\n", doc.URL)
	}
	return nil
}
