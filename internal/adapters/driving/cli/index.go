package cli

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

var (
	indexJSON    bool
	historyLimit int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the search index",
	Long: `Regenerates the corpus from the product catalog, static pages and
Markdown content, stores it and builds a fresh index.`,
	RunE: runIndexRebuild,
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runIndexStats,
}

var indexHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent index builds",
	RunE:  runIndexHistory,
}

func init() {
	indexCmd.PersistentFlags().BoolVar(&indexJSON, "json", false, "output as JSON")
	indexHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of builds")

	indexCmd.AddCommand(indexStatsCmd)
	indexCmd.AddCommand(indexHistoryCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return fmt.Errorf("index service: %w", errServicesNotConfigured)
	}

	stats, err := indexService.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	if indexJSON {
		return outputJSON(cmd, stats)
	}
	cmd.Println("Index rebuilt.")
	cmd.Println()
	printStats(cmd, stats)
	return nil
}

func runIndexStats(cmd *cobra.Command, _ []string) error {
	if err := ensureIndex(cmd.Context()); err != nil {
		return err
	}

	stats := indexService.Stats()
	if indexJSON {
		return outputJSON(cmd, stats)
	}
	printStats(cmd, stats)
	return nil
}

func runIndexHistory(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return fmt.Errorf("index service: %w", errServicesNotConfigured)
	}

	records, err := indexService.History(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if indexJSON {
		return outputJSON(cmd, records)
	}
	if len(records) == 0 {
		cmd.Println("No builds recorded.")
		return nil
	}
	for i := range records {
		r := &records[i]
		status := "ok"
		if !r.Succeeded() {
			status = "failed: " + r.Error
		}
		cmd.Printf("  %s  %-6s %5d docs  %8s  %s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Engine, r.Documents,
			r.Duration.Round(time.Millisecond), status)
	}
	return nil
}

func printStats(cmd *cobra.Command, stats domain.IndexStats) {
	cmd.Printf("Generation: %s\n", stats.Generation)
	cmd.Printf("Engine:     %s\n", stats.Engine)
	cmd.Printf("Documents:  %d\n", stats.Documents)
	if stats.Terms > 0 {
		cmd.Printf("Terms:      %d\n", stats.Terms)
	}
	cmd.Printf("Built:      %s (%s)\n",
		stats.BuiltAt.Local().Format(time.DateTime), stats.Duration.Round(time.Millisecond))

	if len(stats.ByType) > 0 {
		cmd.Println()
		cmd.Println("By type:")
		for _, t := range domain.DocumentTypes() {
			if n := stats.ByType[t]; n > 0 {
				cmd.Printf("  %-12s %d\n", t, n)
			}
		}
	}
	if len(stats.ByCategory) > 0 {
		cmd.Println()
		cmd.Println("By category:")
		for _, c := range slices.Sorted(maps.Keys(stats.ByCategory)) {
			cmd.Printf("  %-24s %d\n", c, stats.ByCategory[c])
		}
	}
}
