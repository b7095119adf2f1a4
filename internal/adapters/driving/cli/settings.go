package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change search, content, storage and server settings.

Settings are stored in config.toml in the configuration directory.
Every key can be overridden by an environment variable, for example
SITESEARCH_SEARCH_LIMIT overrides search.limit.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validate and store a single setting.

List values such as server.cors_origins are comma separated.
Run 'sitesearch settings keys' for the list of keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys and their environment variables",
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Choose the search engine, storage backend and content directory step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service: %w", errServicesNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Engine: %s\n", settings.Search.Engine.Description())
	cmd.Printf("  Limit: %d\n", settings.Search.Limit)
	cmd.Printf("  Fuzzy: %s\n", yesNo(settings.Search.Fuzzy))
	cmd.Println()

	cmd.Println("[Content]")
	cmd.Printf("  Directory: %s\n", orNotSet(settings.Content.Dir))
	cmd.Printf("  Catalog: %s\n", orDefault(settings.Content.Catalog, "built-in"))
	cmd.Printf("  Watch: %s\n", yesNo(settings.Content.Watch))
	cmd.Printf("  Lenient: %s\n", yesNo(settings.Content.Lenient))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	if settings.Storage.Backend == domain.StorageSQLite {
		cmd.Printf("  Directory: %s\n", orDefault(settings.Storage.Dir, "~/.sitesearch/data"))
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.RateLimit > 0 {
		cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Server.RateLimit, settings.Server.Burst)
	} else {
		cmd.Println("  Rate limit: off")
	}
	cmd.Printf("  CORS origins: %s\n", strings.Join(settings.Server.CORSOrigins, ", "))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service: %w", errServicesNotConfigured)
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service: %w", errServicesNotConfigured)
	}

	for _, key := range settingsService.Keys() {
		cmd.Printf("  %-20s %s\n", key, services.EnvKey(key))
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service: %w", errServicesNotConfigured)
	}

	cmd.Println("Site Search Settings Wizard")
	cmd.Println("===========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Search engine
	cmd.Println("Step 1: Select Search Engine")
	cmd.Println("----------------------------")
	engines := []domain.SearchEngineKind{domain.SearchEngineTFIDF, domain.SearchEngineBleve}
	for i, e := range engines {
		cmd.Printf("  %d. %s\n", i+1, e.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	engine := engines[parseChoice(readLine(reader), len(engines), 1)-1]
	if err := settingsService.Set("search.engine", engine.String()); err != nil {
		return fmt.Errorf("failed to set search engine: %w", err)
	}
	cmd.Printf("Set search engine to: %s\n\n", engine.Description())

	// Step 2: Storage backend
	cmd.Println("Step 2: Select Corpus Storage")
	cmd.Println("-----------------------------")
	backends := []domain.StorageBackend{domain.StorageMemory, domain.StorageSQLite}
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b)
	}
	cmd.Print("\nEnter choice [1]: ")
	backend := backends[parseChoice(readLine(reader), len(backends), 1)-1]
	if err := settingsService.Set("storage.backend", backend.String()); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Set storage backend to: %s\n\n", backend)

	// Step 3: Content directory
	cmd.Println("Step 3: Markdown Content Directory")
	cmd.Println("----------------------------------")
	cmd.Print("Path (leave empty to skip): ")
	if dir := readLine(reader); dir != "" {
		if err := settingsService.Set("content.dir", dir); err != nil {
			return fmt.Errorf("failed to set content directory: %w", err)
		}
		cmd.Printf("Set content directory to: %s\n", dir)
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNotSet(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
