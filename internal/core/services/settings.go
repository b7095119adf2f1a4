package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchLimit     = "search.limit"
	keySearchFuzzy     = "search.fuzzy"
	keySearchEngine    = "search.engine"
	keyContentDir      = "content.dir"
	keyContentCatalog  = "content.catalog"
	keyContentWatch    = "content.watch"
	keyContentLenient  = "content.lenient"
	keyStorageBackend  = "storage.backend"
	keyStorageDir      = "storage.dir"
	keyServerAddr      = "server.addr"
	keyServerRateLimit = "server.rate_limit"
	keyServerBurst     = "server.burst"
	keyServerCORS      = "server.cors_origins"
)

// EnvPrefix prefixes environment variable overrides.
// search.limit is overridden by SITESEARCH_SEARCH_LIMIT.
const EnvPrefix = "SITESEARCH_"

var settingKeys = []string{
	keySearchLimit, keySearchFuzzy, keySearchEngine,
	keyContentDir, keyContentCatalog, keyContentWatch, keyContentLenient,
	keyStorageBackend, keyStorageDir,
	keyServerAddr, keyServerRateLimit, keyServerBurst, keyServerCORS,
}

// SettingsService manages application settings.
// Values resolve in order: environment override, config store, default.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// EnvKey returns the environment variable that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Search: domain.SearchSettings{
			Limit:  s.getInt(keySearchLimit, defaults.Search.Limit),
			Fuzzy:  s.getBool(keySearchFuzzy, defaults.Search.Fuzzy),
			Engine: s.getEngine(defaults.Search.Engine),
		},
		Content: domain.ContentSettings{
			Dir:     s.getString(keyContentDir, defaults.Content.Dir),
			Catalog: s.getString(keyContentCatalog, defaults.Content.Catalog),
			Watch:   s.getBool(keyContentWatch, defaults.Content.Watch),
			Lenient: s.getBool(keyContentLenient, defaults.Content.Lenient),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			Dir:     s.getString(keyStorageDir, defaults.Storage.Dir),
		},
		Server: domain.ServerSettings{
			Addr:        s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit:   s.getFloat(keyServerRateLimit, defaults.Server.RateLimit),
			Burst:       s.getInt(keyServerBurst, defaults.Server.Burst),
			CORSOrigins: s.getStringSlice(keyServerCORS, defaults.Server.CORSOrigins),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Set validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		settings = domain.DefaultSettings()
	}

	typed, err := applySetting(settings, key, value)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	logger.Debug("Setting %s = %v", key, typed)
	return nil
}

// Keys lists every known setting key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return *domain.DefaultSettings()
}

// applySetting parses value for key, stores it on settings and returns the
// typed value to persist.
func applySetting(settings *domain.Settings, key, value string) (any, error) {
	value = strings.TrimSpace(value)
	invalid := func(err error) error {
		return fmt.Errorf("invalid value %q for %s: %w: %w", value, key, domain.ErrInvalidInput, err)
	}

	switch key {
	case keySearchLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, invalid(err)
		}
		settings.Search.Limit = n
		return n, nil
	case keySearchFuzzy:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalid(err)
		}
		settings.Search.Fuzzy = b
		return b, nil
	case keySearchEngine:
		settings.Search.Engine = domain.SearchEngineKind(value)
		return value, nil
	case keyContentDir:
		settings.Content.Dir = value
		return value, nil
	case keyContentCatalog:
		settings.Content.Catalog = value
		return value, nil
	case keyContentWatch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalid(err)
		}
		settings.Content.Watch = b
		return b, nil
	case keyContentLenient:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalid(err)
		}
		settings.Content.Lenient = b
		return b, nil
	case keyStorageBackend:
		settings.Storage.Backend = domain.StorageBackend(value)
		return value, nil
	case keyStorageDir:
		settings.Storage.Dir = value
		return value, nil
	case keyServerAddr:
		settings.Server.Addr = value
		return value, nil
	case keyServerRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, invalid(err)
		}
		settings.Server.RateLimit = f
		return f, nil
	case keyServerBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, invalid(err)
		}
		settings.Server.Burst = n
		return n, nil
	case keyServerCORS:
		origins := splitList(value)
		settings.Server.CORSOrigins = origins
		return origins, nil
	default:
		return nil, fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Helper methods for reading config with environment overrides and defaults.

func (s *SettingsService) env(key string) (string, bool) {
	if s.lookupEnv == nil {
		return "", false
	}
	v, ok := s.lookupEnv(EnvKey(key))
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v, ok := s.env(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logger.Warn("Ignoring %s: not an integer", EnvKey(key))
	}
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if v, ok := s.env(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		logger.Warn("Ignoring %s: not a number", EnvKey(key))
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if v, ok := s.env(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		logger.Warn("Ignoring %s: not a boolean", EnvKey(key))
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if v, ok := s.env(key); ok {
		return splitList(v)
	}
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getEngine(defaultVal domain.SearchEngineKind) domain.SearchEngineKind {
	val := s.getString(keySearchEngine, "")
	if val == "" {
		return defaultVal
	}
	kind := domain.SearchEngineKind(val)
	if !kind.IsValid() {
		logger.Warn("Unknown search engine %q, using %s", val, defaultVal)
		return defaultVal
	}
	return kind
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.getString(keyStorageBackend, "")
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		logger.Warn("Unknown storage backend %q, using %s", val, defaultVal)
		return defaultVal
	}
	return backend
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
