// Package config provides configuration structures for the text indexer.
// Settings are read from an optional YAML file, then overridden by
// environment variables, then by command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	internalErrors "github.com/gcbaptista/go-text-indexer/internal/errors"
)

// Settings is the top-level configuration.
type Settings struct {
	Server  ServerSettings  `yaml:"server"`
	Index   IndexSettings   `yaml:"index"`
	Logging LoggingSettings `yaml:"logging"`
	Metrics MetricsSettings `yaml:"metrics"`
}

// ServerSettings holds HTTP server settings.
type ServerSettings struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxRequestBytes int64         `yaml:"maxRequestBytes"`
	RateLimit       float64       `yaml:"rateLimit"` // Requests per second across all clients; 0 disables limiting
	RateBurst       int           `yaml:"rateBurst"`
}

// IndexSettings controls document loading and the indexing structures.
type IndexSettings struct {
	DocumentsDir  string   `yaml:"documentsDir"`  // Directory scanned for documents at startup
	Extensions    []string `yaml:"extensions"`    // File extensions to load (e.g. ".txt"); empty loads every regular file
	Degree        int      `yaml:"degree"`        // B-tree branching parameter t (max 2t-1 keys per node)
	SnippetWindow int      `yaml:"snippetWindow"` // Characters of context on each side of a match; 0 means the default, negative means none
	TopTerms      int      `yaml:"topTerms"`      // Rows in the frequency preview
	CacheSize     int      `yaml:"cacheSize"`     // Query result cache entries; 0 means the default, negative disables the cache
}

// LoggingSettings controls structured logging level and output format.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsSettings controls the Prometheus endpoint.
type MetricsSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns settings with every default applied.
func Default() Settings {
	s := Settings{Metrics: MetricsSettings{Enabled: true}}
	s.ApplyDefaults()
	return s
}

// Load reads settings from path (if non-empty), applies environment
// overrides and defaults, and validates the result.
func Load(path string) (Settings, error) {
	s := Settings{Metrics: MetricsSettings{Enabled: true}}
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
		if err != nil {
			return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}
	s.ApplyDefaults()
	if problems := s.Validate(); len(problems) > 0 {
		return Settings{}, internalErrors.NewSettingsError(problems)
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv("INDEXER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid INDEXER_PORT %q: %w", v, err)
		}
		s.Server.Port = port
	}
	if v := os.Getenv("INDEXER_DOCUMENTS_DIR"); v != "" {
		s.Index.DocumentsDir = v
	}
	if v := os.Getenv("INDEXER_DEGREE"); v != "" {
		degree, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid INDEXER_DEGREE %q: %w", v, err)
		}
		s.Index.Degree = degree
	}
	if v := os.Getenv("INDEXER_SNIPPET_WINDOW"); v != "" {
		window, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid INDEXER_SNIPPET_WINDOW %q: %w", v, err)
		}
		s.Index.SnippetWindow = window
	}
	if v := os.Getenv("INDEXER_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	if v := os.Getenv("INDEXER_LOG_FORMAT"); v != "" {
		s.Logging.Format = v
	}
	return nil
}

// ApplyDefaults applies default values to unset fields
func (s *Settings) ApplyDefaults() {
	if s.Server.Port == 0 {
		s.Server.Port = 5000
	}
	if s.Server.ReadTimeout == 0 {
		s.Server.ReadTimeout = 10 * time.Second
	}
	if s.Server.WriteTimeout == 0 {
		s.Server.WriteTimeout = 10 * time.Second
	}
	if s.Server.ShutdownTimeout == 0 {
		s.Server.ShutdownTimeout = 5 * time.Second
	}
	if s.Server.MaxRequestBytes == 0 {
		s.Server.MaxRequestBytes = 1 << 20
	}
	if s.Server.RateLimit > 0 && s.Server.RateBurst == 0 {
		s.Server.RateBurst = max(1, int(s.Server.RateLimit))
	}

	s.Index.ApplyDefaults()

	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}
	if s.Logging.Format == "" {
		s.Logging.Format = "text"
	}
	if s.Metrics.Path == "" {
		s.Metrics.Path = "/metrics"
	}
}

// ApplyDefaults applies default values to the index settings and lowercases
// the extensions, since file names are matched case-insensitively.
// SnippetWindow and CacheSize keep negative values; use EffectiveSnippetWindow
// and EffectiveCacheSize to read them.
func (settings *IndexSettings) ApplyDefaults() {
	if settings.DocumentsDir == "" {
		settings.DocumentsDir = "documents"
	}
	if settings.Extensions == nil {
		settings.Extensions = []string{".txt"}
	}
	for i, ext := range settings.Extensions {
		settings.Extensions[i] = strings.ToLower(ext)
	}
	if settings.Degree == 0 {
		settings.Degree = 3
	}
	if settings.SnippetWindow == 0 {
		settings.SnippetWindow = 50
	}
	if settings.TopTerms == 0 {
		settings.TopTerms = 10
	}
	if settings.CacheSize == 0 {
		settings.CacheSize = 256
	}
}

// EffectiveSnippetWindow returns the snippet window to use, mapping a
// negative setting to zero context.
func (settings IndexSettings) EffectiveSnippetWindow() int {
	return max(settings.SnippetWindow, 0)
}

// EffectiveCacheSize returns the query cache capacity to use; zero means
// no cache.
func (settings IndexSettings) EffectiveCacheSize() int {
	return max(settings.CacheSize, 0)
}

// Validate returns a description of every problem found; an empty slice
// means the settings are usable.
func (s *Settings) Validate() []string {
	var problems []string

	if s.Server.Port < 1 || s.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range (1-65535)", s.Server.Port))
	}
	if s.Server.RateLimit < 0 {
		problems = append(problems, "server.rateLimit cannot be negative")
	}
	if s.Server.RateBurst < 0 {
		problems = append(problems, "server.rateBurst cannot be negative")
	}
	problems = append(problems, s.Index.Validate()...)

	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "Invalid logging.level '"+s.Logging.Level+"' (must be debug, info, warn or error)")
	}
	switch s.Logging.Format {
	case "text", "json":
	default:
		problems = append(problems, "Invalid logging.format '"+s.Logging.Format+"' (must be text or json)")
	}
	if s.Metrics.Enabled && !strings.HasPrefix(s.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with '/'")
	}
	return problems
}

// Validate checks the index settings.
func (settings *IndexSettings) Validate() []string {
	var problems []string

	if settings.Degree < 2 {
		problems = append(problems, fmt.Sprintf("index.degree must be at least 2, got %d", settings.Degree))
	}
	if strings.TrimSpace(settings.DocumentsDir) == "" {
		problems = append(problems, "index.documentsDir cannot be empty or whitespace-only")
	}
	seen := make(map[string]bool)
	for _, ext := range settings.Extensions {
		if !strings.HasPrefix(ext, ".") {
			problems = append(problems, "Extension '"+ext+"' in index.extensions must start with '.'")
		}
		if seen[ext] {
			problems = append(problems, "Duplicate extension '"+ext+"' found in index.extensions")
		}
		seen[ext] = true
	}
	return problems
}
