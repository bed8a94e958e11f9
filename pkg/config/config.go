/*
Package config manages TOML config for WordSift.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordsift/internal/utils"
	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/bastiangx/wordsift/pkg/search"
	"github.com/charmbracelet/log"
)

// Grammar filter modes.
const (
	GrammarHeuristic = "heuristic"
	GrammarCommand   = "command"
	GrammarNone      = "none"
)

// Config holds the entire config structure
type Config struct {
	Dict    DictConfig    `toml:"dict"`
	Search  SearchConfig  `toml:"search"`
	Score   ScoreConfig   `toml:"score"`
	Grammar GrammarConfig `toml:"grammar"`
	Log     LogConfig     `toml:"log"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path      string `toml:"path"`
	Cutoff    int    `toml:"cutoff"`
	MinCutoff int    `toml:"min_cutoff"`
	MaxCutoff int    `toml:"max_cutoff"`
}

// SearchConfig holds mask search options.
type SearchConfig struct {
	MaxInputLen    int  `toml:"max_input_len"`
	Workers        int  `toml:"workers"`
	Naive          bool `toml:"naive"`
	Progress       bool `toml:"progress"`
	TimeoutSeconds int  `toml:"timeout_seconds"`
}

// ScoreConfig holds the placeholder ranks of the short exception words.
type ScoreConfig struct {
	OneLetterRank int `toml:"one_letter_rank"`
	TwoLetterRank int `toml:"two_letter_rank"`
}

// GrammarConfig selects and configures the grammar filter.
type GrammarConfig struct {
	Mode    string   `toml:"mode"`
	Lexicon string   `toml:"lexicon"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Path:      "data/words.txt",
			Cutoff:    5000,
			MinCutoff: dictionary.MinCutoff,
			MaxCutoff: dictionary.MaxCutoff,
		},
		Search: SearchConfig{
			MaxInputLen:    40,
			Workers:        1,
			Naive:          false,
			Progress:       true,
			TimeoutSeconds: 0,
		},
		Score: ScoreConfig{
			OneLetterRank: 0,
			TwoLetterRank: 0,
		},
		Grammar: GrammarConfig{
			Mode: GrammarHeuristic,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate reports every setting that cannot work, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if c.Dict.MinCutoff < 1 || c.Dict.MinCutoff > c.Dict.MaxCutoff {
		errs = append(errs, fmt.Errorf("dict: invalid cutoff bounds [%d, %d]", c.Dict.MinCutoff, c.Dict.MaxCutoff))
	} else if err := dictionary.ValidateCutoff(c.Dict.Cutoff, c.Dict.MinCutoff, c.Dict.MaxCutoff); err != nil {
		errs = append(errs, fmt.Errorf("dict: %w", err))
	}
	if c.Search.MaxInputLen < 0 || c.Search.MaxInputLen > search.MaxInputLen {
		errs = append(errs, fmt.Errorf("search: max_input_len %d not in [0, %d]", c.Search.MaxInputLen, search.MaxInputLen))
	}
	if c.Search.Workers < 1 {
		errs = append(errs, fmt.Errorf("search: workers must be at least 1, got %d", c.Search.Workers))
	}
	if c.Search.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("search: negative timeout_seconds %d", c.Search.TimeoutSeconds))
	}
	switch c.Grammar.Mode {
	case GrammarHeuristic, GrammarNone:
	case GrammarCommand:
		if c.Grammar.Command == "" {
			errs = append(errs, errors.New("grammar: mode \"command\" needs a command"))
		}
	default:
		errs = append(errs, fmt.Errorf("grammar: unknown mode %q", c.Grammar.Mode))
	}
	return errors.Join(errs...)
}

// SearchOptions maps the config onto engine options.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		OneLetterRank: c.Score.OneLetterRank,
		TwoLetterRank: c.Score.TwoLetterRank,
		Workers:       c.Search.Workers,
		Naive:         c.Search.Naive,
		MaxInputLen:   c.Search.MaxInputLen,
	}
}

// SearchTimeout returns the per-search time limit, zero when unbounded.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordsift/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath, defaultPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	if defaultPath == "" {
		log.Debug("No default config path, using built-in defaults")
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find and defaults the rest
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "score"); ok {
		extractScoreConfig(section, &config.Score)
	}
	if section, ok := utils.ExtractSection(tempConfig, "grammar"); ok {
		extractGrammarConfig(section, &config.Grammar)
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
	}
	return config, nil
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "cutoff"); ok {
		dict.Cutoff = val
	}
	if val, ok := utils.ExtractInt64(data, "min_cutoff"); ok {
		dict.MinCutoff = val
	}
	if val, ok := utils.ExtractInt64(data, "max_cutoff"); ok {
		dict.MaxCutoff = val
	}
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "max_input_len"); ok {
		s.MaxInputLen = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		s.Workers = val
	}
	if val, ok := utils.ExtractBool(data, "naive"); ok {
		s.Naive = val
	}
	if val, ok := utils.ExtractBool(data, "progress"); ok {
		s.Progress = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_seconds"); ok {
		s.TimeoutSeconds = val
	}
}

func extractScoreConfig(data map[string]any, score *ScoreConfig) {
	if val, ok := utils.ExtractInt64(data, "one_letter_rank"); ok {
		score.OneLetterRank = val
	}
	if val, ok := utils.ExtractInt64(data, "two_letter_rank"); ok {
		score.TwoLetterRank = val
	}
}

func extractGrammarConfig(data map[string]any, g *GrammarConfig) {
	if val, ok := utils.ExtractString(data, "mode"); ok {
		g.Mode = val
	}
	if val, ok := utils.ExtractString(data, "lexicon"); ok {
		g.Lexicon = val
	}
	if val, ok := utils.ExtractString(data, "command"); ok {
		g.Command = val
	}
	if val, ok := utils.ExtractStrings(data, "args"); ok {
		g.Args = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	return utils.GetAbsolutePath(configPath)
}
