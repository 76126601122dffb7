// Package config provides git-smart-commit configuration with a defined load order:
// CLI flags > environment variables > repo config > global config > defaults.
//
// Paths:
//   - Repo: .git-smart-commit.toml (relative to repo root)
//   - Global: XDG config dir, e.g. ~/.config/git-smart-commit/config.toml (see os.UserConfigDir)
//
// Environment variables (override config files when set):
//   - SMART_COMMIT_MODEL, SMART_COMMIT_BACKEND (cli or http), SMART_COMMIT_OLLAMA_BIN,
//   - SMART_COMMIT_OLLAMA_BASE_URL, SMART_COMMIT_TIMEOUT (Go duration or integer seconds; http backend only),
//   - SMART_COMMIT_TEMPERATURE (http backend only),
//   - SMART_COMMIT_LANGUAGE (en, zh, english, chinese, auto), SMART_COMMIT_OPTIONS (1..5, clamped),
//   - SMART_COMMIT_RECENT_COMMITS, SMART_COMMIT_HISTORY_TURNS,
//   - SMART_COMMIT_CONTEXT_LIMIT, SMART_COMMIT_WARN_THRESHOLD (prompt-size warning only),
//   - SMART_COMMIT_LOG_FILE, SMART_COMMIT_DEBUG, SMART_COMMIT_NON_INTERACTIVE (1/true/yes/on or 0/false/no/off).
package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"smartcommit/cli/internal/erruser"
	"smartcommit/cli/internal/lang"
)

// Backend names.
const (
	BackendCLI  = "cli"
	BackendHTTP = "http"
)

// MinOptions and MaxOptions bound the number of candidates asked of the model.
const (
	MinOptions = 1
	MaxOptions = 5
)

// Config holds all git-smart-commit configuration. Debug and LogFile are passed
// explicitly to every component that logs; nothing reads them from globals.
type Config struct {
	Model         string        `toml:"model"`
	Backend       string        `toml:"backend"`
	OllamaBin     string        `toml:"ollama_bin"`
	OllamaBaseURL string        `toml:"ollama_base_url"`
	Timeout       time.Duration `toml:"timeout"`
	Temperature   float64       `toml:"temperature"`
	// Language is en, zh, or auto (auto resolves from LC_ALL/LANG).
	Language string `toml:"language"`
	// Options is the number of candidate messages requested (1..5).
	Options       int `toml:"options"`
	RecentCommits int `toml:"recent_commits"`
	// HistoryTurns caps the conversation turns embedded in revision prompts.
	HistoryTurns   int     `toml:"history_turns"`
	ContextLimit   int     `toml:"context_limit"`
	WarnThreshold  float64 `toml:"warn_threshold"`
	LogFile        string  `toml:"log_file"`
	Debug          bool    `toml:"debug"`
	NonInteractive bool    `toml:"non_interactive"`
}

// Overrides represents optional CLI flag overrides. Non-nil pointer means
// "override with this value".
type Overrides struct {
	Model          *string
	Backend        *string
	Language       *string
	Options        *int
	LogFile        *string
	Debug          *bool
	NonInteractive *bool
}

// LoadOptions configures Load. All fields are optional.
type LoadOptions struct {
	// RepoRoot is the repository root; if set, repo config is RepoRoot/.git-smart-commit.toml.
	RepoRoot string
	// GlobalConfigPath is the global config file path; if empty, XDG path is used.
	GlobalConfigPath string
	// Env is the environment key=value slice; if nil, os.Environ() is used.
	Env []string
	// Overrides are applied last (highest precedence).
	Overrides *Overrides
}

const (
	_appDir               = "git-smart-commit"
	_repoConfigName       = ".git-smart-commit.toml"
	_defaultModel         = "mistral-nemo"
	_defaultBackend       = BackendCLI
	_defaultOllamaBin     = "ollama"
	_defaultOllamaBaseURL = "http://localhost:11434"
	_defaultTimeout       = 5 * time.Minute
	_defaultTemperature   = 0.2
	_defaultLanguage      = "en"
	_defaultOptions       = 1
	_defaultRecentCommits = 3
	_defaultHistoryTurns  = 10
	_defaultContextLimit  = 32768
	_defaultWarnThreshold = 0.9
)

// errIntOverflow is returned when an int64 value does not fit in int (e.g. on 32-bit or huge TOML/env values).
var errIntOverflow = errors.New("value out of range for int")

func int64ToInt(n int64) (int, error) {
	if n < int64(math.MinInt) || n > int64(math.MaxInt) {
		return 0, errIntOverflow
	}
	return int(n), nil
}

// ClampOptions bounds n to [MinOptions, MaxOptions].
func ClampOptions(n int) int {
	if n < MinOptions {
		return MinOptions
	}
	if n > MaxOptions {
		return MaxOptions
	}
	return n
}

// DefaultConfig returns the default configuration (no I/O). LogFile is empty;
// use EffectiveLogFile to resolve it.
func DefaultConfig() Config {
	return Config{
		Model:         _defaultModel,
		Backend:       _defaultBackend,
		OllamaBin:     _defaultOllamaBin,
		OllamaBaseURL: _defaultOllamaBaseURL,
		Timeout:       _defaultTimeout,
		Temperature:   _defaultTemperature,
		Language:      _defaultLanguage,
		Options:       _defaultOptions,
		RecentCommits: _defaultRecentCommits,
		HistoryTurns:  _defaultHistoryTurns,
		ContextLimit:  _defaultContextLimit,
		WarnThreshold: _defaultWarnThreshold,
	}
}

// EffectiveLogFile returns the debug log path. If LogFile is set, it is returned
// as-is; otherwise <UserCacheDir>/git-smart-commit/debug.log.
func (c Config) EffectiveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", erruser.New("Could not determine cache directory for the debug log.", err)
	}
	return filepath.Join(dir, _appDir, "debug.log"), nil
}

// EffectiveLanguage resolves Language ("auto" consults env) to a lang.Language.
func (c Config) EffectiveLanguage(env []string) lang.Language {
	if strings.EqualFold(strings.TrimSpace(c.Language), "auto") {
		return lang.FromEnv(env)
	}
	l, err := lang.Parse(c.Language)
	if err != nil {
		return lang.English
	}
	return l
}

// Load loads configuration with precedence: defaults < global file < repo file < env < overrides.
// Missing config files are ignored. Invalid TOML or invalid env values return an error.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	cfg := DefaultConfig()

	globalPath := opts.GlobalConfigPath
	if globalPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, erruser.New("Could not determine config directory.", err)
		}
		globalPath = filepath.Join(dir, _appDir, "config.toml")
	}
	if err := mergeFile(&cfg, globalPath); err != nil {
		return nil, err
	}

	if opts.RepoRoot != "" {
		if err := mergeFile(&cfg, filepath.Join(opts.RepoRoot, _repoConfigName)); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg, opts.Env); err != nil {
		return nil, err
	}

	if err := applyOverrides(&cfg, opts.Overrides); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile reads path and merges into cfg. Only overwrites fields that are
// present and non-zero in the file. Missing file is skipped (no error).
func mergeFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return erruser.New("Invalid configuration file.", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return erruser.New("Could not read configuration file.", err)
	}
	var file struct {
		Model          *string  `toml:"model"`
		Backend        *string  `toml:"backend"`
		OllamaBin      *string  `toml:"ollama_bin"`
		OllamaBaseURL  *string  `toml:"ollama_base_url"`
		Timeout        *string  `toml:"timeout"`
		Temperature    *float64 `toml:"temperature"`
		Language       *string  `toml:"language"`
		Options        *int64   `toml:"options"`
		RecentCommits  *int64   `toml:"recent_commits"`
		HistoryTurns   *int64   `toml:"history_turns"`
		ContextLimit   *int64   `toml:"context_limit"`
		WarnThreshold  *float64 `toml:"warn_threshold"`
		LogFile        *string  `toml:"log_file"`
		Debug          *bool    `toml:"debug"`
		NonInteractive *bool    `toml:"non_interactive"`
	}
	if _, err := toml.Decode(string(data), &file); err != nil {
		return erruser.New(fmt.Sprintf("Invalid configuration in %s.", filepath.Base(path)), err)
	}
	if file.Model != nil && *file.Model != "" {
		cfg.Model = *file.Model
	}
	if file.Backend != nil && *file.Backend != "" {
		b, err := validateBackend(*file.Backend)
		if err != nil {
			return err
		}
		cfg.Backend = b
	}
	if file.OllamaBin != nil && *file.OllamaBin != "" {
		cfg.OllamaBin = *file.OllamaBin
	}
	if file.OllamaBaseURL != nil && *file.OllamaBaseURL != "" {
		cfg.OllamaBaseURL = *file.OllamaBaseURL
	}
	if file.Timeout != nil && *file.Timeout != "" {
		d, err := parseDuration(*file.Timeout)
		if err != nil {
			return erruser.New("Configuration timeout is invalid.", err)
		}
		cfg.Timeout = d
	}
	if file.Temperature != nil && *file.Temperature >= 0 && *file.Temperature <= 2 {
		cfg.Temperature = *file.Temperature
	}
	if file.Language != nil && *file.Language != "" {
		norm, err := validateLanguage(*file.Language)
		if err != nil {
			return err
		}
		cfg.Language = norm
	}
	if file.Options != nil {
		v, err := int64ToInt(*file.Options)
		if err != nil {
			return erruser.New("Configuration options value out of range.", err)
		}
		cfg.Options = ClampOptions(v)
	}
	if file.RecentCommits != nil && *file.RecentCommits >= 0 {
		v, err := int64ToInt(*file.RecentCommits)
		if err != nil {
			return erruser.New("Configuration recent_commits value out of range.", err)
		}
		cfg.RecentCommits = v
	}
	if file.HistoryTurns != nil && *file.HistoryTurns > 0 {
		v, err := int64ToInt(*file.HistoryTurns)
		if err != nil {
			return erruser.New("Configuration history_turns value out of range.", err)
		}
		cfg.HistoryTurns = v
	}
	if file.ContextLimit != nil && *file.ContextLimit >= 0 {
		v, err := int64ToInt(*file.ContextLimit)
		if err != nil {
			return erruser.New("Configuration context_limit value out of range.", err)
		}
		cfg.ContextLimit = v
	}
	if file.WarnThreshold != nil && *file.WarnThreshold >= 0 {
		cfg.WarnThreshold = *file.WarnThreshold
	}
	if file.LogFile != nil {
		cfg.LogFile = *file.LogFile
	}
	if file.Debug != nil {
		cfg.Debug = *file.Debug
	}
	if file.NonInteractive != nil {
		cfg.NonInteractive = *file.NonInteractive
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return time.Duration(n) * time.Second, nil
}

func validateBackend(s string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm != BackendCLI && norm != BackendHTTP {
		return "", erruser.New("Invalid backend; use cli or http.", nil)
	}
	return norm, nil
}

// validateLanguage normalizes s to "en", "zh", or "auto".
func validateLanguage(s string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return "auto", nil
	}
	l, err := lang.Parse(s)
	if err != nil {
		return "", erruser.New("Invalid language; use en, zh, english, chinese, or auto.", err)
	}
	return string(l), nil
}

// env key names for config
const (
	envModel          = "SMART_COMMIT_MODEL"
	envBackend        = "SMART_COMMIT_BACKEND"
	envOllamaBin      = "SMART_COMMIT_OLLAMA_BIN"
	envOllamaBaseURL  = "SMART_COMMIT_OLLAMA_BASE_URL"
	envTimeout        = "SMART_COMMIT_TIMEOUT"
	envTemperature    = "SMART_COMMIT_TEMPERATURE"
	envLanguage       = "SMART_COMMIT_LANGUAGE"
	envOptions        = "SMART_COMMIT_OPTIONS"
	envRecentCommits  = "SMART_COMMIT_RECENT_COMMITS"
	envHistoryTurns   = "SMART_COMMIT_HISTORY_TURNS"
	envContextLimit   = "SMART_COMMIT_CONTEXT_LIMIT"
	envWarnThreshold  = "SMART_COMMIT_WARN_THRESHOLD"
	envLogFile        = "SMART_COMMIT_LOG_FILE"
	envDebug          = "SMART_COMMIT_DEBUG"
	envNonInteractive = "SMART_COMMIT_NON_INTERACTIVE"
)

func applyEnv(cfg *Config, env []string) error {
	vals := make(map[string]string)
	for _, e := range env {
		idx := strings.Index(e, "=")
		if idx <= 0 {
			continue
		}
		vals[strings.TrimSpace(e[:idx])] = strings.TrimSpace(e[idx+1:])
	}
	if v, ok := vals[envModel]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := vals[envBackend]; ok && v != "" {
		b, err := validateBackend(v)
		if err != nil {
			return err
		}
		cfg.Backend = b
	}
	if v, ok := vals[envOllamaBin]; ok && v != "" {
		cfg.OllamaBin = v
	}
	if v, ok := vals[envOllamaBaseURL]; ok && v != "" {
		cfg.OllamaBaseURL = v
	}
	if v, ok := vals[envTimeout]; ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return erruser.New("SMART_COMMIT_TIMEOUT must be a valid duration.", err)
		}
		cfg.Timeout = d
	}
	if v, ok := vals[envTemperature]; ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return erruser.New("SMART_COMMIT_TEMPERATURE must be a valid number.", err)
		}
		if f < 0 || f > 2 {
			return erruser.New("SMART_COMMIT_TEMPERATURE must be between 0 and 2.", nil)
		}
		cfg.Temperature = f
	}
	if v, ok := vals[envLanguage]; ok && v != "" {
		norm, err := validateLanguage(v)
		if err != nil {
			return err
		}
		cfg.Language = norm
	}
	if v, ok := vals[envOptions]; ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return erruser.New("SMART_COMMIT_OPTIONS must be a valid number.", err)
		}
		i, err := int64ToInt(n)
		if err != nil {
			return erruser.New("SMART_COMMIT_OPTIONS value out of range.", err)
		}
		cfg.Options = ClampOptions(i)
	}
	if v, ok := vals[envRecentCommits]; ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return erruser.New("SMART_COMMIT_RECENT_COMMITS must be a valid number.", err)
		}
		if n < 0 {
			return erruser.New("SMART_COMMIT_RECENT_COMMITS must be non-negative.", nil)
		}
		cfg.RecentCommits, err = int64ToInt(n)
		if err != nil {
			return erruser.New("SMART_COMMIT_RECENT_COMMITS value out of range.", err)
		}
	}
	if v, ok := vals[envHistoryTurns]; ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return erruser.New("SMART_COMMIT_HISTORY_TURNS must be a valid number.", err)
		}
		if n <= 0 {
			return erruser.New("SMART_COMMIT_HISTORY_TURNS must be positive.", nil)
		}
		cfg.HistoryTurns, err = int64ToInt(n)
		if err != nil {
			return erruser.New("SMART_COMMIT_HISTORY_TURNS value out of range.", err)
		}
	}
	if v, ok := vals[envContextLimit]; ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return erruser.New("SMART_COMMIT_CONTEXT_LIMIT must be a valid number.", err)
		}
		cfg.ContextLimit, err = int64ToInt(n)
		if err != nil {
			return erruser.New("SMART_COMMIT_CONTEXT_LIMIT value out of range.", err)
		}
	}
	if v, ok := vals[envWarnThreshold]; ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return erruser.New("SMART_COMMIT_WARN_THRESHOLD must be a valid number.", err)
		}
		cfg.WarnThreshold = f
	}
	if v, ok := vals[envLogFile]; ok {
		cfg.LogFile = v
	}
	if v, ok := vals[envDebug]; ok && v != "" {
		b, err := parseBool(v)
		if err != nil {
			return erruser.New("SMART_COMMIT_DEBUG must be 1/true/yes/on or 0/false/no/off.", err)
		}
		cfg.Debug = b
	}
	if v, ok := vals[envNonInteractive]; ok && v != "" {
		b, err := parseBool(v)
		if err != nil {
			return erruser.New("SMART_COMMIT_NON_INTERACTIVE must be 1/true/yes/on or 0/false/no/off.", err)
		}
		cfg.NonInteractive = b
	}
	return nil
}

// parseBool parses common boolean env values: 1/true/yes/on = true, 0/false/no/off = false (case-insensitive).
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

func applyOverrides(cfg *Config, o *Overrides) error {
	if o == nil {
		return nil
	}
	if o.Model != nil && *o.Model != "" {
		cfg.Model = *o.Model
	}
	if o.Backend != nil && *o.Backend != "" {
		b, err := validateBackend(*o.Backend)
		if err != nil {
			return err
		}
		cfg.Backend = b
	}
	if o.Language != nil && *o.Language != "" {
		norm, err := validateLanguage(*o.Language)
		if err != nil {
			return err
		}
		cfg.Language = norm
	}
	if o.Options != nil {
		cfg.Options = ClampOptions(*o.Options)
	}
	if o.LogFile != nil {
		cfg.LogFile = *o.LogFile
	}
	if o.Debug != nil {
		cfg.Debug = *o.Debug
	}
	if o.NonInteractive != nil {
		cfg.NonInteractive = *o.NonInteractive
	}
	return nil
}
