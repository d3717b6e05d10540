package agenda

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	units "github.com/docker/go-units"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"

	"github.com/calvinalkan/agenda/internal/store"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DataDir        string `json:"data_dir"                   toml:"data_dir"`
	Storage        string `json:"storage"                    toml:"storage"`
	StorageKey     string `json:"storage_key"                toml:"storage_key"`
	IDStrategy     string `json:"id_strategy"                toml:"id_strategy"`
	LogLevel       string `json:"log_level,omitempty"        toml:"log_level,omitempty"`
	ExportName     string `json:"export_name,omitempty"      toml:"export_name,omitempty"`
	MaxPictureSize string `json:"max_picture_size,omitempty" toml:"max_picture_size,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd    string `json:"-" toml:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DataDirAbs      string `json:"-" toml:"-"` // Absolute path to the data directory
	MaxPictureBytes int64  `json:"-" toml:"-"` // MaxPictureSize in bytes

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-" toml:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:        ".agenda",
		Storage:        store.BackendFile,
		StorageKey:     DefaultStorageKey,
		IDStrategy:     IDStrategyTimestamp,
		LogLevel:       "warn",
		ExportName:     DefaultExportName,
		MaxPictureSize: "2MB",
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".agenda.json"

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "AGENDA_LOG_LEVEL"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/agenda/config.json if set, otherwise ~/.config/agenda/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "agenda", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "agenda", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	DataDirOverride string            // --data-dir flag value; empty means no override
	StorageOverride string            // --storage flag value; empty means no override
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/agenda/config.json or $XDG_CONFIG_HOME/agenda/config.json)
// 3. Project config file at default location (.agenda.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty; .toml files are TOML)
// 5. Environment ($AGENDA_LOG_LEVEL)
// 6. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if level := input.Env[LogLevelEnv]; level != "" {
		cfg.LogLevel = level
	}

	if input.DataDirOverride != "" {
		cfg.DataDir = input.DataDirOverride
	}

	if input.StorageOverride != "" {
		cfg.Storage = input.StorageOverride
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.DataDir) {
		cfg.DataDirAbs = cfg.DataDir
	} else {
		cfg.DataDirAbs = filepath.Join(workDir, cfg.DataDir)
	}

	cfg.MaxPictureBytes, _ = units.FromHumanSize(cfg.MaxPictureSize)

	return cfg, nil
}

// Validate implements [validation.Validatable].
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.Storage, validation.Required, validation.In(anySlice(store.Backends)...)),
		validation.Field(&c.StorageKey, validation.Required, validation.By(validStorageKey)),
		validation.Field(&c.IDStrategy, validation.In(anySlice(IDStrategies)...)),
		validation.Field(&c.LogLevel, validation.By(validLogLevel)),
		validation.Field(&c.MaxPictureSize, validation.By(validHumanSize)),
	)
}

func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

func validStorageKey(value any) error {
	key, _ := value.(string)

	return store.ValidateKey(key)
}

func validLogLevel(value any) error {
	level, _ := value.(string)
	if level == "" {
		return nil
	}

	if hclog.LevelFromString(level) == hclog.NoLevel {
		return errors.New("must be one of trace, debug, info, warn, error, off")
	}

	return nil
}

func validHumanSize(value any) error {
	size, _ := value.(string)
	if size == "" {
		return nil
	}

	n, err := units.FromHumanSize(size)
	if err != nil {
		return errors.New("must be a size like 512KB or 2MB")
	}

	if n <= 0 {
		return errors.New("must be positive")
	}

	return nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.agenda.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(path, data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	for _, field := range []string{"data_dir", "storage", "storage_key"} {
		if explicitEmpty[field] {
			return Config{}, false, fmt.Errorf("%w %s: %s cannot be empty", ErrConfigInvalid, path, field)
		}
	}

	return cfg, true, nil
}

// parseConfig decodes a TOML file when path ends in .toml and JSONC otherwise.
// Also returns which fields were explicitly set to empty strings.
func parseConfig(path string, data []byte) (Config, map[string]bool, error) {
	var cfg Config

	var raw map[string]any

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err := toml.Unmarshal(data, &cfg)
		if err != nil {
			return Config{}, nil, fmt.Errorf("invalid TOML: %w", err)
		}

		_ = toml.Unmarshal(data, &raw)
	} else {
		// Standardize JSONC to JSON
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
		}

		err = json.Unmarshal(standardized, &cfg)
		if err != nil {
			return Config{}, nil, fmt.Errorf("invalid JSON: %w", err)
		}

		_ = json.Unmarshal(standardized, &raw)
	}

	explicitEmpty := make(map[string]bool)

	for key, val := range raw {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty[key] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DataDir != "" {
		base.DataDir = overlay.DataDir
	}

	if overlay.Storage != "" {
		base.Storage = overlay.Storage
	}

	if overlay.StorageKey != "" {
		base.StorageKey = overlay.StorageKey
	}

	if overlay.IDStrategy != "" {
		base.IDStrategy = overlay.IDStrategy
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.ExportName != "" {
		base.ExportName = overlay.ExportName
	}

	if overlay.MaxPictureSize != "" {
		base.MaxPictureSize = overlay.MaxPictureSize
	}

	return base
}
