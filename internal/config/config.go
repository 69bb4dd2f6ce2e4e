// Package config resolves bigo settings from flags, environment, an optional
// YAML config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/mouse-blink/bigo/internal/logging"
)

// Configuration keys. Flags are bound to the same names.
const (
	KeyOutput    = "output"
	KeyParallel  = "parallel"
	KeyReports   = "reports"
	KeyLogLevel  = "loglevel"
	KeyEngine    = "engine"
	KeyInclude   = "include"
	KeyExclude   = "exclude"
	KeyLLMModel  = "llm.model"
	KeyLLMAPIKey = "llm.api_key"
	KeyCacheSize = "cache.size"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Engines.
const (
	EngineHeuristic = "heuristic"
	EngineLLM       = "llm"
)

// DefaultInclude lists the source extensions picked up when walking directories.
var DefaultInclude = []string{
	"**/*.{go,py,js,jsx,ts,tsx,java,c,h,cc,cpp,hpp,cs,rb,rs,kt,swift,php,scala}",
}

// DefaultLLMModel is the Gemini model used by the llm engine.
const DefaultLLMModel = "gemini-2.5-flash"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration for one run.
type Config struct {
	Output    string
	Parallel  int
	Reports   string
	LogLevel  string
	Engine    string
	Include   []string
	Exclude   []string
	CacheSize int
	LLM       LLMConfig
}

// LLMConfig configures the language-model engine.
type LLMConfig struct {
	Model  string
	APIKey string
}

// New returns a viper instance carrying bigo's defaults.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyOutput, OutputText)
	v.SetDefault(KeyParallel, 1)
	v.SetDefault(KeyReports, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyEngine, EngineHeuristic)
	v.SetDefault(KeyInclude, DefaultInclude)
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyLLMModel, DefaultLLMModel)
	v.SetDefault(KeyLLMAPIKey, "")
	v.SetDefault(KeyCacheSize, 256)

	return v
}

// Load reads .env, the environment (BIGO_ prefix) and the config file into v.
// With cfgFile empty, $HOME/.bigo.yaml is used when it exists.
func Load(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err == nil {
		logging.Log.Debug("loaded .env")
	}

	v.SetEnvPrefix("BIGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.SetConfigName(".bigo")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("failed to read config: %w", err)
	}

	logging.Log.WithField("file", filepath.Clean(v.ConfigFileUsed())).Debug("loaded config file")

	return nil
}

// FromViper resolves and validates a Config. The API key falls back to the
// GEMINI_API_KEY and GOOGLE_API_KEY environment variables.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Output:    strings.ToLower(v.GetString(KeyOutput)),
		Parallel:  v.GetInt(KeyParallel),
		Reports:   v.GetString(KeyReports),
		LogLevel:  v.GetString(KeyLogLevel),
		Engine:    strings.ToLower(v.GetString(KeyEngine)),
		Include:   v.GetStringSlice(KeyInclude),
		Exclude:   v.GetStringSlice(KeyExclude),
		CacheSize: v.GetInt(KeyCacheSize),
		LLM: LLMConfig{
			Model:  v.GetString(KeyLLMModel),
			APIKey: v.GetString(KeyLLMAPIKey),
		},
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every setting that has a closed set of values.
func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output %q (use text, json or yaml)", ErrInvalidConfig, c.Output)
	}

	switch c.Engine {
	case EngineHeuristic, EngineLLM:
	default:
		return fmt.Errorf("%w: engine %q (use heuristic or llm)", ErrInvalidConfig, c.Engine)
	}

	if c.Parallel < 1 {
		return fmt.Errorf("%w: parallel must be at least 1, got %d", ErrInvalidConfig, c.Parallel)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache.size must not be negative, got %d", ErrInvalidConfig, c.CacheSize)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}

	return ""
}
