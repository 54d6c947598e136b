package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	addrEnv          = "WRITER_ADDR"
	storageDriverEnv = "WRITER_STORAGE_DRIVER"
	storagePathEnv   = "WRITER_STORAGE_PATH"
	providerEnv      = "WRITER_LLM_PROVIDER"
	modelEnv         = "WRITER_LLM_MODEL"
	apiKeyEnv        = "GEMINI_API_KEY"
	logLevelEnv      = "WRITER_LOG_LEVEL"
)

// Config holds every setting of the writer.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	LLM     LLMConfig     `yaml:"llm"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // debug, release, test
}

// StorageConfig selects where the credential and recent articles live.
type StorageConfig struct {
	Driver string `yaml:"driver"` // file, sqlite, memory
	Path   string `yaml:"path"`
}

// LLMConfig describes the generation endpoint and its sampling settings.
type LLMConfig struct {
	Provider        string        `yaml:"provider"` // gemini, openai, deepseek, mock
	Model           string        `yaml:"model"` // empty picks the provider default
	APIKey          string        `yaml:"api_key"`
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"` // zero leaves network defaults in place
	Temperature     float64       `yaml:"temperature"`
	TopK            int           `yaml:"top_k"`
	TopP            float64       `yaml:"top_p"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080", Mode: "release"},
		Storage: StorageConfig{Driver: "file", Path: "data/writer.json"},
		LLM: LLMConfig{
			Provider:        "gemini",
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads YAML from path on top of the defaults. A missing file is not an
// error; environment variables override both.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			slog.Debug("config file not found, using defaults", "path", path)
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.validate()
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(addrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(storageDriverEnv); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(storagePathEnv); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(providerEnv); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv(modelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Log.Level = v
	}
}

func (c Config) validate() error {
	if c.LLM.Temperature < 0 || c.LLM.TopP < 0 || c.LLM.TopP > 1 {
		return fmt.Errorf("llm sampling settings out of range: temperature=%v top_p=%v", c.LLM.Temperature, c.LLM.TopP)
	}
	if c.LLM.MaxOutputTokens < 0 || c.LLM.TopK < 0 {
		return fmt.Errorf("llm top_k and max_output_tokens must not be negative")
	}
	return nil
}

// ListenAddress turns a bare port into ":port".
func (c Config) ListenAddress() string {
	addr := strings.TrimSpace(c.Server.Addr)
	if _, err := strconv.Atoi(addr); err == nil {
		return ":" + addr
	}
	if addr == "" {
		return ":8080"
	}
	return addr
}
