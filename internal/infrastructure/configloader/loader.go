package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when CONFIG_PATH is not set.
const DefaultPath = "config/config.yml"

// AssistantEnvPrefix prefixes the conversational backend environment variables
// (OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL).
const AssistantEnvPrefix = "OPENAI"

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                  string   `yaml:"port" validate:"required"`
	ReadTimeoutSeconds    int      `yaml:"readTimeoutSeconds" validate:"gte=0"`
	WriteTimeoutSeconds   int      `yaml:"writeTimeoutSeconds" validate:"gte=0"`
	IdleTimeoutSeconds    int      `yaml:"idleTimeoutSeconds" validate:"gte=0"`
	RequestTimeoutSeconds int      `yaml:"requestTimeoutSeconds" validate:"gt=0"`
	CORSAllowedOrigins    []string `yaml:"corsAllowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// NetworkConfig selects one of the compiled-in network definitions.
type NetworkConfig struct {
	Identifier string `yaml:"identifier"`
	RPCURL     string `yaml:"rpcURL" validate:"omitempty,url"` // overrides the definition's endpoint
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	RPCCallTimeoutSeconds    int `yaml:"rpc_call_timeout_seconds" validate:"gt=0"`
	ConnectionTimeoutSeconds int `yaml:"connection_timeout_seconds" validate:"gt=0"`
}

// RPCClientConfig throttles outgoing JSON-RPC calls.
type RPCClientConfig struct {
	RateLimit  float64 `yaml:"rateLimit" validate:"gte=0"` // requests per second, 0 = unlimited
	BurstLimit int     `yaml:"burstLimit" validate:"gte=0"`
}

// MetadataCacheConfig controls caching of successful token metadata reads.
type MetadataCacheConfig struct {
	Enabled                bool `yaml:"enabled"`
	TTLMinutes             int  `yaml:"ttlMinutes" validate:"gte=0"`
	CleanupIntervalMinutes int  `yaml:"cleanupIntervalMinutes" validate:"gte=0"`
}

// AssistantConfig configures the conversational backend. APIKey only ever comes
// from the environment.
type AssistantConfig struct {
	BaseURL             string  `yaml:"baseURL" validate:"omitempty,url"`
	Model               string  `yaml:"model" validate:"required"`
	MaxCompletionTokens int64   `yaml:"maxCompletionTokens" validate:"gte=0"`
	Temperature         float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	TimeoutSeconds      int     `yaml:"timeoutSeconds" validate:"gt=0"`
	APIKey              string  `yaml:"-"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Network       NetworkConfig       `yaml:"network"`
	Performance   PerformanceConfig   `yaml:"performance"`
	RPCClient     RPCClientConfig     `yaml:"rpcClient"`
	MetadataCache MetadataCacheConfig `yaml:"metadataCache"`
	Assistant     AssistantConfig     `yaml:"assistant"`
	Swagger       SwaggerConfig       `yaml:"swagger"`
}

// assistantEnv is read with envconfig on top of the YAML assistant section.
type assistantEnv struct {
	APIKey  string `envconfig:"API_KEY"`
	BaseURL string `envconfig:"BASE_URL"`
	Model   string `envconfig:"MODEL"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse builds a Config from YAML, applies defaults and environment overrides,
// then validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyDefaults(&cfg)

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Server.IdleTimeoutSeconds == 0 {
		cfg.Server.IdleTimeoutSeconds = 120
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 30
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.ConnectionTimeoutSeconds <= 0 {
		cfg.Performance.ConnectionTimeoutSeconds = 10
	}

	if cfg.RPCClient.RateLimit > 0 && cfg.RPCClient.BurstLimit == 0 {
		cfg.RPCClient.BurstLimit = 5
	}

	if cfg.MetadataCache.TTLMinutes == 0 {
		cfg.MetadataCache.TTLMinutes = 60
	}
	if cfg.MetadataCache.CleanupIntervalMinutes == 0 {
		cfg.MetadataCache.CleanupIntervalMinutes = 10
	}

	if cfg.Assistant.BaseURL == "" {
		cfg.Assistant.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "gpt-4o-mini"
	}
	if cfg.Assistant.MaxCompletionTokens == 0 {
		cfg.Assistant.MaxCompletionTokens = 1000
	}
	if cfg.Assistant.Temperature == 0 {
		cfg.Assistant.Temperature = 0.7
	}
	if cfg.Assistant.TimeoutSeconds == 0 {
		cfg.Assistant.TimeoutSeconds = 30
	}

	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "./docs/swagger.yaml"
	}
}

func applyEnv(cfg *Config) error {
	var env assistantEnv
	if err := envconfig.Process(AssistantEnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read %s_* environment: %w", AssistantEnvPrefix, err)
	}
	cfg.Assistant.APIKey = strings.TrimSpace(env.APIKey)
	if v := strings.TrimSpace(env.BaseURL); v != "" {
		cfg.Assistant.BaseURL = v
	}
	if v := strings.TrimSpace(env.Model); v != "" {
		cfg.Assistant.Model = v
	}
	return nil
}

// HasAssistantCredential reports whether the conversational backend can be built.
func (c *Config) HasAssistantCredential() bool {
	return c.Assistant.APIKey != ""
}
