package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	// EnvPrefix scopes the environment variables that override yaml values.
	EnvPrefix = "CHIME_"
)

// Dispatch bounds.
const (
	DefaultPollInterval = 60 * time.Second
	MinPollInterval     = 15 * time.Second
	MaxPollInterval     = 600 * time.Second

	DefaultBatchWindow = 5 * time.Minute
	MinBatchWindow     = 1 * time.Minute
	MaxBatchWindow     = 60 * time.Minute

	// MaxMulticastTokens is the provider ceiling for tokens per multicast call.
	MaxMulticastTokens = 500

	DefaultTimezone = "UTC"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	// Firebase configuration for push notifications
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Notification configuration for the reminder dispatcher
	Notification *NotificationConfig `json:"notification" yaml:"notification"`

	// PubSub configuration for dispatch event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Telemetry configuration for OTLP metrics export
	Telemetry *TelemetryConfig `json:"telemetry" yaml:"telemetry"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// SlowQuery is the duration above which SQL statements are logged as slow; 0 keeps the default
	SlowQuery time.Duration `json:"slowQuery" yaml:"slowQuery"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	// DryRun validates messages with the provider without delivering them
	DryRun bool `json:"dryRun" yaml:"dryRun"`
}

// NotificationConfig defines how reminders are selected and delivered.
type NotificationConfig struct {
	// Provider selects the push gateway: "firebase" or "memory"
	Provider string `json:"provider" yaml:"provider"`

	PollIntervalSeconds int    `json:"pollIntervalSeconds" yaml:"pollIntervalSeconds"`
	BatchWindowMinutes  int    `json:"batchWindowMinutes" yaml:"batchWindowMinutes"`
	DefaultTimezone     string `json:"defaultTimezone" yaml:"defaultTimezone"`

	// ChunkSize caps tokens per multicast call; values above the provider ceiling are lowered
	ChunkSize int `json:"chunkSize" yaml:"chunkSize"`
	// SendConcurrency bounds concurrent chunk sends for a single reminder
	SendConcurrency int `json:"sendConcurrency" yaml:"sendConcurrency"`

	Breaker BreakerConfig `json:"breaker" yaml:"breaker"`
	Retry   RetryConfig   `json:"retry" yaml:"retry"`
}

// BreakerConfig configures the circuit breaker in front of the push provider.
type BreakerConfig struct {
	MaxRequests uint32        `json:"maxRequests" yaml:"maxRequests"`
	Interval    time.Duration `json:"interval" yaml:"interval"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// RetryConfig configures retries of chunk-level transport errors.
type RetryConfig struct {
	MaxRetries      uint64        `json:"maxRetries" yaml:"maxRetries"`
	InitialInterval time.Duration `json:"initialInterval" yaml:"initialInterval"`
	MaxInterval     time.Duration `json:"maxInterval" yaml:"maxInterval"`
}

// PollInterval returns the scheduler interval clamped to [15s, 600s].
func (c *NotificationConfig) PollInterval() time.Duration {
	if c == nil || c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}

	return clampDuration(time.Duration(c.PollIntervalSeconds)*time.Second, MinPollInterval, MaxPollInterval)
}

// BatchWindow returns the half-width of the due window clamped to [1m, 60m].
func (c *NotificationConfig) BatchWindow() time.Duration {
	if c == nil || c.BatchWindowMinutes <= 0 {
		return DefaultBatchWindow
	}

	return clampDuration(time.Duration(c.BatchWindowMinutes)*time.Minute, MinBatchWindow, MaxBatchWindow)
}

// Timezone returns the zone substituted for empty reminder timezones.
func (c *NotificationConfig) Timezone() string {
	if c == nil || strings.TrimSpace(c.DefaultTimezone) == "" {
		return DefaultTimezone
	}

	return strings.TrimSpace(c.DefaultTimezone)
}

// MulticastChunkSize returns the chunk size bounded by the provider ceiling.
func (c *NotificationConfig) MulticastChunkSize() int {
	if c == nil || c.ChunkSize <= 0 || c.ChunkSize > MaxMulticastTokens {
		return MaxMulticastTokens
	}

	return c.ChunkSize
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	return min(max(d, lo), hi)
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// TelemetryConfig defines OTLP metrics export.
type TelemetryConfig struct {
	Enabled        bool          `json:"enabled" yaml:"enabled"`
	Endpoint       string        `json:"endpoint" yaml:"endpoint"`
	Insecure       bool          `json:"insecure" yaml:"insecure"`
	ServiceName    string        `json:"serviceName" yaml:"serviceName"`
	ExportInterval time.Duration `json:"exportInterval" yaml:"exportInterval"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// CHIME_NOTIFICATION_POLLINTERVALSECONDS -> notification.pollIntervalSeconds
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(strings.TrimPrefix(k, EnvPrefix), existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Notification == nil {
		cfg.Notification = &NotificationConfig{}
	}

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds read replicas from CHIME_POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := EnvPrefix + "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
