package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP       HTTPConfig
	Graph      GraphConfig
	Logging    LoggingConfig
	Session    SessionConfig
	Redis      RedisConfig
	Recorder   RecorderConfig
	Simulation SimulationConfig
	Fixtures   FixturesConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	AllowedOriginsCSV string        `mapstructure:"allowed_origins"`
}

// GraphConfig describes connectivity to the optional Neo4j project catalog.
// An empty URI keeps the catalog on the embedded fixtures.
type GraphConfig struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"` // text|json
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// SessionConfig controls session token signing and storage keys.
type SessionConfig struct {
	Secret    string        `mapstructure:"secret"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// RedisConfig selects the Redis session store when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RecorderConfig enables the SQLite submission log when SQLitePath is set.
type RecorderConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

// SimulationConfig holds the artificial latency applied to mocked calls.
type SimulationConfig struct {
	Latency time.Duration `mapstructure:"latency"`
}

// FixturesConfig points at an optional YAML file replacing the embedded fixtures.
type FixturesConfig struct {
	Path string `mapstructure:"path"`
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultSessionTTL       = 24 * time.Hour
	defaultSessionPrefix    = "aquafund:"
	defaultSessionSecret    = "aquafund-dev-secret"
	defaultLatency          = time.Second
)

// envBindings maps configuration keys onto their environment variable names.
var envBindings = map[string]string{
	"http.host":              "SERVER_HOST",
	"http.port":              "SERVER_PORT",
	"http.read_timeout":      "SERVER_READ_TIMEOUT",
	"http.write_timeout":     "SERVER_WRITE_TIMEOUT",
	"http.idle_timeout":      "SERVER_IDLE_TIMEOUT",
	"http.shutdown_timeout":  "SERVER_SHUTDOWN_TIMEOUT",
	"http.metrics_enabled":   "SERVER_METRICS_ENABLED",
	"http.allowed_origins":   "SERVER_ALLOWED_ORIGINS",
	"logging.level":          "LOG_LEVEL",
	"logging.format":         "LOG_FORMAT",
	"logging.include_caller": "LOG_INCLUDE_CALLER",
	"graph.uri":              "GRAPH_URI",
	"graph.database":         "GRAPH_DATABASE",
	"graph.username":         "GRAPH_USERNAME",
	"graph.password":         "GRAPH_PASSWORD",
	"graph.max_connections":  "GRAPH_MAX_CONNECTIONS",
	"session.secret":         "SESSION_SECRET",
	"session.ttl":            "SESSION_TTL",
	"session.key_prefix":     "SESSION_KEY_PREFIX",
	"redis.addr":             "REDIS_ADDR",
	"redis.password":         "REDIS_PASSWORD",
	"redis.db":               "REDIS_DB",
	"recorder.sqlite_path":   "RECORDER_SQLITE_PATH",
	"simulation.latency":     "SIMULATED_LATENCY",
	"fixtures.path":          "FIXTURES_PATH",
}

// Load reads configuration from the file named by CONFIG_FILE (if any) and
// environment variables, applying defaults.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile reads configuration from the YAML file at path, then lets
// environment variables override it. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return Config{}, fmt.Errorf("port %d is out of range", cfg.HTTP.Port)
	}
	if cfg.Session.TTL <= 0 {
		return Config{}, fmt.Errorf("session ttl must be positive, got %s", cfg.Session.TTL)
	}
	if cfg.Simulation.Latency < 0 {
		return Config{}, fmt.Errorf("simulated latency must not be negative, got %s", cfg.Simulation.Latency)
	}
	cfg.HTTP.AllowedOriginsCSV = strings.TrimSpace(cfg.HTTP.AllowedOriginsCSV)

	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in
// development secret.
func (c SessionConfig) UsesDefaultSecret() bool {
	return c.Secret == defaultSessionSecret
}

// AllowedOrigins splits the CSV origin list, dropping blanks.
func (c HTTPConfig) AllowedOrigins() []string {
	if c.AllowedOriginsCSV == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(c.AllowedOriginsCSV, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", defaultHost)
	v.SetDefault("http.port", defaultPort)
	v.SetDefault("http.read_timeout", defaultReadTimeout)
	v.SetDefault("http.write_timeout", defaultWriteTimeout)
	v.SetDefault("http.idle_timeout", defaultIdleTimeout)
	v.SetDefault("http.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("http.metrics_enabled", false)
	v.SetDefault("http.allowed_origins", "")
	v.SetDefault("logging.level", defaultLoggingLevel)
	v.SetDefault("logging.format", defaultLoggingFormat)
	v.SetDefault("logging.include_caller", false)
	v.SetDefault("graph.uri", "")
	v.SetDefault("graph.database", "")
	v.SetDefault("graph.username", "")
	v.SetDefault("graph.password", "")
	v.SetDefault("graph.max_connections", defaultGraphMaxSessions)
	v.SetDefault("session.secret", defaultSessionSecret)
	v.SetDefault("session.ttl", defaultSessionTTL)
	v.SetDefault("session.key_prefix", defaultSessionPrefix)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("recorder.sqlite_path", "")
	v.SetDefault("simulation.latency", defaultLatency)
	v.SetDefault("fixtures.path", "")
}
