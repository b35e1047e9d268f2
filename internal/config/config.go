package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Kafka         KafkaConfig         `toml:"kafka"`
	Tracing       TracingConfig       `toml:"tracing"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
	Conferencing  ConferencingConfig  `toml:"conferencing"`
	Backend       BackendConfig       `toml:"backend"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	SettingsTTL int    `toml:"settings_ttl"` // секунды
}

type KafkaConfig struct {
	Enabled         bool     `toml:"enabled"`
	Brokers         []string `toml:"brokers"`
	AdminAlertTopic string   `toml:"admin_alert_topic"`
	WriteTimeout    int      `toml:"write_timeout"` // секунды
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

// SchedulingConfig параметры ядра расчета слотов
type SchedulingConfig struct {
	Timezone        string `toml:"timezone"`
	SettingsTimeout int    `toml:"settings_timeout"` // миллисекунды
	ListingTimeout  int    `toml:"listing_timeout"`  // миллисекунды
	PersistTimeout  int    `toml:"persist_timeout"`  // миллисекунды
}

// Location возвращает зону, в которой интерпретируются даты и рабочие часы
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type ConferencingConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"` // секунды
}

type BackendConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

type NotificationsConfig struct {
	Timeout int        `toml:"timeout"` // секунды
	AdminTo string     `toml:"admin_to"`
	SMTP    SMTPConfig `toml:"smtp"`
	SMS     SMSConfig  `toml:"sms"`
}

type SMTPConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type SMSConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки TOML
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "showing_service")

	setDefault(&c.Redis.SettingsTTL, 300)

	setDefault(&c.Kafka.AdminAlertTopic, "appointments.admin-alerts")
	setDefault(&c.Kafka.WriteTimeout, 5)

	setDefault(&c.Tracing.SampleRatio, 1.0)

	setDefault(&c.Scheduling.Timezone, "UTC")
	setDefault(&c.Scheduling.SettingsTimeout, 2000)
	setDefault(&c.Scheduling.ListingTimeout, 2000)
	setDefault(&c.Scheduling.PersistTimeout, 5000)

	setDefault(&c.Conferencing.Timeout, 5)
	setDefault(&c.Backend.Timeout, 5)
	setDefault(&c.Notifications.Timeout, 5)
	setDefault(&c.Notifications.SMTP.Port, 587)
}

// Validate проверяет конфигурацию и возвращает все найденные проблемы сразу
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if _, err := c.Scheduling.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling.timezone invalid: %v", err))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}
	if c.Tracing.Enabled && c.Tracing.OTLPEndpoint == "" {
		problems = append(problems, "tracing.otlp_endpoint is required when tracing is enabled")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, fmt.Sprintf("tracing.sample_ratio must be in [0,1]: %v", c.Tracing.SampleRatio))
	}
	if c.Conferencing.Enabled && c.Conferencing.URL == "" {
		problems = append(problems, "conferencing.url is required when conferencing is enabled")
	}
	if c.Backend.Enabled && c.Backend.URL == "" {
		problems = append(problems, "backend.url is required when backend is enabled")
	}
	if c.Notifications.SMTP.Enabled && (c.Notifications.SMTP.Host == "" || c.Notifications.SMTP.From == "") {
		problems = append(problems, "notifications.smtp.host and notifications.smtp.from are required when smtp is enabled")
	}
	if c.Notifications.SMS.Enabled && c.Notifications.SMS.WebhookURL == "" {
		problems = append(problems, "notifications.sms.webhook_url is required when sms is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
