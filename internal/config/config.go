// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/yurii-musolov/patisson-api/pkg/backoff"
	"github.com/yurii-musolov/patisson-api/pkg/bybit"
)

// Config — все настройки сервиса.
type Config struct {
	ServiceName    string       `mapstructure:"service_name"`
	ServiceVersion string       `mapstructure:"service_version"`
	Bybit          BybitConfig  `mapstructure:"bybit"`
	Kafka          KafkaConfig  `mapstructure:"kafka"`
	Telemetry      Telemetry    `mapstructure:"telemetry"`
	Logging        Logging      `mapstructure:"logging"`
	HTTP           HTTPConfig   `mapstructure:"http"`
}

// BybitConfig хранит настройки public stream-а.
type BybitConfig struct {
	BaseURL  string   `mapstructure:"base_url"`
	Category string   `mapstructure:"category"`
	Symbols  []string `mapstructure:"symbols"`
	// KlineIntervals — интервалы kline-подписок для каждого символа.
	KlineIntervals   []string       `mapstructure:"kline_intervals"`
	PingInterval     time.Duration  `mapstructure:"ping_interval"`
	HandshakeTimeout time.Duration  `mapstructure:"handshake_timeout"`
	Backoff          backoff.Config `mapstructure:"backoff"`
}

// KafkaConfig хранит настройки продюсера и топики назначения.
type KafkaConfig struct {
	Brokers           []string       `mapstructure:"brokers"`
	TickersTopic      string         `mapstructure:"tickers_topic"`
	TradesTopic       string         `mapstructure:"trades_topic"`
	KlinesTopic       string         `mapstructure:"klines_topic"`
	LiquidationsTopic string         `mapstructure:"liquidations_topic"`
	RequiredAcks      string         `mapstructure:"required_acks"`
	Timeout           time.Duration  `mapstructure:"timeout"`
	Compression       string         `mapstructure:"compression"`
	FlushFrequency    time.Duration  `mapstructure:"flush_frequency"`
	FlushMessages     int            `mapstructure:"flush_messages"`
	Backoff           backoff.Config `mapstructure:"backoff"`
}

// Telemetry хранит настройки OpenTelemetry.
type Telemetry struct {
	OTLPEndpoint string `mapstructure:"otel_endpoint"`
	Insecure     bool   `mapstructure:"insecure"`
}

// Logging хранит настройки логгера.
type Logging struct {
	Level   string `mapstructure:"level"`
	DevMode bool   `mapstructure:"dev_mode"`
}

// HTTPConfig хранит конфигурацию служебного HTTP-сервера.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MetricsPath     string        `mapstructure:"metrics_path"`
	HealthzPath     string        `mapstructure:"healthz_path"`
	ReadyzPath      string        `mapstructure:"readyz_path"`
}

// Load загружает и валидирует конфиг. Если path пустой — читаются только
// ENV и defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("service_name", "bybit-stream-collector")
	v.SetDefault("service_version", "v1.0.0")

	v.SetDefault("bybit.base_url", bybit.StreamMainnet)
	v.SetDefault("bybit.category", string(bybit.CategoryLinear))
	v.SetDefault("bybit.symbols", []string{"BTCUSDT"})
	v.SetDefault("bybit.kline_intervals", []string{})
	v.SetDefault("bybit.ping_interval", "20s")
	v.SetDefault("bybit.handshake_timeout", "10s")

	v.SetDefault("kafka.tickers_topic", "bybit.tickers")
	v.SetDefault("kafka.trades_topic", "bybit.trades")
	v.SetDefault("kafka.klines_topic", "bybit.klines")
	v.SetDefault("kafka.liquidations_topic", "bybit.liquidations")
	v.SetDefault("kafka.required_acks", "all")
	v.SetDefault("kafka.timeout", "15s")
	v.SetDefault("kafka.compression", "none")
	v.SetDefault("kafka.flush_frequency", "0s")
	v.SetDefault("kafka.flush_messages", 0)

	v.SetDefault("telemetry.otel_endpoint", "otel-collector:4317")
	v.SetDefault("telemetry.insecure", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.dev_mode", false)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("http.metrics_path", "/metrics")
	v.SetDefault("http.healthz_path", "/healthz")
	v.SetDefault("http.readyz_path", "/readyz")

	v.SetEnvPrefix("BYBIT_STREAM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToBoolHook,
	)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "mapstructure",
		Result:     &cfg,
		DecodeHook: decodeHook,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// stringToBoolHook разбирает true/false, иначе отдает исходные данные.
func stringToBoolHook(f, t reflect.Kind, data interface{}) (interface{}, error) {
	if f == reflect.String && t == reflect.Bool {
		return strconv.ParseBool(data.(string))
	}
	return data, nil
}

func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.ServiceVersion == "" {
		return fmt.Errorf("service_version is required")
	}

	if c.Bybit.BaseURL == "" {
		return fmt.Errorf("bybit.base_url is required")
	}
	switch bybit.Category(c.Bybit.Category) {
	case bybit.CategorySpot, bybit.CategoryLinear, bybit.CategoryInverse, bybit.CategoryOption:
	default:
		return fmt.Errorf("bybit.category must be one of [spot, linear, inverse, option]")
	}
	if len(c.Bybit.Symbols) == 0 {
		return fmt.Errorf("bybit.symbols must contain at least one entry")
	}
	if c.Bybit.PingInterval <= 0 {
		return fmt.Errorf("bybit.ping_interval must be > 0")
	}
	if c.Bybit.HandshakeTimeout <= 0 {
		return fmt.Errorf("bybit.handshake_timeout must be > 0")
	}

	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	topics := map[string]string{
		"kafka.tickers_topic":      c.Kafka.TickersTopic,
		"kafka.trades_topic":       c.Kafka.TradesTopic,
		"kafka.klines_topic":       c.Kafka.KlinesTopic,
		"kafka.liquidations_topic": c.Kafka.LiquidationsTopic,
	}
	for k, t := range topics {
		if t == "" {
			return fmt.Errorf("%s is required", k)
		}
	}
	switch strings.ToLower(c.Kafka.RequiredAcks) {
	case "all", "leader", "none":
	default:
		return fmt.Errorf("kafka.required_acks must be one of [all, leader, none]")
	}
	switch strings.ToLower(c.Kafka.Compression) {
	case "none", "gzip", "snappy", "lz4", "zstd":
	default:
		return fmt.Errorf("kafka.compression must be one of [none, gzip, snappy, lz4, zstd]")
	}

	if c.Telemetry.OTLPEndpoint == "" {
		return fmt.Errorf("telemetry.otel_endpoint is required")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error]")
	}

	return validateHTTP(&c.HTTP)
}

func validateHTTP(h *HTTPConfig) error {
	if h.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	durations := map[string]time.Duration{
		"http.read_timeout":     h.ReadTimeout,
		"http.write_timeout":    h.WriteTimeout,
		"http.idle_timeout":     h.IdleTimeout,
		"http.shutdown_timeout": h.ShutdownTimeout,
	}
	for k, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be > 0", k)
		}
	}
	paths := map[string]string{
		"http.metrics_path": h.MetricsPath,
		"http.healthz_path": h.HealthzPath,
		"http.readyz_path":  h.ReadyzPath,
	}
	for k, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s must start with '/'", k)
		}
	}
	return nil
}

// Print выводит текущий конфиг в JSON (удобно в DevMode).
func (c *Config) Print() {
	b, _ := json.MarshalIndent(c, "", "  ")
	fmt.Println("Loaded configuration:\n", string(b))
}
