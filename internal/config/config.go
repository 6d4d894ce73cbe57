package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

var (
	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Booking     BookingConfig     `toml:"booking"`
	Reaper      ReaperConfig      `toml:"reaper"`
	Redis       RedisConfig       `toml:"redis"`
	Kafka       KafkaConfig       `toml:"kafka"`
	UserService UserServiceConfig `toml:"user_service"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры движка бронирования
type BookingConfig struct {
	StepTimeMinutes      int     `toml:"step_time_minutes"`
	LeadTimeMinutes      int     `toml:"lead_time_minutes"`
	BookingNoticeMinutes int     `toml:"booking_notice_minutes"`
	HoldTimeoutMinutes   int     `toml:"hold_timeout_minutes"`
	MaxSlotsPerOrder     int     `toml:"max_slots_per_order"`
	DefaultPrice         float64 `toml:"default_price"`
	Timezone             string  `toml:"timezone"`
}

// Location часовой пояс, в котором считаются даты и время слотов
func (c BookingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Settings параметры движка в виде доменной модели
func (c BookingConfig) Settings() domain.BookingSettings {
	return domain.BookingSettings{
		StepTimeMinutes:      c.StepTimeMinutes,
		LeadTimeMinutes:      c.LeadTimeMinutes,
		BookingNoticeMinutes: c.BookingNoticeMinutes,
		HoldTimeoutMinutes:   c.HoldTimeoutMinutes,
		MaxSlotsPerOrder:     c.MaxSlotsPerOrder,
		DefaultPrice:         domain.Money(c.DefaultPrice),
	}
}

type ReaperConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
	LockTTLSeconds  int  `toml:"lock_ttl_seconds"`
}

// Interval период запуска чистки
func (c ReaperConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// LockTTL время жизни распределенной блокировки
func (c ReaperConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// RedisConfig пустой Addr отключает распределенную блокировку чистки
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// KafkaConfig пустой Brokers переключает уведомления на запись в лог
type KafkaConfig struct {
	Brokers string `toml:"brokers"`
	Topic   string `toml:"topic"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	IdleTTL           int     `toml:"idle_ttl"`  // секунды, через которые забывается неактивный клиент
	IPHeader          string  `toml:"ip_header"` // заголовок с IP клиента от доверенного шлюза, пусто - адрес соединения
}

// IdleTTLDuration время жизни лимитера неактивного клиента
func (r RateLimitConfig) IdleTTLDuration() time.Duration {
	return time.Duration(r.IdleTTL) * time.Second
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	b := c.Booking
	if b.StepTimeMinutes <= 0 || 60%b.StepTimeMinutes != 0 {
		return fmt.Errorf("%w: booking.step_time_minutes must divide 60, got %d", ErrInvalidConfig, b.StepTimeMinutes)
	}
	if b.HoldTimeoutMinutes <= 0 {
		return fmt.Errorf("%w: booking.hold_timeout_minutes must be positive", ErrInvalidConfig)
	}
	if b.LeadTimeMinutes < 0 || b.BookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking lead/notice minutes must not be negative", ErrInvalidConfig)
	}
	if b.MaxSlotsPerOrder <= 0 {
		return fmt.Errorf("%w: booking.max_slots_per_order must be positive", ErrInvalidConfig)
	}
	if b.DefaultPrice < 0 {
		return fmt.Errorf("%w: booking.default_price must not be negative", ErrInvalidConfig)
	}
	if _, err := b.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: rate_limit.requests_per_second must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "facility_booking"
	}

	if c.Booking.StepTimeMinutes == 0 {
		c.Booking.StepTimeMinutes = 30
	}
	if c.Booking.LeadTimeMinutes == 0 {
		c.Booking.LeadTimeMinutes = 60
	}
	if c.Booking.BookingNoticeMinutes == 0 {
		c.Booking.BookingNoticeMinutes = 30
	}
	if c.Booking.HoldTimeoutMinutes == 0 {
		c.Booking.HoldTimeoutMinutes = 15
	}
	if c.Booking.MaxSlotsPerOrder == 0 {
		c.Booking.MaxSlotsPerOrder = 5
	}
	if c.Booking.DefaultPrice == 0 {
		c.Booking.DefaultPrice = 50
	}

	if c.Reaper.IntervalSeconds == 0 {
		c.Reaper.IntervalSeconds = 60
	}
	if c.Reaper.LockTTLSeconds == 0 {
		c.Reaper.LockTTLSeconds = 30
	}

	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "facility-booking"
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "order.status.changed"
	}

	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 5
	}

	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}

	if c.RateLimit.IdleTTL == 0 {
		c.RateLimit.IdleTTL = 600
	}
}
