package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	App     AppConfig
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Tracing TracingConfig
	Booking BookingConfig
	Notify  NotifyConfig
}

type AppConfig struct {
	Env string `envconfig:"APP_ENV" default:"development"`
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/London"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Addr empty means idempotency keys are kept in process memory.
type RedisConfig struct {
	Addr           string        `envconfig:"REDIS_ADDR"`
	Password       string        `envconfig:"REDIS_PASSWORD"`
	DB             int           `envconfig:"REDIS_DB" default:"0"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

// Brokers empty means staff notifications are written to the log.
type KafkaConfig struct {
	Brokers      []string      `envconfig:"KAFKA_BROKERS"`
	Topic        string        `envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"caravan.booking-notifications"`
	WriteTimeout time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT" default:"10s"`
}

type TracingConfig struct {
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"caravan-booking"`
}

type BookingConfig struct {
	SeasonOpenMonth int    `envconfig:"BOOKING_SEASON_OPEN_MONTH" default:"3"`
	SeasonOpenDay   int    `envconfig:"BOOKING_SEASON_OPEN_DAY" default:"1"`
	TimeZone        string `envconfig:"BOOKING_TIMEZONE" default:"Europe/London"`
	// StrictInvariants panics on programmer errors in the pricing engine.
	// Unset means strict everywhere except production.
	StrictInvariants *bool `envconfig:"BOOKING_STRICT_INVARIANTS"`
	CalendarMaxDays  int   `envconfig:"BOOKING_CALENDAR_MAX_DAYS" default:"92"`
}

type NotifyConfig struct {
	StaffEmail   string        `envconfig:"NOTIFY_STAFF_EMAIL" default:"bookings@example.com"`
	PollInterval time.Duration `envconfig:"NOTIFY_POLL_INTERVAL" default:"5s"`
	BatchSize    int           `envconfig:"NOTIFY_BATCH_SIZE" default:"20"`
	MaxAttempts  int           `envconfig:"NOTIFY_MAX_ATTEMPTS" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) StrictInvariants() bool {
	if c.Booking.StrictInvariants != nil {
		return *c.Booking.StrictInvariants
	}
	return !c.App.IsProduction()
}

func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c BookingConfig) Validate() error {
	if c.SeasonOpenMonth < 1 || c.SeasonOpenMonth > 12 {
		return fmt.Errorf("BOOKING_SEASON_OPEN_MONTH out of range: %d", c.SeasonOpenMonth)
	}
	if c.SeasonOpenDay < 1 || c.SeasonOpenDay > 28 {
		return fmt.Errorf("BOOKING_SEASON_OPEN_DAY out of range: %d", c.SeasonOpenDay)
	}
	if c.CalendarMaxDays < 1 {
		return fmt.Errorf("BOOKING_CALENDAR_MAX_DAYS must be positive: %d", c.CalendarMaxDays)
	}
	return nil
}

func (c NotifyConfig) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("NOTIFY_POLL_INTERVAL must be positive: %s", c.PollInterval)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("NOTIFY_BATCH_SIZE must be positive: %d", c.BatchSize)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("NOTIFY_MAX_ATTEMPTS must be positive: %d", c.MaxAttempts)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Booking.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.Notify.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	strict := true
	return Config{
		App: AppConfig{
			Env: "test",
		},
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Redis: RedisConfig{
			IdempotencyTTL: time.Hour,
		},
		Kafka: KafkaConfig{
			Topic:        "caravan.booking-notifications",
			WriteTimeout: time.Second,
		},
		Tracing: TracingConfig{
			ServiceName: "caravan-booking-test",
		},
		Booking: BookingConfig{
			SeasonOpenMonth:  3,
			SeasonOpenDay:    1,
			TimeZone:         "UTC",
			StrictInvariants: &strict,
			CalendarMaxDays:  92,
		},
		Notify: NotifyConfig{
			StaffEmail:   "staff@example.com",
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  3,
		},
	}
}
