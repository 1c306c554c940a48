package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Platform PlatformConfig `mapstructure:"platform"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GatewayConfig holds payment gateway configuration. It is passed
// explicitly into factories and services; there is no global accessor.
type GatewayConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	StatementDescriptor string        `mapstructure:"statement_descriptor"`
	Multibuyer          bool          `mapstructure:"multibuyer"`
	Boleto              BoletoConfig  `mapstructure:"boleto"`
	CreditCard          MethodConfig  `mapstructure:"credit_card"`
	DebitCard           MethodConfig  `mapstructure:"debit_card"`
	Voucher             MethodConfig  `mapstructure:"voucher"`
}

// MethodConfig holds per payment method settings.
type MethodConfig struct {
	Capture             bool              `mapstructure:"capture"`
	StatementDescriptor string            `mapstructure:"statement_descriptor"`
	Installment         InstallmentConfig `mapstructure:"installment"`
}

// InstallmentConfig drives the installment table for one payment method.
// Rates are basis points per installment past the interest-free window.
type InstallmentConfig struct {
	MaxInstallments  int            `mapstructure:"max_installments"`
	InterestFree     int            `mapstructure:"interest_free"`
	InterestRateBps  int            `mapstructure:"interest_rate_bps"`
	BrandRateBps     map[string]int `mapstructure:"brand_rate_bps"`
	MinAmountPerPart int64          `mapstructure:"min_amount_per_part"`
}

// BoletoConfig holds boleto payment settings.
type BoletoConfig struct {
	Bank         string `mapstructure:"bank"`
	Instructions string `mapstructure:"instructions"`
	DueDays      int    `mapstructure:"due_days"`
}

// PlatformConfig holds host platform integration settings.
type PlatformConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIToken       string        `mapstructure:"api_token"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/paygate")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	// Read from environment variables
	v.SetEnvPrefix("PAYGATE")
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override with environment variables for sensitive values
	if key := os.Getenv("PAYGATE_GATEWAY_API_KEY"); key != "" {
		cfg.Gateway.APIKey = key
	}
	if token := os.Getenv("PAYGATE_PLATFORM_API_TOKEN"); token != "" {
		cfg.Platform.APIToken = token
	}
	if password := os.Getenv("PAYGATE_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if password := os.Getenv("PAYGATE_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "paygate")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	// Redis defaults
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// Gateway defaults
	v.SetDefault("gateway.base_url", "https://api.gateway.example")
	v.SetDefault("gateway.request_timeout", 15*time.Second)
	v.SetDefault("gateway.boleto.bank", "itau")
	v.SetDefault("gateway.boleto.due_days", 3)
	v.SetDefault("gateway.credit_card.capture", true)
	v.SetDefault("gateway.credit_card.installment.max_installments", 12)
	v.SetDefault("gateway.credit_card.installment.interest_free", 3)
	v.SetDefault("gateway.credit_card.installment.interest_rate_bps", 199)
	v.SetDefault("gateway.debit_card.capture", true)
	v.SetDefault("gateway.debit_card.installment.max_installments", 1)
	v.SetDefault("gateway.voucher.capture", true)
	v.SetDefault("gateway.voucher.installment.max_installments", 1)

	// Platform defaults
	v.SetDefault("platform.base_url", "http://localhost:9090")
	v.SetDefault("platform.request_timeout", 10*time.Second)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
