// Package config loads runtime configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Name        string        `mapstructure:"name"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	SSLMode     string        `mapstructure:"sslmode"`
	WaitRetries int           `mapstructure:"wait_retries"`
	WaitDelay   time.Duration `mapstructure:"wait_delay"`
}

// DSN builds the Postgres connection string for gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

type DataConfig struct {
	Dir           string `mapstructure:"dir"`
	SalesFile     string `mapstructure:"sales_file"`
	CustomersFile string `mapstructure:"customers_file"`
}

type RankingConfig struct {
	TopN int `mapstructure:"top_n"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Data     DataConfig     `mapstructure:"data"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func Load() (Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SALESETL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "sales_db")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.wait_retries", 10)
	v.SetDefault("database.wait_delay", 2*time.Second)

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.sales_file", "sales.csv")
	v.SetDefault("data.customers_file", "customers.csv")

	v.SetDefault("ranking.top_n", 5)

	v.SetDefault("metrics.addr", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
