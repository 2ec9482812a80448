package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores the service configuration loaded from the environment.
type Config struct {
	Port  string
	Debug bool

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string
}

// Load reads the configuration from a .env file (if present) and the
// environment, applying defaults for anything not set.
func Load() (*Config, error) {
	// A missing .env file is not an error; the environment may already
	// carry everything.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lembretes")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 465)

	cfg := &Config{
		Port:         v.GetString("PORT"),
		Debug:        v.GetBool("DEBUG"),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBUser:       v.GetString("DB_USER"),
		DBPassword:   v.GetString("DB_PASSWORD"),
		DBName:       v.GetString("DB_NAME"),
		DBSSLMode:    v.GetString("DB_SSLMODE"),
		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPSender:   v.GetString("SMTP_SENDER"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
	}

	return cfg, nil
}

// DatabaseDSN builds the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
