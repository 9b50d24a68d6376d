package utils

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// BookingConfig carries the studio's scheduling policy knobs.
type BookingConfig struct {
	// Timezone is the studio's local timezone; cutoff gates are evaluated
	// in it.
	Timezone string
	// BookCutoffMinutes is how long before class start bookings close.
	BookCutoffMinutes int
	// CancelCutoffMinutes is how long before class start cancellations
	// close.
	CancelCutoffMinutes int
	// ChargePolicy picks the package to consume when a member holds
	// several: first_with_remaining or earliest.
	ChargePolicy string
}

// DSN builds the connection string shared by the pool and the migration
// runner.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 72)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STUDIO_TIMEZONE", "Europe/Athens")
	viper.SetDefault("BOOK_CUTOFF_MINUTES", 90)
	viper.SetDefault("CANCEL_CUTOFF_MINUTES", 120)
	viper.SetDefault("CHARGE_POLICY", "first_with_remaining")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			Timezone:            viper.GetString("STUDIO_TIMEZONE"),
			BookCutoffMinutes:   viper.GetInt("BOOK_CUTOFF_MINUTES"),
			CancelCutoffMinutes: viper.GetInt("CANCEL_CUTOFF_MINUTES"),
			ChargePolicy:        viper.GetString("CHARGE_POLICY"),
		},
	}

	return config, nil
}
