package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Session      SessionConfig
	Booking      BookingConfig
	Notification NotificationConfig
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

type BookingConfig struct {
	// HoldMinutes is how long a pending booking blocks its slot
	// before the sweeper reclaims it.
	HoldMinutes          int
	SweepIntervalMinutes int
	// SweeperToken authorizes the external scheduler to hit the
	// manual sweep endpoint without an admin session.
	SweeperToken string
}

type NotificationConfig struct {
	WebhookURL     string
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("BOOKING_HOLD_MINUTES", 30)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 5)
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("LOG_PATH", "logs/")

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
			HoldMinutes:          viper.GetInt("BOOKING_HOLD_MINUTES"),
			SweepIntervalMinutes: viper.GetInt("SWEEP_INTERVAL_MINUTES"),
			SweeperToken:         viper.GetString("SWEEPER_TOKEN"),
		},
		Notification: NotificationConfig{
			WebhookURL:     viper.GetString("NOTIFY_WEBHOOK_URL"),
			TimeoutSeconds: viper.GetInt("NOTIFY_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
