package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	AdminKey string `mapstructure:"ADMIN_KEY"`

	// BaseURL is the public address embedded in QR confirmation links;
	// SiteURL is the website link appended to notification emails.
	BaseURL string `mapstructure:"BASE_URL"`
	SiteURL string `mapstructure:"SITE_URL"`

	CoupleNames string `mapstructure:"COUPLE_NAMES"`

	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      string `mapstructure:"SMTP_PORT"`
	SMTPUsername  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`
	SMTPFromName  string `mapstructure:"SMTP_FROM_NAME"`
	SMTPFromEmail string `mapstructure:"SMTP_FROM_EMAIL"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "wedding.db")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("SITE_URL", "http://localhost:3000")
	viper.SetDefault("COUPLE_NAMES", "Francesca e Antonio")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_FROM_NAME", "Sistema Inviti Matrimonio")

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("ADMIN_KEY")
	viper.BindEnv("SMTP_HOST")
	viper.BindEnv("SMTP_USERNAME")
	viper.BindEnv("SMTP_PASSWORD")
	viper.BindEnv("SMTP_FROM_EMAIL")
	viper.BindEnv("ADMIN_EMAIL")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("REDIS_PASSWORD")
	viper.BindEnv("REDIS_DB")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
