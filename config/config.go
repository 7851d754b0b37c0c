package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
	Notifier NotifierConfig `yaml:"notifier"`
}

type HTTPConfig struct {
	Address    string  `yaml:"address"`
	SwaggerDir string  `yaml:"swagger_dir"`
	AuthRPS    float64 `yaml:"auth_rps"`
	AuthBurst  int     `yaml:"auth_burst"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	Secret          string `yaml:"secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

type BookingConfig struct {
	HoldTTLSeconds          int `yaml:"hold_ttl_seconds"`
	SpeakersCacheTTLSeconds int `yaml:"speakers_cache_ttl_seconds"`
	DefaultRangeDays        int `yaml:"default_range_days"`
}

type WorkerConfig struct {
	ReminderSweepMinutes  int `yaml:"reminder_sweep_minutes"`
	ReminderWindowMinutes int `yaml:"reminder_window_minutes"`
}

type NotifierConfig struct {
	EmailFrom      string `yaml:"email_from"`
	SMTPAddr       string `yaml:"smtp_addr"`
	CalendarURL    string `yaml:"calendar_url"`
	CalendarAPIKey string `yaml:"calendar_api_key"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
