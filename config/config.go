package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	AppEnv          string
	AppPort         string
	ShutdownTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// Redis
	RedisAddr string
	RedisPwd  string
	RedisDB   int

	// Kafka
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// JWT
	JWTSecret   string
	JWTTTLHours int

	// Auth
	SyntheticEmailDomain string

	// S3 avatar storage
	S3Region     string
	S3Bucket     string
	S3PublicRead bool
}

// Load reads configuration from config.yaml or environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config.yaml: %w", err)
	}

	cfg := &Config{
		AppEnv:               viper.GetString("APP_ENV"),
		AppPort:              viper.GetString("APP_PORT"),
		ShutdownTimeout:      viper.GetDuration("SHUTDOWN_TIMEOUT") * time.Second,
		MongoURI:             viper.GetString("MONGO_URI"),
		MongoDB:              viper.GetString("MONGO_DB"),
		RedisAddr:            viper.GetString("REDIS_ADDR"),
		RedisPwd:             viper.GetString("REDIS_PASSWORD"),
		RedisDB:              viper.GetInt("REDIS_DB"),
		KafkaBrokers:         viper.GetStringSlice("KAFKA_BROKERS"),
		KafkaTopic:           viper.GetString("KAFKA_TOPIC"),
		KafkaGroupID:         viper.GetString("KAFKA_GROUP_ID"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		JWTTTLHours:          viper.GetInt("JWT_TTL_HOURS"),
		SyntheticEmailDomain: viper.GetString("SYNTHETIC_EMAIL_DOMAIN"),
		S3Region:             viper.GetString("S3_REGION"),
		S3Bucket:             viper.GetString("S3_BUCKET"),
		S3PublicRead:         viper.GetBool("S3_PUBLIC_READ"),
	}

	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.SyntheticEmailDomain == "" {
		cfg.SyntheticEmailDomain = "messenger.local"
	}
	return cfg, nil
}
