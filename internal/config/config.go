// Package config centralises configuration parsing for the trainer binaries.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values.
type Config struct {
	KafkaBrokers    []string
	ConsumerGroupID string
	ConsumerTopics  []string
	SummaryTopic    string
	MetricsAddress  string
	PublishTimeout  time.Duration
	AbortOnError    bool // Stop a batch at the first rejected package instead of skipping it.
}

// Load reads environment variables into Config, applying defaults for local dev.
// A .env file in the working directory is loaded first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	return Config{
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		ConsumerGroupID: getEnv("CONSUMER_GROUP_ID", "trainer-summaries"),
		ConsumerTopics:  splitAndTrim(getEnv("CONSUMER_TOPICS", "sensor_packages")),
		SummaryTopic:    getEnv("SUMMARY_TOPIC", "workout_summaries"),
		MetricsAddress:  getEnv("METRICS_ADDRESS", ":9196"),
		PublishTimeout:  getDurationEnv("PUBLISH_TIMEOUT", 5*time.Second),
		AbortOnError:    getBoolEnv("ABORT_ON_ERROR", true),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
