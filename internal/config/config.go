package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection: memory, file or sqlite
	DataBackend string

	// File backend
	TransactionsFile string
	SettingsFile     string

	// SQLite backend
	SQLiteDBPath string

	// AMQP event bus (optional; empty URL disables it)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Classifier selection: rules or llm
	ClassifierBackend  string
	ClassifierEndpoint string
	ClassifierAPIKey   string
	ClassifierModel    string
	ClassifierTokens   int
	ClassifierTimeout  time.Duration

	// Export worker
	ExportDir    string
	ExportPrefix string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),

		TransactionsFile: getEnv("TRANSACTIONS_FILE", "./data/transactions.json"),
		SettingsFile:     getEnv("SETTINGS_FILE", "./data/settings.json"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/zenledger.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "zenledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		ClassifierBackend:  getEnv("CLASSIFIER_BACKEND", "rules"),
		ClassifierEndpoint: getEnv("CLASSIFIER_ENDPOINT", ""),
		ClassifierAPIKey:   getEnv("CLASSIFIER_API_KEY", ""),
		ClassifierModel:    getEnv("CLASSIFIER_MODEL", ""),
		ClassifierTokens:   getEnvInt("CLASSIFIER_MAX_TOKENS", 256),
		ClassifierTimeout:  getEnvDuration("CLASSIFIER_TIMEOUT", 30*time.Second),

		ExportDir:    getEnv("EXPORT_DIR", "./data/exports"),
		ExportPrefix: getEnv("EXPORT_PREFIX", "zenledger"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "file", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate file backend paths
	if c.DataBackend == "file" {
		if c.TransactionsFile == "" {
			errors = append(errors, "transactions file path cannot be empty when using file backend")
		}
		if c.SettingsFile == "" {
			errors = append(errors, "settings file path cannot be empty when using file backend")
		}
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate classifier configuration
	validClassifiers := []string{"rules", "llm"}
	isValidClassifier := false
	for _, backend := range validClassifiers {
		if c.ClassifierBackend == backend {
			isValidClassifier = true
			break
		}
	}
	if !isValidClassifier {
		errors = append(errors, fmt.Sprintf("invalid classifier backend '%s': must be one of %v", c.ClassifierBackend, validClassifiers))
	}

	if c.ClassifierBackend == "llm" {
		if c.ClassifierEndpoint == "" {
			errors = append(errors, "classifier endpoint is required when using llm classifier")
		}
		if c.ClassifierAPIKey == "" {
			errors = append(errors, "classifier API key is required when using llm classifier")
		}
		if c.ClassifierModel == "" {
			errors = append(errors, "classifier model is required when using llm classifier")
		}
		if c.ClassifierTokens < 1 {
			errors = append(errors, fmt.Sprintf("invalid classifier max tokens %d: must be at least 1", c.ClassifierTokens))
		}
		if c.ClassifierTimeout < time.Second {
			errors = append(errors, fmt.Sprintf("invalid classifier timeout %v: must be at least 1 second", c.ClassifierTimeout))
		} else if c.ClassifierTimeout > 5*time.Minute {
			errors = append(errors, fmt.Sprintf("invalid classifier timeout %v: must be at most 5 minutes", c.ClassifierTimeout))
		}
	}

	// Validate export configuration
	if c.ExportDir == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
