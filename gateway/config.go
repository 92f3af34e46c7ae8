package gateway

import (
	"os"
	"time"
)

// Config is the configuration for the payment gateway application.
type Config struct {
	HTTPAddr string

	// StoreBackend selects the payment store: "mem" (default, ephemeral),
	// "pg" or "redis".
	StoreBackend  string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string

	// BankBackend selects the acquiring bank transport: "http" (default) or
	// "iso8583".
	BankBackend     string
	BankURL         string
	BankISO8583Addr string
	// BankTimeout bounds every outbound bank call.
	BankTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:        "localhost:8090",
		StoreBackend:    "mem",
		RedisAddr:       "localhost:6379",
		BankBackend:     "http",
		BankURL:         "http://localhost:8080",
		BankISO8583Addr: "localhost:8583",
		BankTimeout:     10 * time.Second,
	}
}

// ConfigFromEnv builds a Config from the environment, falling back to the
// defaults for anything unset.
func ConfigFromEnv() *Config {
	def := DefaultConfig()

	return &Config{
		HTTPAddr:        getEnvString("HTTP_ADDR", def.HTTPAddr),
		StoreBackend:    getEnvString("STORE_BACKEND", def.StoreBackend),
		DatabaseDSN:     getEnvString("DB_DSN", ""),
		RedisAddr:       getEnvString("REDIS_ADDR", def.RedisAddr),
		RedisPassword:   getEnvString("REDIS_PASSWORD", ""),
		BankBackend:     getEnvString("BANK_BACKEND", def.BankBackend),
		BankURL:         getEnvString("BANK_URL", def.BankURL),
		BankISO8583Addr: getEnvString("BANK_ISO8583_ADDR", def.BankISO8583Addr),
		BankTimeout:     getEnvDuration("BANK_TIMEOUT", def.BankTimeout),
	}
}

func getEnvString(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return d
}
