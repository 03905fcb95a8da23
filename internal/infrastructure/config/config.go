package config

import (
	"os"
)

type Config struct {
	Server ServerConfig
	OTLP   OTLPConfig
	Sales  SalesConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type OTLPConfig struct {
	Endpoint    string
	ServiceName string
	Environment string
}

type SalesConfig struct {
	DataPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		OTLP: OTLPConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "price-monitor-api"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Sales: SalesConfig{
			DataPath: getEnv("SALES_DATA_PATH", "data/sales.csv"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
