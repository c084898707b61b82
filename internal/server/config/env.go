package config

import "os"

// parseEnv applies PORT and DATABASE_DSN when they are set and non-empty.
func parseEnv(config *Config) {
	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	if dsn, ok := os.LookupEnv("DATABASE_DSN"); ok && dsn != "" {
		config.DatabaseDSN = dsn
	}
}
