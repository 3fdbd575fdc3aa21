package utils

import "campuscare/config"

// IsProduction reports whether the service runs with the production profile.
func IsProduction() bool {
	return config.IsProduction()
}

// LogLevel returns the configured log level name ("" when unset).
func LogLevel() string {
	return config.AppConfig.LogLevel
}
