package utils

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// GetEnvVariable returns the variable or defaultValue when unset or blank
func GetEnvVariable(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	raw := GetEnvVariable(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return v
}

func GetEnvBool(key string, defaultValue bool) bool {
	raw := GetEnvVariable(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := cast.ToBoolE(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetEnvDuration accepts Go durations ("15m") or plain seconds
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := GetEnvVariable(key, "")
	if raw == "" {
		return defaultValue
	}
	raw = strings.TrimSpace(raw)
	if secs, err := cast.ToInt64E(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	v, err := cast.ToDurationE(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// GetEnvList splits a comma-separated variable, dropping blanks
func GetEnvList(key string, defaultValue []string) []string {
	raw := GetEnvVariable(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
