package utils

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode returns a short public booking reference, e.g. "RSV-9F3A2C41".
func NewReferenceCode() string {
	id := uuid.New()
	return "RSV-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// EnvOrDefault returns the env value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
