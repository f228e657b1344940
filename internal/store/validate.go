package store

import (
	"errors"
	"regexp"
	"strings"
)

var apiKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// KnownPMS lists the provider names the backend accepts.
var KnownPMS = []string{"airbnb", "vrbo", "yourporter", "smartbnb", "ownerrez"}

// ValidateAPIKey applies the same basic shape checks the original client ran
// before persisting a PriceLabs key.
func ValidateAPIKey(key string) error {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return errors.New("API key is required")
	case len(key) < 10:
		return errors.New("API key appears to be too short")
	case len(key) > 200:
		return errors.New("API key appears to be too long")
	case !apiKeyPattern.MatchString(key):
		return errors.New("API key contains invalid characters")
	}
	return nil
}

// ValidatePMS normalizes and checks a PMS provider name.
func ValidatePMS(pms string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(pms))
	for _, known := range KnownPMS {
		if normalized == known {
			return normalized, nil
		}
	}
	return "", errors.New("unsupported pms (expected airbnb|vrbo|yourporter|smartbnb|ownerrez)")
}
