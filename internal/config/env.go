package config

import (
	"fmt"
	"strings"
)

// MissingError lists required settings that were not provided.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("ENV %s is required", strings.Join(e.Keys, ", "))
}

// Validate reports required settings that are empty. Commands that only
// touch the database pass needJWT=false.
func (c Config) Validate(needJWT bool) error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if needJWT && c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

// LiveSearchEnabled reports whether a Kakao REST key was configured.
func (c Config) LiveSearchEnabled() bool {
	return c.KakaoRESTAPIKey != ""
}

// OAuthEnabled reports whether the named provider has client credentials.
func (c Config) OAuthEnabled(provider string) bool {
	switch provider {
	case "google":
		return c.GoogleClientID != "" && c.GoogleClientSecret != ""
	case "kakao":
		return c.KakaoClientID != ""
	}
	return false
}
