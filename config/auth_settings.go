package config

import (
	"os"
	"strings"
)

// AuthConfig represents configuration for API authentication
type AuthConfig struct {
	// JWTSecretFile points to a file holding the HS256 signing secret
	JWTSecretFile string `yaml:"jwt_secret_file"`
}

// LoadJWTSecret returns the JWT signing secret. The AUTH_JWT_SECRET
// environment variable takes precedence over the configured file.
// A missing file yields an empty secret, which disables authentication.
func LoadJWTSecret(filename string) (string, error) {
	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		return secret, nil
	}

	if filename == "" {
		return "", nil
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return "", nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
