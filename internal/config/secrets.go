package config

import (
	"fmt"
	"os"
	"strings"
)

// readSecret reads a Docker secret from /run/secrets/<name>. When the file is
// absent it falls back to the upper-cased environment variable of the same
// name, so local development works without a secrets mount.
func readSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		if envVal := strings.TrimSpace(os.Getenv(strings.ToUpper(secretName))); envVal != "" {
			return envVal, nil
		}
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}
