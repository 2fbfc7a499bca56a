package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret may come from. Explicit configuration wins
// over the environment, and a file wins over an inline value at the same level.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is an inline secret from configuration or flags.
	Value string
	// File points to a file containing the secret.
	File string
	// Env names an environment variable holding the secret.
	Env string
	// FileEnv names an environment variable holding a path to the secret.
	FileEnv string
}

// Load resolves the secret described by src. The returned value is trimmed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	value := src.Value
	if file == "" && strings.TrimSpace(value) == "" {
		if env := strings.TrimSpace(src.FileEnv); env != "" {
			file = strings.TrimSpace(os.Getenv(env))
		}
		if file == "" && strings.TrimSpace(src.Env) != "" {
			value = os.Getenv(strings.TrimSpace(src.Env))
		}
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
