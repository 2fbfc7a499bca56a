package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	return path
}

func TestLoadPrefersFileOverValue(t *testing.T) {
	path := writeSecret(t, "  from-file\n")

	got, err := Load(Source{Name: "api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected from-file, got %q", got)
	}
}

func TestLoadInlineValue(t *testing.T) {
	got, err := Load(Source{Value: " inline "})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected inline, got %q", got)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TEST_SECRET", "env-value")
	got, err := Load(Source{Env: "TEST_SECRET"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "env-value" {
		t.Fatalf("expected env-value, got %q", got)
	}

	path := writeSecret(t, "env-file-value")
	t.Setenv("TEST_SECRET_FILE", path)
	got, err = Load(Source{Env: "TEST_SECRET", FileEnv: "TEST_SECRET_FILE"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "env-file-value" {
		t.Fatalf("expected env-file-value, got %q", got)
	}
}

func TestLoadConfigurationWinsOverEnvironment(t *testing.T) {
	t.Setenv("TEST_SECRET", "env-value")
	got, err := Load(Source{Value: "configured", Env: "TEST_SECRET"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "configured" {
		t.Fatalf("expected configured, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{name: "nothing configured", src: Source{Name: "gemini api key"}, want: "gemini api key is not configured"},
		{name: "empty file", src: Source{File: writeSecret(t, "  \n")}, want: "is empty"},
		{name: "missing file", src: Source{File: filepath.Join(t.TempDir(), "absent")}, want: "reading secret from file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
