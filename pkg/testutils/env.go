// Package testutils holds helpers shared by tests that need a live DKG node.
package testutils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/joho/godotenv"
)

const (
	ENV_NODE_ENDPOINT   = "DKG_PLUGINS_DKG_ENDPOINT"
	ENV_NODE_BLOCKCHAIN = "DKG_PLUGINS_DKG_BLOCKCHAIN"
)

// LoadEnv loads the .env file at the project root, if there is one.
func LoadEnv() error {
	_, filename, _, _ := runtime.Caller(0)
	envPath := filepath.Join(filepath.Dir(filename), "..", "..", ".env")

	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(envPath)
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// NodeEndpointOrSkip returns the DKG node endpoint configured for integration
// tests and skips t when none is set.
func NodeEndpointOrSkip(t *testing.T) string {
	t.Helper()
	if err := LoadEnv(); err != nil {
		t.Fatalf("failed to load .env: %v", err)
	}
	endpoint := os.Getenv(ENV_NODE_ENDPOINT)
	if endpoint == "" {
		t.Skipf("%s not set, skipping DKG node integration test", ENV_NODE_ENDPOINT)
	}
	return endpoint
}
