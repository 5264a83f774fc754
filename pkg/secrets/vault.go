package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Config describes where to read secrets from. Vault is optional: with
// VAULT_ENABLED unset the loader is a no-op and configuration comes from the
// environment alone.
type Config struct {
	Enabled bool
	Addr    string
	Token   string
	Mount   string
	Path    string
	Timeout time.Duration
}

// FromEnv reads the Vault settings from the environment
func FromEnv() Config {
	mount := os.Getenv("VAULT_MOUNT")
	if mount == "" {
		mount = "secret"
	}
	return Config{
		Enabled: strings.EqualFold(os.Getenv("VAULT_ENABLED"), "true"),
		Addr:    os.Getenv("VAULT_ADDR"),
		Token:   os.Getenv("VAULT_TOKEN"),
		Mount:   mount,
		Path:    os.Getenv("VAULT_PATH"),
		Timeout: 5 * time.Second,
	}
}

// Apply fetches the KV v2 secret at cfg.Path and exports each key into the
// process environment. Keys already set in the environment win over Vault
// values. Returns the number of keys exported.
func Apply(ctx context.Context, cfg Config) (int, error) {
	if !cfg.Enabled {
		return 0, nil
	}
	if cfg.Addr == "" || cfg.Token == "" || cfg.Path == "" {
		return 0, errors.New("vault configuration incomplete (VAULT_ADDR, VAULT_TOKEN, VAULT_PATH)")
	}

	url := fmt.Sprintf("%s/v1/%s/data/%s",
		strings.TrimRight(cfg.Addr, "/"),
		strings.Trim(cfg.Mount, "/"),
		strings.TrimLeft(cfg.Path, "/"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Vault-Token", cfg.Token)

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("vault fetch failed: %s %s", resp.Status, strings.TrimSpace(string(body)))
	}

	// KV v2 nests the key/value pairs under data.data
	var payload struct {
		Data struct {
			Data map[string]string `json:"data"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, err
	}
	if payload.Data.Data == nil {
		return 0, errors.New("vault response missing secret data")
	}

	loaded := 0
	for key, value := range payload.Data.Data {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
