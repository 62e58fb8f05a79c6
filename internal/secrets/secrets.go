// Package secrets resolves named configuration values. Lookup order:
// process environment, OS keychain, then a fixed list of local env files.
// Works the same in sandboxed and unsandboxed runs; no caching, no network.
package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "siliconbeach"

// Get resolves key, returning def when nothing matches. The environment
// always wins over keychain and files.
func Get(key, def string) string {
	return getFrom(key, def, envFilePaths())
}

func getFrom(key, def string, paths []string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v, err := keyring.Get(KeyringService, key); err == nil && strings.TrimSpace(v) != "" {
		return v
	}
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if err != nil {
			// unreadable or absent file, try the next one
			continue
		}
		if v, ok := vals[key]; ok && v != "" {
			return v
		}
	}
	return def
}

// envFilePaths lists candidate key=value files, most specific last so the
// user's global secrets take priority over per-project .env files.
func envFilePaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "secrets", "global.env"),
			filepath.Join(home, ".secrets", "global.env"),
		)
	}
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths,
			filepath.Join(cwd, ".env"),
			filepath.Join(cwd, ".env.local"),
			filepath.Join(parent, ".env"),
			filepath.Join(parent, ".env.local"),
		)
	}
	return paths
}

// SetKeyring stores a secret in the OS keychain.
func SetKeyring(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

// DeleteKeyring removes a secret from the OS keychain.
func DeleteKeyring(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	return keyring.Delete(KeyringService, name)
}
