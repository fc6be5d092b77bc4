package mysticons

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys the tool is configured with.
const (
	EnvNetwork      = "SUI_NETWORK"
	EnvAdminPhrase  = "ADMIN_PHRASE"
	EnvPackageID    = "PACKAGE_ID"
	EnvAdminCapID   = "ADMIN_CAP_ID"
	EnvPublisherID  = "PUBLISHER_ID"
	EnvAdminAddress = "ADMIN_ADDRESS"
)

var ErrMissingConfig = errors.New("missing configuration")

// Config holds everything an operation needs besides its own arguments.
type Config struct {
	RPCURL       string
	AdminPhrase  string
	PackageID    string
	AdminCapID   string
	PublisherID  string
	AdminAddress string

	// GasBudget overrides the per operation budget. Zero keeps the default.
	GasBudget uint64
	// DryRun simulates transactions instead of executing them.
	DryRun bool
}

// ConfigFromEnv reads the configuration keys from the process environment.
func ConfigFromEnv() *Config {
	return &Config{
		RPCURL:       os.Getenv(EnvNetwork),
		AdminPhrase:  os.Getenv(EnvAdminPhrase),
		PackageID:    os.Getenv(EnvPackageID),
		AdminCapID:   os.Getenv(EnvAdminCapID),
		PublisherID:  os.Getenv(EnvPublisherID),
		AdminAddress: os.Getenv(EnvAdminAddress),
	}
}

// LoadDotEnv loads variables from the given files (".env" when none are
// given) without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
	}
	return nil
}

// Get returns the value configured for an environment key.
func (c *Config) Get(key string) string {
	switch key {
	case EnvNetwork:
		return c.RPCURL
	case EnvAdminPhrase:
		return c.AdminPhrase
	case EnvPackageID:
		return c.PackageID
	case EnvAdminCapID:
		return c.AdminCapID
	case EnvPublisherID:
		return c.PublisherID
	case EnvAdminAddress:
		return c.AdminAddress
	default:
		return ""
	}
}

// Require returns ErrMissingConfig naming every key in keys that is empty.
func (c *Config) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if strings.TrimSpace(c.Get(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) gasBudget(fallback uint64) uint64 {
	if c.GasBudget != 0 {
		return c.GasBudget
	}
	return fallback
}
