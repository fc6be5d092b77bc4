package mysticons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRequire(t *testing.T) {
	cfg := &Config{RPCURL: "http://localhost:9000", PackageID: "0x9a"}

	require.NoError(t, cfg.Require(EnvNetwork, EnvPackageID))

	err := cfg.Require(OpMint.RequiredConfig()...)
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), EnvAdminPhrase)
	assert.Contains(t, err.Error(), EnvAdminCapID)
	assert.Contains(t, err.Error(), EnvAdminAddress)
	assert.NotContains(t, err.Error(), EnvNetwork)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PACKAGE_ID=0x9a\nSUI_NETWORK=http://from-file\n"), 0o600))

	t.Setenv(EnvNetwork, "http://from-env")
	t.Setenv(EnvPackageID, "")
	require.NoError(t, os.Unsetenv(EnvPackageID))

	require.NoError(t, LoadDotEnv(path))
	cfg := ConfigFromEnv()
	assert.Equal(t, "0x9a", cfg.PackageID)
	assert.Equal(t, "http://from-env", cfg.RPCURL)

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestGasBudgetOverride(t *testing.T) {
	cfg := &Config{PackageID: "0x9a", AdminCapID: "0xcaf", AdminAddress: "0xad"}
	assert.Equal(t, LargeGasBudget, BuildBurn(cfg, "0x1").GasBudget())
	assert.Zero(t, BuildMint(cfg, DefaultMintParams()).GasBudget())

	cfg.GasBudget = 5
	assert.Equal(t, uint64(5), BuildBurn(cfg, "0x1").GasBudget())
	assert.Equal(t, uint64(5), BuildMint(cfg, DefaultMintParams()).GasBudget())
}
