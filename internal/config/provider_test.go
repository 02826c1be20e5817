package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txprep/internal/domain"
)

func TestProvider(t *testing.T) {
	t.Run("defaults paths under the project root", func(t *testing.T) {
		dir := t.TempDir()

		v := viper.New()
		v.Set("project_root", dir)

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(dir, ".txprep"), cfg.DataDir)
		assert.Equal(t, filepath.Join(dir, "chains.toml"), cfg.ChainsFile)
		assert.Equal(t, filepath.Join(dir, ".txprep", "accounts.yaml"), cfg.AccountsFile)
		assert.Nil(t, cfg.Network)
		require.NotNil(t, cfg.Chains)
		assert.Contains(t, cfg.Chains.Chains, "mainnet")
	})

	t.Run("data dir override moves the account store", func(t *testing.T) {
		dir := t.TempDir()
		dataDir := filepath.Join(t.TempDir(), "state")

		v := viper.New()
		v.Set("project_root", dir)
		v.Set("data_dir", dataDir)

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, dataDir, cfg.DataDir)
		assert.Equal(t, filepath.Join(dataDir, "accounts.yaml"), cfg.AccountsFile)
	})

	t.Run("resolves the selected network", func(t *testing.T) {
		dir := t.TempDir()
		chainsToml := `[chains.anvil]
chain_id = 31337
rpc_url = "http://localhost:8545"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "chains.toml"), []byte(chainsToml), 0644))

		v := viper.New()
		v.Set("project_root", dir)
		v.Set("network", "anvil")

		cfg, err := Provider(v)
		require.NoError(t, err)

		require.NotNil(t, cfg.Network)
		assert.Equal(t, uint64(31337), cfg.Network.ChainID)
		assert.Equal(t, "http://localhost:8545", cfg.Network.RPCURL)
	})

	t.Run("unknown network suggests close names", func(t *testing.T) {
		v := viper.New()
		v.Set("project_root", t.TempDir())
		v.Set("network", "sepola")

		_, err := Provider(v)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownChain)
		assert.Contains(t, err.Error(), "sepolia")
	})

	t.Run("malformed chains.toml fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "chains.toml"), []byte("[chains.broken\n"), 0644))

		v := viper.New()
		v.Set("project_root", dir)

		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chains.toml")
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".txprep"), 0755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	got, err := FindProjectRoot()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}
