package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/vitrinecms/vitrine/internal/store"
)

// dataDir holds the --data-dir persistent flag value (set on root command).
var dataDir string

// resolveDataDir returns the data directory from the --data-dir flag, the
// store.data_dir config key (or VITRINE_STORE_DATA_DIR), or ~/.vitrine.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if cfgDir := viper.GetString("store.data_dir"); cfgDir != "" {
		return cfgDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vitrine")
}

// openStore opens the content store as configured: SQLite under the data
// dir by default, Postgres or MySQL when store.driver says so.
func openStore() (*store.Store, error) {
	return store.New(store.Config{
		Driver:  viper.GetString("store.driver"),
		DSN:     viper.GetString("store.dsn"),
		DataDir: resolveDataDir(),
	})
}

// uploadsDir returns the directory uploaded images are stored in.
func uploadsDir() string {
	if dir := viper.GetString("uploads.dir"); dir != "" {
		return dir
	}
	return filepath.Join(resolveDataDir(), "uploads")
}
