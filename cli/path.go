package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/ntro/pkg"
)

// ConfigDirEnv overrides the directory holding the configuration files.
const ConfigDirEnv = "NTRO_CONFIG_DIR"

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// configDirMode is the permission mode of a created configuration directory.
const configDirMode os.FileMode = 0o700

// userDir returns the ntro subdirectory of the first base directory that
// can be determined, or a dot directory in the working directory.
func userDir(bases ...func() (string, error)) string {
	for _, base := range bases {
		if dir, err := base(); err == nil && dir != "" {
			return filepath.Join(dir, pkg.Name)
		}
	}

	return "." + pkg.Name
}

// homeSub returns a base directory function for sub in the home directory.
func homeSub(sub string) func() (string, error) {
	return func() (string, error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		return filepath.Join(home, sub), nil
	}
}

// configDir returns the directory of config.json and config.yaml:
// $NTRO_CONFIG_DIR if set, otherwise ntro in the user configuration
// directory.
func configDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}

	return userDir(os.UserConfigDir, homeSub(".config"))
}

// cacheDir returns the directory for transient files such as profiles.
// It is created by whatever writes to it.
func cacheDir() string {
	return userDir(os.UserCacheDir, homeSub(".cache"))
}

// configFile returns the path of the configuration file with extension ext.
func configFile(ext string) string {
	return filepath.Join(configDir(), baseConfig+ext)
}

// mkdirConfig creates the configuration directory so that init can write to
// it and the configuration loaders find it.
func mkdirConfig() error {
	return os.MkdirAll(configDir(), configDirMode)
}
