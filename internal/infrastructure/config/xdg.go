package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "sitestyle"
	databaseName = "sitestyle.db"
	endpointName = "endpoint"
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome  string
	DataHome    string
	StateHome   string
	RuntimeHome string
}

// GetXDGDirs returns the XDG Base Directory paths for sitestyle:
// - $XDG_CONFIG_HOME/sitestyle (default: ~/.config/sitestyle)
// - $XDG_DATA_HOME/sitestyle (default: ~/.local/share/sitestyle)
// - $XDG_STATE_HOME/sitestyle (default: ~/.local/state/sitestyle)
// - $XDG_RUNTIME_DIR/sitestyle (default: the OS temp dir)
func GetXDGDirs() (*XDGDirs, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{
			ConfigHome:  devDir,
			DataHome:    devDir,
			StateHome:   devDir,
			RuntimeHome: devDir,
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(homeDir, ".local", "state")
	}

	runtimeHome := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeHome == "" {
		runtimeHome = os.TempDir()
	}

	return &XDGDirs{
		ConfigHome:  filepath.Join(configHome, appName),
		DataHome:    filepath.Join(dataHome, appName),
		StateHome:   filepath.Join(stateHome, appName),
		RuntimeHome: filepath.Join(runtimeHome, appName),
	}, nil
}

// GetConfigDir returns the XDG config directory for sitestyle.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the XDG data directory for sitestyle.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// GetDatabaseFile returns the path to the settings database.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// GetLogDir returns the log directory. Logs are state, not data.
func GetLogDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.StateHome, "logs"), nil
}

// GetEndpointFile returns the file where `sitestyle run` publishes the
// DevTools URL of the browser it drives.
func GetEndpointFile() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.RuntimeHome, endpointName), nil
}

// EnsureDirectories creates the XDG directories if they don't exist.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}

	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}

// GetManDir returns the user man page directory, $XDG_DATA_HOME/man/man1.
func GetManDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dirs.DataHome), "man", "man1"), nil
}
