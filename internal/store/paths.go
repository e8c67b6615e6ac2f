// Package store is the boundary-level persistent cache: solved
// programs keyed by puzzle id, backed by BadgerDB the same way the
// teacher's internal/storage package backs user preferences and game
// statistics.
package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "robozzle-solver"

// homeSubdir joins the user's home directory with the given segments,
// used as the fallback base dir on every platform when the
// platform-preferred environment variable isn't set.
func homeSubdir(segments ...string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{homeDir}, segments...)...), nil
}

// baseDataDir picks the platform-preferred root for application data,
// independent of this solver's own app name or subdirectories.
func baseDataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return homeSubdir("Library", "Application Support")

	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return homeSubdir("AppData", "Roaming")

	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		return homeSubdir(".local", "share")
	}
}

// DataDir returns the platform-specific data directory this solver
// caches puzzles and solutions under, creating it if necessary.
//   - macOS: ~/Library/Application Support/robozzle-solver/
//   - Linux: ~/.local/share/robozzle-solver/ (or $XDG_DATA_HOME)
//   - Windows: %APPDATA%/robozzle-solver/
func DataDir() (string, error) {
	baseDir, err := baseDataDir()
	if err != nil {
		return "", err
	}
	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DatabaseDir returns the subdirectory of DataDir that BadgerDB keeps
// its solution-cache files in.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
