package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds the dictionary and config files relative to the
// binary, the working directory and the user config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordsift")
		}
		return filepath.Join(homeDir, ".config", "wordsift")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordsift")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordsift")
	default:
		return filepath.Join(homeDir, ".config", "wordsift")
	}
}

// ResolveDataFile locates a dictionary file. Candidates, in order:
//  1. the path itself when absolute or present relative to the working dir
//  2. relative to the executable directory
//  3. the executable's data/ dir, its parent's data/ dir and the config data/ dir
//
// When nothing exists the path is returned unchanged so the caller reports it.
func (pr *PathResolver) ResolveDataFile(userPath string) string {
	for _, path := range pr.dataCandidates(userPath) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			log.Debugf("Found dictionary file: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not found: %s", path)
	}
	return userPath
}

func (pr *PathResolver) dataCandidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}
	base := filepath.Base(userPath)
	return []string{
		userPath,
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.executableDir, "data", base),
		filepath.Join(filepath.Dir(pr.executableDir), "data", base),
		filepath.Join(pr.configDir, "data", base),
	}
}

// GetConfigPath returns the full path for a config file
// It ensures the config directory exists and falls back when it is read-only
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureConfigDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, ".wordsift"),
		filepath.Join(os.TempDir(), "wordsift"),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureConfigDir creates the directory if it doesn't exist and tests writability
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, err)
		return false
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Config directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}
