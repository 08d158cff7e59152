package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const settingsKeyOutputRoot = "output_root"

// SettingsPath returns the path to the persisted settings file:
// $XDG_CONFIG_HOME/sentinel/settings.ini.
func SettingsPath() string {
	return filepath.Join(xdg.ConfigHome, "sentinel", "settings.ini")
}

// LoadOutputRoot resolves the effective output root: SENTINEL_ROOT
// overrides everything; otherwise the persisted setting is read; a
// caller-supplied fallback applies when neither is present.
func LoadOutputRoot(fallback string) (string, error) {
	if v := os.Getenv("SENTINEL_ROOT"); v != "" {
		return v, nil
	}

	path := SettingsPath()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fallback, nil
		}
		return "", fmt.Errorf("open settings file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == settingsKeyOutputRoot {
			return strings.TrimSpace(val), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read settings file: %w", err)
	}

	return fallback, nil
}

// SaveOutputRoot persists root to the settings file atomically: a
// temp file is written first and renamed into place, falling back to a
// remove-then-rename if the platform rejects renaming onto an existing
// file.
func SaveOutputRoot(root string) error {
	path := SettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp := path + ".tmp"
	body := fmt.Sprintf("%s=%s\n", settingsKeyOutputRoot, root)
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write temp settings file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(path); rmErr == nil {
			if err := os.Rename(tmp, path); err != nil {
				return fmt.Errorf("rename settings file after removal: %w", err)
			}
			return nil
		}
		return fmt.Errorf("rename settings file: %w", err)
	}
	return nil
}
