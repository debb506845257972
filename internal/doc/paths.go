package doc

import (
	"os"
	"path/filepath"
	"strings"
)

// FileName is the save file dropped into a directory by local mode.
// Global mode keeps one under the home directory.
const FileName = ".knot"

// LocalPath is the save file of the current working directory.
func LocalPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, FileName), nil
}

// GlobalPath is the per-user save file.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// DefaultPath picks the save file for a command that names none: the
// KNOT_SAVE override if set, a local save if the working directory has
// one, the global save otherwise.
func DefaultPath() (string, error) {
	if v := strings.TrimSpace(os.Getenv("KNOT_SAVE")); v != "" {
		return v, nil
	}
	local, err := LocalPath()
	if err == nil && Exists(local) {
		return local, nil
	}
	return GlobalPath()
}

// Exists reports whether a save file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
