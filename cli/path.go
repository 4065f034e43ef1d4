package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/callcheck/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the permission mode of created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the name of the configuration and cache directories.
//
// It is the base name of the executable without extension or leading dots,
// or [pkg.Name] for unnamed and debugger-built executables.
var basePrefix = sync.OnceValue(
	func() string {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}

		return executableID(exe)
	},
)

// executableID derives the directory name from an executable path.
func executableID(path string) string {
	id := strings.TrimLeft(filepath.Base(path), ".")
	id = strings.TrimSuffix(id, filepath.Ext(id))

	if id == "" || debugBin.MatchString(id) {
		return pkg.Name
	}

	return id
}

// debugBin matches the default output name of the dlv debugger.
var debugBin = regexp.MustCompile(`^__debug_bin\d*$`)

// userDir returns the per-user directory reported by base, falling back to
// fallback under the home directory, and finally to the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, basePrefix())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
