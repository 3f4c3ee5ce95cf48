package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~" or "~user" to that user's home directory
// and makes the result absolute. An unknown user leaves the path as given.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		name, rest := path[1:], ""
		if i := strings.IndexAny(name, `/`+string(filepath.Separator)); i >= 0 {
			name, rest = name[:i], name[i:]
		}
		home, err := homeDir(name)
		if err != nil {
			return "", fmt.Errorf("cannot expand %s: %w", path, err)
		}
		if home != "" {
			path = filepath.Join(home, rest)
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", path, err)
	}
	return abs, nil
}

// homeDir returns the home directory of name, or of the current user when
// name is empty. It returns "" for a user that does not exist.
func homeDir(name string) (string, error) {
	if name == "" {
		return os.UserHomeDir()
	}
	u, err := user.Lookup(name)
	if err != nil {
		var unknown user.UnknownUserError
		if errors.As(err, &unknown) {
			return "", nil
		}
		return "", err
	}
	return u.HomeDir, nil
}

// IsDirectory reports an error unless path exists and is a directory.
func IsDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// IsFile reports an error unless path exists and is a regular file.
func IsFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a file", path)
	}
	return nil
}

// ResolveDirectory expands path and checks that it names a directory.
func ResolveDirectory(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%q is not a directory", path)
	}
	abs, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if err := IsDirectory(abs); err != nil {
		return "", fmt.Errorf("%s is not a directory", path)
	}
	return abs, nil
}

// ResolveFile expands path and checks that it names a regular file.
func ResolveFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%q is not a file", path)
	}
	abs, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if err := IsFile(abs); err != nil {
		return "", fmt.Errorf("%s is not a file", path)
	}
	return abs, nil
}
