package figrender

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink resolves an output name to a writable file path.
// Implementations must not create directories.
type Sink interface {
	Resolve(name string) (string, error)
}

// PathSink uses names as file paths.
type PathSink struct{}

// Resolve checks that the parent directory of name exists.
func (PathSink) Resolve(name string) (string, error) {
	if err := checkParent(name); err != nil {
		return "", err
	}
	return name, nil
}

// DirSink places relative names under Root, typically a mounted drive.
type DirSink struct {
	Root string
}

// Resolve joins relative names to Root and checks the parent directory.
// Absolute names bypass Root.
func (s DirSink) Resolve(name string) (string, error) {
	path := name
	if !filepath.IsAbs(name) {
		if s.Root == "" {
			return "", fmt.Errorf("sink root not set")
		}
		info, err := os.Stat(s.Root)
		if err != nil {
			return "", fmt.Errorf("sink root unavailable: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("sink root %s is not a directory", s.Root)
		}
		path = filepath.Join(s.Root, name)
	}
	if err := checkParent(path); err != nil {
		return "", err
	}
	return path, nil
}

func checkParent(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
