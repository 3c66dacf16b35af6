package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirTarget writes reports into a local directory, creating it if needed.
// An existing file of the same name is replaced.
type DirTarget struct {
	Dir string
}

func (d DirTarget) Write(ctx context.Context, name string, data []byte, _ string) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", d.Dir, err)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
