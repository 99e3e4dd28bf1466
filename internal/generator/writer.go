package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vanshika/aquafund/internal/catalog"
)

// WriteFixtures serializes the overlay as YAML at path, creating parent directories.
func WriteFixtures(file catalog.File, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer out.Close()

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("encode yaml for %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("flush yaml for %s: %w", path, err)
	}
	return nil
}
