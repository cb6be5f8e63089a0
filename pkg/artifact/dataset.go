// Package artifact persists the crawl output: the dataset file consumed by the front
// end and the optional debug snapshots.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"shopscan/internal/models"
)

// WriteDataset writes shops as an indented JSON array. The file is replaced
// atomically, so readers never observe a partial dataset.
func WriteDataset(path string, shops []models.Shop) error {
	if shops == nil {
		shops = []models.Shop{}
	}

	data, err := Marshal(shops)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Marshal encodes shops the way WriteDataset stores them: two-space indent and
// no HTML escaping.
func Marshal(shops []models.Shop) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(shops); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadDataset loads a dataset written by WriteDataset.
func ReadDataset(path string) ([]models.Shop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	var shops []models.Shop
	if err := json.Unmarshal(data, &shops); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return shops, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
