// Package persistence provides gob-based serialization helpers for the
// durable similarity index artifacts.
package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// SaveGob encodes the given object using gob and saves it to filePath,
// creating parent directories as needed.
func SaveGob(filePath string, object interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filePath, closeErr)
		}
	}()

	if err := gob.NewEncoder(file).Encode(object); err != nil {
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	return nil
}

// LoadGob decodes a gob-encoded file from filePath into the provided object
// pointer. A missing file is reported as os.ErrNotExist so callers can
// distinguish a fresh start from a corrupted artifact.
func LoadGob(filePath string, objectPointer interface{}) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filePath, closeErr)
		}
	}()

	if err := gob.NewDecoder(file).Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}
