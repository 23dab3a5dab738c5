package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"paydoc-studio/internal/model"
)

// JSONStore implements TemplateStore using one JSON file per namespace.
type JSONStore struct {
	basePath string
}

// NewJSONStore creates a JSONStore rooted at basePath, creating the
// directory if needed.
func NewJSONStore(basePath string) (*JSONStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory '%s': %w", basePath, err)
	}
	return &JSONStore{basePath: basePath}, nil
}

// BasePath returns the base path of the JSON store.
func (js *JSONStore) BasePath() string {
	return js.basePath
}

func (js *JSONStore) filePath(namespace string) string {
	return filepath.Join(js.basePath, namespace+".json")
}

// Load retrieves the collection for a namespace. A missing file is not an
// error; it reports found == false.
func (js *JSONStore) Load(namespace string) ([]model.Template, bool, error) {
	if namespace == "" {
		return nil, false, fmt.Errorf("namespace cannot be empty")
	}

	data, err := os.ReadFile(js.filePath(namespace))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read collection file for %s: %w", namespace, err)
	}

	var templates []model.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal collection for %s: %w", namespace, err)
	}
	return templates, true, nil
}

// Save writes the entire collection for a namespace. The write goes through
// a temp file and a rename so a crash cannot leave a half-written
// collection behind.
func (js *JSONStore) Save(namespace string, templates []model.Template) error {
	if namespace == "" {
		return fmt.Errorf("namespace cannot be empty")
	}

	// Use MarshalIndent for readable JSON files.
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection for %s: %w", namespace, err)
	}

	target := js.filePath(namespace)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write collection file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace collection file %s: %w", target, err)
	}
	return nil
}
