package storage

import "paydoc-studio/internal/model"

// TemplateStore defines the persistence collaborator for template
// collections. Each document kind persists under its own namespace, and a
// save always writes the namespace's entire collection, never a single
// record. This allows swapping implementations (JSON files vs. a database)
// later.
type TemplateStore interface {
	// Load retrieves the collection persisted under the namespace. The
	// second return is false when the namespace has never been written;
	// callers treat that identically to an empty collection seeded with the
	// kind's built-in defaults.
	Load(namespace string) ([]model.Template, bool, error)

	// Save persists the entire collection for the namespace, replacing
	// whatever was there before.
	Save(namespace string, templates []model.Template) error

	// BasePath returns the storage base path.
	BasePath() string
}
