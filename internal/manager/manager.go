// Package manager owns the template aggregate lifecycle: hydrating per-kind
// collections from the persistence collaborator, creating drafts, applying
// presets, and the Draft/Published validation gate.
package manager

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"paydoc-studio/internal/model"
	"paydoc-studio/internal/storage"
)

var (
	ErrUnknownKind      = errors.New("unknown document kind")
	ErrUnknownPreset    = errors.New("unknown preset")
	ErrReadOnly         = errors.New("template is open in read-only mode")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoActiveFlag     = errors.New("document kind has no active flag")
)

// Manager encapsulates every operation on the persisted template
// collections. There is exactly one mutator (the operator session), so the
// manager needs no locking discipline; all operations run to completion
// within one call.
type Manager struct {
	store       storage.TemplateStore
	logger      *slog.Logger
	collections map[model.DocumentKind][]model.Template
	now         func() time.Time
}

// NewManager hydrates the per-kind collections from the store. A namespace
// that has never been written is treated as an empty collection seeded with
// the kind's built-in default template; the seed stays in memory until the
// first successful save writes the collection back.
func NewManager(store storage.TemplateStore, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		// Provide a default discard logger if none is provided
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{
		store:       store,
		logger:      logger,
		collections: make(map[model.DocumentKind][]model.Template),
		now:         time.Now,
	}

	for _, kind := range model.Kinds() {
		templates, found, err := store.Load(namespace(kind))
		if err != nil {
			return nil, fmt.Errorf("hydrating %s collection failed: %w", kind, err)
		}
		if !found {
			seed := m.buildDefaultTemplate(kind)
			templates = []model.Template{seed}
			m.logger.Info("Seeded built-in default template", "kind", kind, "name", seed.Name)
		}
		m.collections[kind] = templates
	}
	return m, nil
}

func namespace(kind model.DocumentKind) string {
	return string(kind)
}

// buildDefaultTemplate constructs the kind's built-in template: factory
// defaults plus the first catalog preset, so the seed passes the kind's own
// validation gate as-is.
func (m *Manager) buildDefaultTemplate(kind model.DocumentKind) model.Template {
	tpl := model.NewTemplate(kind, kind.Config().DefaultTemplateName, "system", m.now())
	if presets := presetCatalog(kind); len(presets) > 0 {
		tpl = applyPresetSections(tpl, presets[0])
	}
	return tpl
}

// Templates returns a copy of the persisted collection for a kind.
func (m *Manager) Templates(kind model.DocumentKind) ([]model.Template, error) {
	if !model.IsAllowedDocumentKind(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	col := m.collections[kind]
	out := make([]model.Template, len(col))
	for i, t := range col {
		out[i] = t.Clone()
	}
	return out, nil
}

// Get returns the template with the given id within a kind's collection.
func (m *Manager) Get(kind model.DocumentKind, id string) (model.Template, error) {
	if !model.IsAllowedDocumentKind(kind) {
		return model.Template{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	for _, t := range m.collections[kind] {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return model.Template{}, fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, kind, id)
}

// NewDraft returns a fresh Draft template with the kind's factory defaults.
// The value is not persisted; it lives with the edit session until the
// first successful save.
func (m *Manager) NewDraft(kind model.DocumentKind, createdBy string) (model.Template, error) {
	if !model.IsAllowedDocumentKind(kind) {
		return model.Template{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	tpl := model.NewTemplate(kind, "", createdBy, m.now())
	m.logger.Info("Created draft template", "kind", kind, "id", tpl.ID, "createdBy", createdBy)
	return tpl, nil
}

// ApplyPreset returns a new template value with the preset's sections
// replacing the template's matching sections wholesale. Prior edits to
// those sections are discarded; untouched sections survive. The operation
// is refused in read-only mode.
func (m *Manager) ApplyPreset(tpl model.Template, presetName string, readOnly bool) (model.Template, error) {
	if readOnly {
		return model.Template{}, ErrReadOnly
	}
	preset, ok := findPreset(tpl.Kind, presetName)
	if !ok {
		return model.Template{}, fmt.Errorf("%w: %q for kind %s", ErrUnknownPreset, presetName, tpl.Kind)
	}

	out := applyPresetSections(tpl, preset)
	m.logger.Info("Applied preset", "kind", tpl.Kind, "template", tpl.ID, "preset", presetName)
	return out, nil
}

func applyPresetSections(tpl model.Template, preset Preset) model.Template {
	out := tpl.Clone()
	for role, items := range preset.Sections {
		sec := out.Section(role)
		if sec == nil {
			// Kinds without the section in their default set gain it here.
			out.Sections = append(out.Sections, model.Section{Role: role})
			sec = out.Section(role)
		}
		sec.Items = make([]model.Component, len(items))
		copy(sec.Items, items)
	}
	return out
}

// ReorderSection returns a new template value with one component of the
// given section moved from one position to another.
func (m *Manager) ReorderSection(tpl model.Template, role model.SectionRole, from, to int) (model.Template, error) {
	out := tpl.Clone()
	sec := out.Section(role)
	if sec == nil {
		return model.Template{}, fmt.Errorf("template %s has no %s section", tpl.ID, role)
	}
	if err := sec.Reorder(from, to); err != nil {
		return model.Template{}, err
	}
	return out, nil
}

// Save runs the validation gate and, on success, sets the requested status,
// refreshes the audit fields, upserts the template by id into its kind's
// collection and persists the entire collection. On rejection nothing
// changes anywhere: not in memory, not in the store.
func (m *Manager) Save(tpl model.Template, target model.Status, updatedBy string) (model.Template, error) {
	if !model.IsAllowedDocumentKind(tpl.Kind) {
		return model.Template{}, fmt.Errorf("%w: %s", ErrUnknownKind, tpl.Kind)
	}
	if !model.IsAllowedStatus(target) {
		return model.Template{}, fmt.Errorf("unknown target status %q", target)
	}

	// 1. Validation gate — identical preconditions for both transitions.
	if err := validateForSave(tpl); err != nil {
		m.logger.Warn("Save rejected by validation gate", "kind", tpl.Kind, "template", tpl.ID, "error", err)
		return model.Template{}, err
	}

	// 2. Stamp the transition on a private copy.
	saved := tpl.Clone()
	saved.Status = target
	saved.LastUpdatedBy = updatedBy
	saved.LastModified = m.now()

	// 3. Upsert by id into a copy of the collection: replace when present,
	// insert when new.
	col := m.collections[tpl.Kind]
	next := make([]model.Template, len(col))
	copy(next, col)
	replaced := false
	for i := range next {
		if next[i].ID == saved.ID {
			next[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, saved)
	}

	// 4. Persist the whole collection; only then commit it in memory.
	if err := m.store.Save(namespace(tpl.Kind), next); err != nil {
		m.logger.Error("Persisting collection failed", "kind", tpl.Kind, "error", err)
		return model.Template{}, fmt.Errorf("persisting %s collection failed: %w", tpl.Kind, err)
	}
	m.collections[tpl.Kind] = next

	m.logger.Info("Saved template", "kind", tpl.Kind, "id", saved.ID, "status", saved.Status, "updatedBy", updatedBy)
	return saved, nil
}

// SetActive toggles a persisted bank-disbursal layout's eligibility flag,
// independent of its publish status. Kinds without the flag are refused.
func (m *Manager) SetActive(kind model.DocumentKind, id string, active bool, updatedBy string) (model.Template, error) {
	if !model.IsAllowedDocumentKind(kind) {
		return model.Template{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if !kind.Config().HasActiveFlag {
		return model.Template{}, fmt.Errorf("%w: %s", ErrNoActiveFlag, kind)
	}

	col := m.collections[kind]
	next := make([]model.Template, len(col))
	copy(next, col)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		updated := next[i].Clone()
		updated.IsActive = active
		updated.LastUpdatedBy = updatedBy
		updated.LastModified = m.now()
		next[i] = updated

		if err := m.store.Save(namespace(kind), next); err != nil {
			return model.Template{}, fmt.Errorf("persisting %s collection failed: %w", kind, err)
		}
		m.collections[kind] = next
		m.logger.Info("Toggled layout eligibility", "kind", kind, "id", id, "active", active)
		return updated, nil
	}
	return model.Template{}, fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, kind, id)
}

// Store returns the underlying TemplateStore instance.
func (m *Manager) Store() storage.TemplateStore {
	return m.store
}
