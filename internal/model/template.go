package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the template lifecycle state. The machine is two-state and
// non-hierarchical: both states are freely reachable from either, via an
// explicit save-with-status, provided the validation gate passes.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPublished Status = "Published"
)

// IsAllowedStatus reports whether s belongs to the closed status set.
func IsAllowedStatus(s Status) bool {
	return s == StatusDraft || s == StatusPublished
}

// Template is the aggregate root: the full definition of one document
// layout. It exclusively owns its sections, settings and header config; the
// persisted per-kind collections of templates are the only process-wide
// state.
type Template struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Kind   DocumentKind `json:"kind"`
	Status Status       `json:"status"`

	// IsActive governs whether a bank-disbursal layout is eligible for use,
	// independent of publish status. Ignored for other kinds.
	IsActive bool `json:"is_active,omitempty"`

	CreatedBy     string    `json:"created_by"`
	LastUpdatedBy string    `json:"last_updated_by"`
	LastModified  time.Time `json:"last_modified"`

	Sections []Section    `json:"sections"`
	Settings Settings     `json:"settings"`
	Header   HeaderConfig `json:"header"`
}

// NewTemplate returns a fresh Draft template with the kind's factory
// defaults: empty default sections, default settings and header. The value
// lives in memory only until its first successful save.
func NewTemplate(kind DocumentKind, name, createdBy string, now time.Time) Template {
	cfg := kind.Config()

	sections := make([]Section, 0, len(cfg.DefaultSections))
	for _, role := range cfg.DefaultSections {
		sections = append(sections, Section{Role: role, Items: []Component{}})
	}

	return Template{
		ID:            uuid.New().String(),
		Name:          name,
		Kind:          kind,
		Status:        StatusDraft,
		IsActive:      cfg.HasActiveFlag,
		CreatedBy:     createdBy,
		LastUpdatedBy: createdBy,
		LastModified:  now,
		Sections:      sections,
		Settings:      cfg.DefaultSettings,
		Header:        cfg.DefaultHeader.Clone(),
	}
}

// Section returns a pointer to the section with the given role, or nil when
// the template has no such section.
func (t *Template) Section(role SectionRole) *Section {
	for i := range t.Sections {
		if t.Sections[i].Role == role {
			return &t.Sections[i]
		}
	}
	return nil
}

// IncludedTotal returns the number of included components across every
// section of the template.
func (t Template) IncludedTotal() int {
	n := 0
	for _, s := range t.Sections {
		n += s.IncludedCount()
	}
	return n
}

// Clone returns a deep copy of the template. Commands that replace section
// contents (presets) and the preview projector work on clones so the
// caller's value is never mutated behind its back.
func (t Template) Clone() Template {
	out := t
	out.Sections = make([]Section, len(t.Sections))
	for i, s := range t.Sections {
		out.Sections[i] = s.Clone()
	}
	out.Header = t.Header.Clone()
	return out
}
