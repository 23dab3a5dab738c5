package model

import (
	"fmt"

	"paydoc-studio/pkg/order"
)

// SectionRole tags a section with its meaning within the document.
type SectionRole string

const (
	RoleEarnings       SectionRole = "earnings"
	RoleDeductions     SectionRole = "deductions"
	RoleReimbursements SectionRole = "reimbursements"
	RoleRetirals       SectionRole = "retirals"
	RoleSummary        SectionRole = "summary"
	RoleBankColumns    SectionRole = "bank_columns"
)

// IsAllowedSectionRole reports whether r belongs to the closed role set.
func IsAllowedSectionRole(r SectionRole) bool {
	switch r {
	case RoleEarnings, RoleDeductions, RoleReimbursements, RoleRetirals, RoleSummary, RoleBankColumns:
		return true
	default:
		return false
	}
}

// Section is a role-tagged ordered collection of components. Item order is
// the rendered row/column order and is preserved exactly by every operation
// except an explicit Reorder.
type Section struct {
	Role  SectionRole `json:"role"`
	Items []Component `json:"items"`
}

// Add appends a component to the end of the section.
func (s *Section) Add(c Component) {
	s.Items = append(s.Items, c)
}

// Find returns a pointer to the component with the given id, or nil.
func (s *Section) Find(id string) *Component {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// Remove deletes the component with the given id. No tombstone is kept.
// It reports whether a component was removed.
func (s *Section) Remove(id string) bool {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Rename updates the display name of the component with the given id.
// The component's id and position are untouched.
func (s *Section) Rename(id, displayName string) bool {
	c := s.Find(id)
	if c == nil {
		return false
	}
	c.DisplayName = displayName
	return true
}

// SetIncluded toggles a component's inclusion flag. An excluded component
// stays at its index for later re-inclusion; it just stops contributing to
// derived totals and rendered output.
func (s *Section) SetIncluded(id string, included bool) bool {
	c := s.Find(id)
	if c == nil {
		return false
	}
	c.Included = included
	return true
}

// Reorder moves the item at from to position to, preserving every other
// item's relative order.
func (s *Section) Reorder(from, to int) error {
	items, err := order.Move(s.Items, from, to)
	if err != nil {
		return fmt.Errorf("reorder %s section: %w", s.Role, err)
	}
	s.Items = items
	return nil
}

// IncludedCount returns the number of included components in the section.
func (s Section) IncludedCount() int {
	n := 0
	for _, c := range s.Items {
		if c.Included {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	items := make([]Component, len(s.Items))
	copy(items, s.Items)
	return Section{Role: s.Role, Items: items}
}
