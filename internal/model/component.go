package model

import "github.com/google/uuid"

// SourceKind discriminates where a component's displayed value comes from.
type SourceKind string

const (
	// SourceSystemField resolves its label and sample value through the
	// system-field registry at render time.
	SourceSystemField SourceKind = "system_field"
	// SourceFixedValue carries its own literal.
	SourceFixedValue SourceKind = "fixed_value"
)

// ValueSource is the variant payload for a component's value origin.
// FieldID is set when Kind is SourceSystemField, Literal when SourceFixedValue.
type ValueSource struct {
	Kind    SourceKind `json:"kind"`
	FieldID string     `json:"field_id,omitempty"`
	Literal string     `json:"literal,omitempty"`
}

// Component is a single named line item within a document section: an
// earning, a deduction, a mapped bank column, and so on.
//
// Amount is a sample/preview value carried as a decimal string. It exists so
// the operator can review derived totals before publishing; it is never
// authoritative payroll output.
type Component struct {
	ID          string      `json:"id"`
	Source      ValueSource `json:"source"`
	DisplayName string      `json:"display_name"`
	Amount      string      `json:"amount,omitempty"`
	Included    bool        `json:"included"`
}

// NewSystemFieldComponent builds an included component backed by a registry
// field. The ID is a fresh UUID, unique even under rapid successive
// insertions, and stays stable across every later edit or reorder.
func NewSystemFieldComponent(fieldID, displayName, amount string) Component {
	return Component{
		ID:          uuid.New().String(),
		Source:      ValueSource{Kind: SourceSystemField, FieldID: fieldID},
		DisplayName: displayName,
		Amount:      amount,
		Included:    true,
	}
}

// NewFixedValueComponent builds an included component carrying its own
// literal value.
func NewFixedValueComponent(displayName, literal, amount string) Component {
	return Component{
		ID:          uuid.New().String(),
		Source:      ValueSource{Kind: SourceFixedValue, Literal: literal},
		DisplayName: displayName,
		Amount:      amount,
		Included:    true,
	}
}
