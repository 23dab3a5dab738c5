package manager

import (
	"fmt"
	"strings"

	"paydoc-studio/internal/model"
)

// ValidationError is a recoverable, operator-facing rejection of a save.
// Nothing is persisted and no state changes when one is returned; the
// in-memory edit survives so the operator can correct it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// sectionMessages maps a mandatory section role to its rejection message.
var sectionMessages = map[model.SectionRole]string{
	model.RoleEarnings:   "At least one earning component must be included.",
	model.RoleDeductions: "At least one deduction component must be included.",
}

// validateForSave enforces the preconditions checked before either
// lifecycle transition completes.
func validateForSave(tpl model.Template) error {
	if strings.TrimSpace(tpl.Name) == "" {
		return &ValidationError{Message: "Template Name is required."}
	}

	mandatory := tpl.Kind.Config().MandatorySections
	if len(mandatory) == 0 {
		// No designated section: at least one included component overall.
		if tpl.IncludedTotal() == 0 {
			return &ValidationError{Message: "At least one column must be included."}
		}
		return nil
	}

	for _, role := range mandatory {
		sec := tpl.Section(role)
		if sec == nil || sec.IncludedCount() == 0 {
			msg, ok := sectionMessages[role]
			if !ok {
				msg = fmt.Sprintf("At least one %s component must be included.", role)
			}
			return &ValidationError{Message: msg}
		}
	}
	return nil
}
