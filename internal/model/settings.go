package model

// AmountFormat selects the fixed grouping strategy used when rendering
// amounts. This is not a pluggable locale engine; the closed set below is
// the whole story.
type AmountFormat string

const (
	AmountFormatPlain         AmountFormat = "plain"
	AmountFormatIndian        AmountFormat = "indian"
	AmountFormatInternational AmountFormat = "international"
)

// IsAllowedAmountFormat reports whether f belongs to the closed format set.
func IsAllowedAmountFormat(f AmountFormat) bool {
	switch f {
	case AmountFormatPlain, AmountFormatIndian, AmountFormatInternational:
		return true
	default:
		return false
	}
}

// Settings is the closed set of per-template toggles. Every toggle's effect
// is realized in the preview projector and the persisted aggregate; toggles
// never mutate section contents.
type Settings struct {
	// ShowYTD adds a year-to-date column; MonthsElapsed is the preview
	// constant it multiplies by (there is no calendar engine here).
	ShowYTD       bool `json:"show_ytd"`
	MonthsElapsed int  `json:"months_elapsed"`

	// ShowMonthly adds a monthly column alongside the annual one.
	ShowMonthly bool `json:"show_monthly"`

	// ShowPercentage adds a percent-of-total column against the document
	// kind's fixed grand-total denominator.
	ShowPercentage bool `json:"show_percentage"`

	// IncludeEmployerContribution folds the side-channel employer amount
	// into net payable and renders it as a summary line. The contribution
	// is a fixed amount, not itself a component.
	IncludeEmployerContribution bool   `json:"include_employer_contribution"`
	EmployerContribution        string `json:"employer_contribution,omitempty"`

	// PasswordProtect marks the emitted document for protection downstream;
	// PasswordRule names the derived-password recipe (e.g. "PAN+DOB") as an
	// opaque parameter. No crypto happens in this core.
	PasswordProtect bool   `json:"password_protect"`
	PasswordRule    string `json:"password_rule,omitempty"`

	AmountFormat AmountFormat `json:"amount_format"`
	DateFormat   string       `json:"date_format"`
}
