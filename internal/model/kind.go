package model

// DocumentKind is the closed set of payroll document kinds sharing the
// template model. Per-kind variation lives in the config table below, not in
// parallel implementations.
type DocumentKind string

const (
	KindPayslip    DocumentKind = "payslip"
	KindSettlement DocumentKind = "settlement"
	KindAnnexure   DocumentKind = "annexure"
	KindBankAdvice DocumentKind = "bank_advice"
)

// Kinds lists every document kind in a stable order.
func Kinds() []DocumentKind {
	return []DocumentKind{KindPayslip, KindSettlement, KindAnnexure, KindBankAdvice}
}

// IsAllowedDocumentKind reports whether k belongs to the closed kind set.
func IsAllowedDocumentKind(k DocumentKind) bool {
	switch k {
	case KindPayslip, KindSettlement, KindAnnexure, KindBankAdvice:
		return true
	default:
		return false
	}
}

// KindConfig fixes everything that varies per document kind: the default
// section set, the sections that must hold at least one included component
// before a save completes, the denominator sections for the percentage
// column, and the factory defaults for a fresh template.
type KindConfig struct {
	// DefaultSections are seeded, empty, into every new template.
	DefaultSections []SectionRole

	// MandatorySections each require at least one included component before
	// either lifecycle transition. An empty list means the rule applies to
	// the template as a whole: at least one included component anywhere.
	MandatorySections []SectionRole

	// GrandTotalRoles are summed once per render to form the fixed
	// percentage denominator. Empty when the kind has no percentage column.
	GrandTotalRoles []SectionRole

	// DefaultSettings and DefaultHeader are the factory values for a new
	// template; the operator cannot change them before first save.
	DefaultSettings Settings
	DefaultHeader   HeaderConfig

	// DefaultTemplateName names the built-in template seeded when a kind's
	// namespace is absent from the store.
	DefaultTemplateName string

	// HasActiveFlag marks kinds whose templates carry the eligibility
	// toggle independent of publish status (bank disbursal layouts).
	HasActiveFlag bool
}

var kindConfigs = map[DocumentKind]KindConfig{
	KindPayslip: {
		DefaultSections:   []SectionRole{RoleEarnings, RoleDeductions, RoleReimbursements},
		MandatorySections: []SectionRole{RoleEarnings, RoleDeductions},
		GrandTotalRoles:   []SectionRole{RoleEarnings},
		DefaultSettings: Settings{
			MonthsElapsed: 1,
			AmountFormat:  AmountFormatIndian,
			DateFormat:    "02/01/2006",
		},
		DefaultHeader: HeaderConfig{
			LogoPosition:  LogoLeft,
			DocumentTitle: "Payslip",
			VisibilityFlags: map[string]bool{
				"employee_name":   true,
				"employee_id":     true,
				"designation":     true,
				"department":      true,
				"date_of_joining": true,
				"pan":             false,
				"bank_account":    false,
			},
		},
		DefaultTemplateName: "Default Payslip",
	},
	KindSettlement: {
		DefaultSections:   []SectionRole{RoleEarnings, RoleDeductions, RoleSummary},
		MandatorySections: []SectionRole{RoleEarnings},
		GrandTotalRoles:   []SectionRole{RoleEarnings},
		DefaultSettings: Settings{
			MonthsElapsed: 1,
			AmountFormat:  AmountFormatIndian,
			DateFormat:    "02/01/2006",
		},
		DefaultHeader: HeaderConfig{
			LogoPosition:  LogoLeft,
			DocumentTitle: "Full & Final Settlement Statement",
			VisibilityFlags: map[string]bool{
				"employee_name":   true,
				"employee_id":     true,
				"designation":     true,
				"date_of_joining": true,
				"date_of_leaving": true,
			},
		},
		DefaultTemplateName: "Default Settlement Statement",
	},
	KindAnnexure: {
		DefaultSections:   []SectionRole{RoleEarnings, RoleRetirals},
		MandatorySections: []SectionRole{RoleEarnings},
		// Total annual cost: fixed earnings plus employer retirals.
		GrandTotalRoles: []SectionRole{RoleEarnings, RoleRetirals},
		DefaultSettings: Settings{
			MonthsElapsed:  1,
			ShowMonthly:    true,
			ShowPercentage: true,
			AmountFormat:   AmountFormatIndian,
			DateFormat:     "02/01/2006",
		},
		DefaultHeader: HeaderConfig{
			LogoPosition:  LogoCenter,
			DocumentTitle: "Compensation Annexure",
			VisibilityFlags: map[string]bool{
				"employee_name": true,
				"employee_id":   true,
				"designation":   true,
			},
		},
		DefaultTemplateName: "Default Compensation Annexure",
	},
	KindBankAdvice: {
		DefaultSections: []SectionRole{RoleBankColumns},
		// No designated section: any included column satisfies the gate.
		MandatorySections: nil,
		GrandTotalRoles:   nil,
		DefaultSettings: Settings{
			MonthsElapsed: 1,
			AmountFormat:  AmountFormatPlain,
			DateFormat:    "02/01/2006",
		},
		DefaultHeader: HeaderConfig{
			LogoPosition:  LogoLeft,
			DocumentTitle: "Bank Disbursal Advice",
			VisibilityFlags: map[string]bool{
				"company_name": true,
			},
		},
		DefaultTemplateName: "Default Bank Advice Layout",
		HasActiveFlag:       true,
	},
}

// Config returns the kind's configuration table entry. Unknown kinds return
// the zero value; callers validate kinds at the boundary with
// IsAllowedDocumentKind.
func (k DocumentKind) Config() KindConfig {
	return kindConfigs[k]
}
