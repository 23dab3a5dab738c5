package manager

import "paydoc-studio/internal/model"

// Preset is a named, kind-specific component structure. Applying one is
// destructive: it replaces the entire contents of every section it covers,
// discarding prior edits to those sections.
type Preset struct {
	Name     string
	Kind     model.DocumentKind
	Sections map[model.SectionRole][]model.Component
}

// presetCatalog builds the preset list for a kind. Components are
// constructed at call time so every application hands out fresh ids.
func presetCatalog(kind model.DocumentKind) []Preset {
	switch kind {
	case model.KindPayslip:
		return []Preset{{
			Name: "Standard Structure",
			Kind: kind,
			Sections: map[model.SectionRole][]model.Component{
				model.RoleEarnings: {
					model.NewSystemFieldComponent("basic", "Basic", "30000"),
					model.NewSystemFieldComponent("hra", "House Rent Allowance", "12000"),
					model.NewSystemFieldComponent("conveyance", "Conveyance Allowance", "1600"),
					model.NewSystemFieldComponent("special", "Special Allowance", "8400"),
				},
				model.RoleDeductions: {
					model.NewSystemFieldComponent("pf_employee", "Provident Fund", "1800"),
					model.NewSystemFieldComponent("professional_tax", "Professional Tax", "200"),
					model.NewSystemFieldComponent("income_tax", "Income Tax (TDS)", "2500"),
				},
			},
		}}
	case model.KindSettlement:
		return []Preset{{
			Name: "Full & Final",
			Kind: kind,
			Sections: map[model.SectionRole][]model.Component{
				model.RoleEarnings: {
					model.NewSystemFieldComponent("basic", "Basic (Pro-rated)", "15000"),
					model.NewSystemFieldComponent("leave_encashment", "Leave Encashment", "10384"),
				},
				model.RoleDeductions: {
					model.NewSystemFieldComponent("notice_pay", "Notice Pay Recovery", "0"),
					model.NewSystemFieldComponent("income_tax", "Income Tax (TDS)", "2500"),
				},
			},
		}}
	case model.KindAnnexure:
		return []Preset{{
			Name: "Standard IT Structure",
			Kind: kind,
			Sections: map[model.SectionRole][]model.Component{
				model.RoleEarnings: {
					model.NewSystemFieldComponent("basic", "Basic", "360000"),
					model.NewSystemFieldComponent("hra", "House Rent Allowance", "144000"),
					model.NewSystemFieldComponent("lta", "Leave Travel Allowance", "30000"),
					model.NewSystemFieldComponent("special", "Special Allowance", "100800"),
				},
				model.RoleRetirals: {
					model.NewSystemFieldComponent("pf_employer", "Provident Fund (Employer)", "21600"),
					model.NewSystemFieldComponent("gratuity", "Gratuity", "17316"),
				},
			},
		}}
	case model.KindBankAdvice:
		return []Preset{{
			Name: "Standard NEFT Columns",
			Kind: kind,
			Sections: map[model.SectionRole][]model.Component{
				model.RoleBankColumns: {
					model.NewSystemFieldComponent("employee_name", "Beneficiary Name", ""),
					model.NewSystemFieldComponent("bank_account", "Account Number", ""),
					model.NewSystemFieldComponent("ifsc_code", "IFSC", ""),
					model.NewSystemFieldComponent("net_amount", "Amount", "52400"),
					model.NewSystemFieldComponent("payment_mode", "Mode", ""),
				},
			},
		}}
	default:
		return nil
	}
}

// PresetNames lists the preset names available for a kind.
func PresetNames(kind model.DocumentKind) []string {
	presets := presetCatalog(kind)
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

func findPreset(kind model.DocumentKind, name string) (Preset, bool) {
	for _, p := range presetCatalog(kind) {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
