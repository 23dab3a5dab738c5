// Package preview projects a template aggregate into the rendered row and
// column matrix an operator reviews before publishing. Rendering derives
// everything on demand and never mutates the template.
package preview

import (
	"sort"

	"paydoc-studio/internal/derive"
	"paydoc-studio/internal/model"
	"paydoc-studio/internal/registry"
)

// unknownField is the placeholder a SystemField renders as when its id no
// longer resolves in the registry. A resolution miss degrades the single
// cell, never the whole render.
const unknownField = "Unknown field"

// SampleData carries the simulated input rows a render is previewed
// against. Row-oriented kinds ignore it; the bank-disbursal kind renders one
// output row per entry (or a single implicit row when empty).
type SampleData struct {
	Rows []RowOverride `json:"rows"`
}

// RowOverride overrides specific fields for one simulated employee row.
// Only the targeted field of the targeted row changes; every other cell
// falls back to the component's own sample value.
type RowOverride struct {
	Fields map[string]string `json:"fields"`
}

// HeaderField is one resolved identity field of the rendered header block.
type HeaderField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// HeaderBlock is the rendered header/branding area.
type HeaderBlock struct {
	Title        string        `json:"title"`
	LogoPosition string        `json:"logo_position"`
	Fields       []HeaderField `json:"fields"`
}

// RowGroup is one section's rendered rows, in item order.
type RowGroup struct {
	Role  model.SectionRole `json:"role"`
	Title string            `json:"title"`
	Rows  [][]string        `json:"rows"`
}

// TotalLine is one derived summary value.
type TotalLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is the rendered document matrix.
type Table struct {
	Header  HeaderBlock `json:"header"`
	Columns []string    `json:"columns"`
	Groups  []RowGroup  `json:"groups,omitempty"`
	Rows    [][]string  `json:"rows,omitempty"`
	Totals  []TotalLine `json:"totals,omitempty"`
}

// Projector renders templates against the system-field registry.
type Projector struct {
	registry *registry.Registry
}

// NewProjector creates a projector backed by the given registry.
func NewProjector(reg *registry.Registry) *Projector {
	return &Projector{registry: reg}
}

// Render produces the preview table for a template. Excluded components
// appear in no row and no derived total; settings toggles only ever add
// columns or rows, never remove or reorder existing ones.
func (p *Projector) Render(tpl model.Template, sample SampleData) Table {
	table := Table{Header: p.renderHeader(tpl)}

	if tpl.Kind == model.KindBankAdvice {
		p.renderBankRows(tpl, sample, &table)
		return table
	}

	p.renderRowGroups(tpl, &table)
	return table
}

func (p *Projector) renderHeader(tpl model.Template) HeaderBlock {
	block := HeaderBlock{
		Title:        tpl.Header.DocumentTitle,
		LogoPosition: string(tpl.Header.LogoPosition),
	}

	// Deterministic field order regardless of map iteration.
	ids := make([]string, 0, len(tpl.Header.VisibilityFlags))
	for id, visible := range tpl.Header.VisibilityFlags {
		if visible {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		if f, ok := p.registry.Resolve(id); ok {
			block.Fields = append(block.Fields, HeaderField{Label: f.Label, Value: f.Sample})
		} else {
			block.Fields = append(block.Fields, HeaderField{Label: id, Value: unknownField})
		}
	}
	return block
}

// renderRowGroups fills the table for the row-oriented kinds: one group per
// section, rows per included component, derived totals underneath.
func (p *Projector) renderRowGroups(tpl model.Template, table *Table) {
	set := tpl.Settings

	// Base columns first; toggles append, strictly additively.
	table.Columns = []string{"Particulars", "Amount"}
	if set.ShowMonthly {
		table.Columns = append(table.Columns, "Monthly")
	}
	if set.ShowYTD {
		table.Columns = append(table.Columns, "YTD")
	}
	if set.ShowPercentage {
		table.Columns = append(table.Columns, "% of Total")
	}

	// The percentage denominator is fixed once per render so rows share one
	// base and rounding drift cannot push the column past 100.
	grand := derive.GrandTotal(tpl)

	for _, sec := range tpl.Sections {
		group := RowGroup{Role: sec.Role, Title: roleTitle(sec.Role), Rows: [][]string{}}
		for _, c := range sec.Items {
			if !c.Included {
				continue
			}
			amount := derive.ParseAmount(c.Amount)
			row := []string{p.componentLabel(c), derive.FormatAmount(amount, set.AmountFormat)}
			if set.ShowMonthly {
				row = append(row, derive.FormatAmount(derive.MonthlyProjection(amount), set.AmountFormat))
			}
			if set.ShowYTD {
				row = append(row, derive.FormatAmount(derive.YearToDate(amount, set.MonthsElapsed), set.AmountFormat))
			}
			if set.ShowPercentage {
				row = append(row, derive.PercentageOfTotal(amount, grand).StringFixed(1))
			}
			group.Rows = append(group.Rows, row)
		}
		if len(group.Rows) == 0 {
			// A section with nothing included contributes no rendered rows.
			continue
		}
		table.Groups = append(table.Groups, group)
		table.Totals = append(table.Totals, TotalLine{
			Label: "Total " + roleTitle(sec.Role),
			Value: derive.FormatAmount(derive.SectionTotal(sec), set.AmountFormat),
		})
	}

	if set.IncludeEmployerContribution {
		table.Totals = append(table.Totals, TotalLine{
			Label: "Employer Contribution",
			Value: derive.FormatAmount(derive.ParseAmount(set.EmployerContribution), set.AmountFormat),
		})
	}

	earnings := tpl.Section(model.RoleEarnings)
	deductions := tpl.Section(model.RoleDeductions)
	if earnings != nil && deductions != nil {
		table.Totals = append(table.Totals, TotalLine{
			Label: "Net Payable",
			Value: derive.FormatAmount(derive.NetPayable(earnings, deductions, set), set.AmountFormat),
		})
	} else if !grand.IsZero() {
		table.Totals = append(table.Totals, TotalLine{
			Label: "Total Annual Cost",
			Value: derive.FormatAmount(grand, set.AmountFormat),
		})
	}
}

// renderBankRows fills the table for the bank-disbursal kind: included
// columns across, one row per simulated employee.
func (p *Projector) renderBankRows(tpl model.Template, sample SampleData, table *Table) {
	cols := tpl.Section(model.RoleBankColumns)
	if cols == nil {
		return
	}

	included := make([]model.Component, 0, len(cols.Items))
	for _, c := range cols.Items {
		if c.Included {
			included = append(included, c)
		}
	}
	for _, c := range included {
		table.Columns = append(table.Columns, p.componentLabel(c))
	}

	rows := sample.Rows
	if len(rows) == 0 {
		rows = []RowOverride{{}}
	}

	for _, override := range rows {
		row := make([]string, 0, len(included))
		for _, c := range included {
			row = append(row, p.bankCell(c, override))
		}
		table.Rows = append(table.Rows, row)
	}
}

// bankCell resolves one cell: the row's override for the component's field
// wins; otherwise the component's own sample value.
func (p *Projector) bankCell(c model.Component, override RowOverride) string {
	if c.Source.Kind == model.SourceSystemField {
		if v, ok := override.Fields[c.Source.FieldID]; ok {
			return v
		}
	}
	if c.Amount != "" {
		return c.Amount
	}
	switch c.Source.Kind {
	case model.SourceFixedValue:
		return c.Source.Literal
	case model.SourceSystemField:
		if f, ok := p.registry.Resolve(c.Source.FieldID); ok {
			return f.Sample
		}
		return unknownField
	default:
		return ""
	}
}

// componentLabel picks the rendered label: the operator's display name when
// set, the registry label otherwise, degrading to the unknown placeholder
// when the field no longer resolves.
func (p *Projector) componentLabel(c model.Component) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	if c.Source.Kind == model.SourceSystemField {
		if f, ok := p.registry.Resolve(c.Source.FieldID); ok {
			return f.Label
		}
		return unknownField
	}
	return c.Source.Literal
}

func roleTitle(role model.SectionRole) string {
	switch role {
	case model.RoleEarnings:
		return "Earnings"
	case model.RoleDeductions:
		return "Deductions"
	case model.RoleReimbursements:
		return "Reimbursements"
	case model.RoleRetirals:
		return "Retirals"
	case model.RoleSummary:
		return "Summary"
	case model.RoleBankColumns:
		return "Bank Columns"
	default:
		return string(role)
	}
}
