// Package derive computes the scalar values a rendered document shows
// alongside its components: section totals, net payable, fixed-denominator
// percentages and time-scaled projections. Everything here is a pure
// function of sections and settings; nothing is stored.
package derive

import (
	"strings"

	"github.com/shopspring/decimal"

	"paydoc-studio/internal/model"
)

var twelve = decimal.NewFromInt(12)

// ParseAmount parses a component amount carried as a locale-formatted
// decimal string. Thousands separators and surrounding whitespace are
// stripped; an empty or malformed amount contributes 0 to every derived
// computation rather than surfacing an error.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SectionTotal sums the amounts of the included components in a section.
// An empty section, or one with only excluded components, totals 0.
func SectionTotal(sec model.Section) decimal.Decimal {
	total := decimal.Zero
	for _, c := range sec.Items {
		if !c.Included {
			continue
		}
		total = total.Add(ParseAmount(c.Amount))
	}
	return total
}

// GrandTotal sums the included amounts across the template sections whose
// roles the document kind designates as the percentage denominator. The
// caller computes it once per render so rows share one fixed base.
func GrandTotal(tpl model.Template) decimal.Decimal {
	total := decimal.Zero
	for _, role := range tpl.Kind.Config().GrandTotalRoles {
		if sec := tpl.Section(role); sec != nil {
			total = total.Add(SectionTotal(*sec))
		}
	}
	return total
}

// NetPayable is earnings minus deductions, plus the employer-contribution
// side-channel amount when that setting is enabled. Either section pointer
// may be nil for kinds that lack it; a missing section contributes 0.
func NetPayable(earnings, deductions *model.Section, set model.Settings) decimal.Decimal {
	net := decimal.Zero
	if earnings != nil {
		net = net.Add(SectionTotal(*earnings))
	}
	if deductions != nil {
		net = net.Sub(SectionTotal(*deductions))
	}
	if set.IncludeEmployerContribution {
		net = net.Add(ParseAmount(set.EmployerContribution))
	}
	return net
}

// PercentageOfTotal returns amount as a percentage of grandTotal, rounded to
// one decimal place. Defined as 0 when the grand total is 0, so an empty
// document never divides by zero.
func PercentageOfTotal(amount, grandTotal decimal.Decimal) decimal.Decimal {
	if grandTotal.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(100)).DivRound(grandTotal, 1)
}

// MonthlyProjection scales an annual amount to its monthly figure.
func MonthlyProjection(annual decimal.Decimal) decimal.Decimal {
	return annual.DivRound(twelve, 2)
}

// YearToDate projects an amount across the elapsed months. MonthsElapsed is
// a settings-controlled preview constant, not a calendar computation.
func YearToDate(amount decimal.Decimal, monthsElapsed int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(monthsElapsed)))
}

// FormatAmount renders a decimal using the template's fixed formatting
// strategy. Two fraction digits always; grouping per format.
func FormatAmount(d decimal.Decimal, format model.AmountFormat) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped string
	switch format {
	case model.AmountFormatInternational:
		grouped = groupThrees(intPart)
	case model.AmountFormatIndian:
		grouped = groupIndian(intPart)
	default:
		grouped = intPart
	}

	out := grouped + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// groupThrees inserts a separator every three digits: 12345678 -> 12,345,678.
func groupThrees(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// groupIndian groups the last three digits, then pairs: 12345678 -> 1,23,45,678.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head := digits[:n-3]
	tail := digits[n-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
