// Package registry holds the read-only catalog of system fields a component
// may reference. Each field carries the label shown to the operator and the
// sample value used by the preview projector.
package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Field is one resolvable system field.
type Field struct {
	Label  string `yaml:"label"`
	Sample string `yaml:"sample"`
}

// Registry resolves system-field ids. It is static for the life of the
// process; there is no mutation API.
type Registry struct {
	fields map[string]Field
}

// builtinFields is the catalog shipped with the application. A catalog file
// can extend or override it but never has to exist.
var builtinFields = map[string]Field{
	"company_name":     {Label: "Company Name", Sample: "Acme Technologies Pvt Ltd"},
	"employee_name":    {Label: "Employee Name", Sample: "Anjali Sharma"},
	"employee_id":      {Label: "Employee ID", Sample: "EMP-00421"},
	"designation":      {Label: "Designation", Sample: "Senior Engineer"},
	"department":       {Label: "Department", Sample: "Engineering"},
	"date_of_joining":  {Label: "Date of Joining", Sample: "14/07/2021"},
	"date_of_leaving":  {Label: "Date of Leaving", Sample: "31/03/2026"},
	"pan":              {Label: "PAN", Sample: "ABCDE1234F"},
	"uan":              {Label: "UAN", Sample: "100987654321"},
	"pf_number":        {Label: "PF Number", Sample: "KA/BNG/0054321/000/0000123"},
	"esi_number":       {Label: "ESI Number", Sample: "5100123456"},
	"bank_name":        {Label: "Bank Name", Sample: "State Bank of India"},
	"bank_account":     {Label: "Bank Account Number", Sample: "30123456789"},
	"ifsc_code":        {Label: "IFSC Code", Sample: "SBIN0001234"},
	"payment_mode":     {Label: "Payment Mode", Sample: "NEFT"},
	"paid_days":        {Label: "Paid Days", Sample: "30"},
	"lop_days":         {Label: "LOP Days", Sample: "0"},
	"net_amount":       {Label: "Net Amount", Sample: "52400"},
	"basic":            {Label: "Basic", Sample: "30000"},
	"hra":              {Label: "House Rent Allowance", Sample: "12000"},
	"conveyance":       {Label: "Conveyance Allowance", Sample: "1600"},
	"medical":          {Label: "Medical Allowance", Sample: "1250"},
	"lta":              {Label: "Leave Travel Allowance", Sample: "2500"},
	"special":          {Label: "Special Allowance", Sample: "8400"},
	"pf_employee":      {Label: "Provident Fund (Employee)", Sample: "1800"},
	"pf_employer":      {Label: "Provident Fund (Employer)", Sample: "1800"},
	"professional_tax": {Label: "Professional Tax", Sample: "200"},
	"income_tax":       {Label: "Income Tax (TDS)", Sample: "2500"},
	"gratuity":         {Label: "Gratuity", Sample: "1443"},
	"leave_encashment": {Label: "Leave Encashment", Sample: "10384"},
	"notice_pay":       {Label: "Notice Pay Recovery", Sample: "0"},
}

// Builtin returns a registry backed only by the built-in catalog.
func Builtin() *Registry {
	fields := make(map[string]Field, len(builtinFields))
	for id, f := range builtinFields {
		fields[id] = f
	}
	return &Registry{fields: fields}
}

// LoadFile returns the built-in registry merged with the YAML catalog at
// path. File entries win over built-ins with the same id. A missing path is
// not an error; the built-in catalog is the answer.
func LoadFile(path string) (*Registry, error) {
	reg := Builtin()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("failed to read field catalog %s: %w", path, err)
	}

	var extra map[string]Field
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse field catalog %s: %w", path, err)
	}
	for id, f := range extra {
		reg.fields[id] = f
	}
	return reg, nil
}

// Resolve looks up a system field by id. The second return is false when the
// id is unknown; callers degrade the component to an "Unknown field" display
// state rather than failing.
func (r *Registry) Resolve(fieldID string) (Field, bool) {
	f, ok := r.fields[fieldID]
	return f, ok
}

// FieldIDs returns every known field id in sorted order.
func (r *Registry) FieldIDs() []string {
	ids := make([]string, 0, len(r.fields))
	for id := range r.fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
