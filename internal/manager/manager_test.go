package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydoc-studio/internal/model"
	"paydoc-studio/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *storage.JSONStore) {
	t.Helper()
	store, err := storage.NewJSONStore(t.TempDir())
	require.NoError(t, err)
	m, err := NewManager(store, nil)
	require.NoError(t, err)
	return m, store
}

func validPayslip(t *testing.T, m *Manager) model.Template {
	t.Helper()
	tpl, err := m.NewDraft(model.KindPayslip, "ops@acme")
	require.NoError(t, err)
	tpl.Name = "April Payslip"
	tpl.Section(model.RoleEarnings).Add(model.NewSystemFieldComponent("basic", "Basic", "30000"))
	tpl.Section(model.RoleDeductions).Add(model.NewSystemFieldComponent("pf_employee", "PF", "1800"))
	return tpl
}

func TestNewManager_SeedsAbsentNamespaces(t *testing.T) {
	m, store := newTestManager(t)

	for _, kind := range model.Kinds() {
		col, err := m.Templates(kind)
		require.NoError(t, err)
		require.Len(t, col, 1, "kind %s should seed one default", kind)
		assert.Equal(t, kind.Config().DefaultTemplateName, col[0].Name)
		assert.Equal(t, model.StatusDraft, col[0].Status)

		// Seeds live in memory only until the first save.
		_, found, err := store.Load(string(kind))
		require.NoError(t, err)
		assert.False(t, found, "seed for %s must not be persisted", kind)
	}
}

func TestNewManager_HydratesExistingCollections(t *testing.T) {
	store, err := storage.NewJSONStore(t.TempDir())
	require.NoError(t, err)

	existing := model.NewTemplate(model.KindPayslip, "Stored Payslip", "ops", time.Now().UTC())
	require.NoError(t, store.Save("payslip", []model.Template{existing}))

	m, err := NewManager(store, nil)
	require.NoError(t, err)

	col, err := m.Templates(model.KindPayslip)
	require.NoError(t, err)
	require.Len(t, col, 1)
	assert.Equal(t, "Stored Payslip", col[0].Name)
}

func TestSave_RejectsBlankName(t *testing.T) {
	m, store := newTestManager(t)

	tpl := validPayslip(t, m)
	tpl.Name = "   "

	_, err := m.Save(tpl, model.StatusPublished, "ops@acme")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Template Name is required.", verr.Message)

	// No state change, no persistence write.
	assert.Equal(t, model.StatusDraft, tpl.Status)
	_, found, err := store.Load("payslip")
	require.NoError(t, err)
	assert.False(t, found)
	col, _ := m.Templates(model.KindPayslip)
	for _, existing := range col {
		assert.NotEqual(t, tpl.ID, existing.ID)
	}
}

func TestSave_MandatorySectionRules(t *testing.T) {
	m, _ := newTestManager(t)

	t.Run("payslip needs both earnings and deductions", func(t *testing.T) {
		tpl := validPayslip(t, m)
		tpl.Section(model.RoleDeductions).Items = nil

		_, err := m.Save(tpl, model.StatusPublished, "ops")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "At least one deduction component must be included.", verr.Message)
	})

	t.Run("excluded components do not satisfy the rule", func(t *testing.T) {
		tpl := validPayslip(t, m)
		ded := tpl.Section(model.RoleDeductions)
		for i := range ded.Items {
			ded.Items[i].Included = false
		}

		_, err := m.Save(tpl, model.StatusDraft, "ops")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("settlement needs earnings only", func(t *testing.T) {
		tpl, err := m.NewDraft(model.KindSettlement, "ops")
		require.NoError(t, err)
		tpl.Name = "F&F"
		tpl.Section(model.RoleEarnings).Add(model.NewSystemFieldComponent("basic", "Basic", "15000"))

		_, err = m.Save(tpl, model.StatusPublished, "ops")
		assert.NoError(t, err)
	})

	t.Run("bank advice needs any included column", func(t *testing.T) {
		tpl, err := m.NewDraft(model.KindBankAdvice, "ops")
		require.NoError(t, err)
		tpl.Name = "NEFT Export"

		_, err = m.Save(tpl, model.StatusPublished, "ops")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "At least one column must be included.", verr.Message)

		tpl.Section(model.RoleBankColumns).Add(model.NewSystemFieldComponent("bank_account", "Account", ""))
		_, err = m.Save(tpl, model.StatusPublished, "ops")
		assert.NoError(t, err)
	})
}

func TestSave_PublishUpsertsByID(t *testing.T) {
	m, store := newTestManager(t)

	tpl := validPayslip(t, m)
	tpl.ID = "1"

	saved, err := m.Save(tpl, model.StatusDraft, "ops@acme")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, saved.Status)

	saved.Name = "X"
	saved, err = m.Save(saved, model.StatusPublished, "ops@acme")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, saved.Status)
	assert.Equal(t, "X", saved.Name)

	persisted, found, err := store.Load("payslip")
	require.NoError(t, err)
	require.True(t, found)

	matches := 0
	for _, p := range persisted {
		if p.ID == "1" {
			matches++
			assert.Equal(t, "X", p.Name)
			assert.Equal(t, model.StatusPublished, p.Status)
		}
	}
	assert.Equal(t, 1, matches, "exactly one entry with id=1 after upsert")
}

func TestSave_PublishedBackToDraft(t *testing.T) {
	m, _ := newTestManager(t)

	tpl := validPayslip(t, m)
	published, err := m.Save(tpl, model.StatusPublished, "ops")
	require.NoError(t, err)

	// Published is not terminal: re-saving as draft needs no extra
	// preconditions.
	draft, err := m.Save(published, model.StatusDraft, "ops")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, draft.Status)

	got, err := m.Get(model.KindPayslip, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, got.Status)
}

func TestSave_RefreshesAuditFields(t *testing.T) {
	m, _ := newTestManager(t)
	stamp := time.Date(2026, 4, 30, 18, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return stamp }

	tpl := validPayslip(t, m)
	saved, err := m.Save(tpl, model.StatusPublished, "reviewer@acme")
	require.NoError(t, err)

	assert.Equal(t, "reviewer@acme", saved.LastUpdatedBy)
	assert.Equal(t, "ops@acme", saved.CreatedBy)
	assert.Equal(t, stamp, saved.LastModified)
}

func TestApplyPreset_ReplacesSectionContents(t *testing.T) {
	m, _ := newTestManager(t)

	tpl := validPayslip(t, m)
	custom := model.NewFixedValueComponent("Custom Bonus", "bonus", "5000")
	tpl.Section(model.RoleEarnings).Add(custom)
	reimb := model.NewSystemFieldComponent("medical", "Medical", "1250")
	tpl.Section(model.RoleReimbursements).Add(reimb)

	out, err := m.ApplyPreset(tpl, "Standard Structure", false)
	require.NoError(t, err)

	// The preset's sections are replaced wholesale: prior edits gone.
	earn := out.Section(model.RoleEarnings)
	require.Len(t, earn.Items, 4)
	assert.Nil(t, earn.Find(custom.ID))

	// Sections the preset does not cover keep their edits.
	require.Len(t, out.Section(model.RoleReimbursements).Items, 1)
	assert.NotNil(t, out.Section(model.RoleReimbursements).Find(reimb.ID))

	// The input template is a value the caller still owns, untouched.
	assert.NotNil(t, tpl.Section(model.RoleEarnings).Find(custom.ID))
}

func TestApplyPreset_ReadOnlyAndUnknown(t *testing.T) {
	m, _ := newTestManager(t)
	tpl := validPayslip(t, m)

	_, err := m.ApplyPreset(tpl, "Standard Structure", true)
	assert.ErrorIs(t, err, ErrReadOnly)

	_, err = m.ApplyPreset(tpl, "No Such Preset", false)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestReorderSection(t *testing.T) {
	m, _ := newTestManager(t)
	tpl := validPayslip(t, m)
	earn := tpl.Section(model.RoleEarnings)
	earn.Add(model.NewSystemFieldComponent("hra", "HRA", "12000"))
	first, second := earn.Items[0].ID, earn.Items[1].ID

	out, err := m.ReorderSection(tpl, model.RoleEarnings, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, second, out.Section(model.RoleEarnings).Items[0].ID)
	assert.Equal(t, first, out.Section(model.RoleEarnings).Items[1].ID)

	// Caller's value untouched.
	assert.Equal(t, first, tpl.Section(model.RoleEarnings).Items[0].ID)

	_, err = m.ReorderSection(tpl, model.RoleBankColumns, 0, 1)
	assert.Error(t, err)
	_, err = m.ReorderSection(tpl, model.RoleEarnings, 0, 7)
	assert.Error(t, err)
}

func TestSetActive(t *testing.T) {
	m, _ := newTestManager(t)

	tpl, err := m.NewDraft(model.KindBankAdvice, "ops")
	require.NoError(t, err)
	tpl.Name = "NEFT Export"
	tpl.Section(model.RoleBankColumns).Add(model.NewSystemFieldComponent("bank_account", "Account", ""))
	saved, err := m.Save(tpl, model.StatusPublished, "ops")
	require.NoError(t, err)
	require.True(t, saved.IsActive)

	updated, err := m.SetActive(model.KindBankAdvice, saved.ID, false, "ops")
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	// Eligibility is independent of publish status.
	assert.Equal(t, model.StatusPublished, updated.Status)

	_, err = m.SetActive(model.KindPayslip, "whatever", true, "ops")
	assert.ErrorIs(t, err, ErrNoActiveFlag)

	_, err = m.SetActive(model.KindBankAdvice, "missing", true, "ops")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"Standard Structure"}, PresetNames(model.KindPayslip))
	assert.Equal(t, []string{"Standard IT Structure"}, PresetNames(model.KindAnnexure))
	assert.Empty(t, PresetNames("invoice"))
}
