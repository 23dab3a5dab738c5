package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydoc-studio/internal/manager"
	"paydoc-studio/internal/model"
	"paydoc-studio/internal/preview"
	"paydoc-studio/internal/registry"
	"paydoc-studio/internal/storage"
)

// Helper to create a minimal valid application instance for testing.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	store, err := storage.NewJSONStore(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr, err := manager.NewManager(store, logger)
	require.NoError(t, err)

	reg := registry.Builtin()
	return &application{
		logger:    logger,
		manager:   mgr,
		registry:  reg,
		projector: preview.NewProjector(reg),
	}
}

func testTime() time.Time {
	return time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
}

func doJSON(t *testing.T, router http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestListKindsHandler(t *testing.T) {
	app := newTestApplication(t)
	rr := doJSON(t, app.routes(), http.MethodGet, "/api/kinds", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[map[string][]model.DocumentKind](t, rr)
	assert.Len(t, got["kinds"], 4)
}

func TestFieldHandlers(t *testing.T) {
	app := newTestApplication(t)
	router := app.routes()

	rr := doJSON(t, router, http.MethodGet, "/api/fields/basic", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[map[string]string](t, rr)
	assert.Equal(t, "Basic", got["label"])

	rr = doJSON(t, router, http.MethodGet, "/api/fields/no_such_field", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListTemplatesHandler_UnknownKind(t *testing.T) {
	app := newTestApplication(t)
	rr := doJSON(t, app.routes(), http.MethodGet, "/api/invoice/templates/", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewAndSaveTemplateFlow(t *testing.T) {
	app := newTestApplication(t)
	router := app.routes()

	// 1. New draft: nothing persisted yet.
	rr := doJSON(t, router, http.MethodPost, "/api/payslip/templates/new", NewTemplateRequest{CreatedBy: "ops"})
	require.Equal(t, http.StatusOK, rr.Code)
	tpl := decode[model.Template](t, rr)
	assert.Equal(t, model.StatusDraft, tpl.Status)

	// 2. Publishing the unnamed draft is rejected with 422 and the
	// operator-facing message.
	rr = doJSON(t, router, http.MethodPost, "/api/payslip/templates/save", SaveRequest{
		Template: tpl, Status: model.StatusPublished, UpdatedBy: "ops",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	got := decode[map[string]string](t, rr)
	assert.Equal(t, "Template Name is required.", got["error"])

	// 3. Fix the draft and publish.
	tpl.Name = "April Payslip"
	tpl.Section(model.RoleEarnings).Add(model.NewSystemFieldComponent("basic", "Basic", "30000"))
	tpl.Section(model.RoleDeductions).Add(model.NewSystemFieldComponent("pf_employee", "PF", "1800"))

	rr = doJSON(t, router, http.MethodPost, "/api/payslip/templates/save", SaveRequest{
		Template: tpl, Status: model.StatusPublished, UpdatedBy: "ops",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	saved := decode[model.Template](t, rr)
	assert.Equal(t, model.StatusPublished, saved.Status)

	// 4. The saved template is retrievable by id.
	rr = doJSON(t, router, http.MethodGet, "/api/payslip/templates/"+saved.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	fetched := decode[model.Template](t, rr)
	assert.Equal(t, "April Payslip", fetched.Name)
}

func TestSaveTemplateHandler_KindMismatch(t *testing.T) {
	app := newTestApplication(t)
	tpl := model.NewTemplate(model.KindPayslip, "Slip", "ops", testTime())

	rr := doJSON(t, app.routes(), http.MethodPost, "/api/settlement/templates/save", SaveRequest{
		Template: tpl, Status: model.StatusDraft, UpdatedBy: "ops",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReorderTemplateHandler(t *testing.T) {
	app := newTestApplication(t)
	tpl := model.NewTemplate(model.KindPayslip, "Slip", "ops", testTime())
	earn := tpl.Section(model.RoleEarnings)
	earn.Add(model.NewSystemFieldComponent("basic", "Basic", "30000"))
	earn.Add(model.NewSystemFieldComponent("hra", "HRA", "12000"))

	rr := doJSON(t, app.routes(), http.MethodPost, "/api/payslip/templates/reorder", ReorderRequest{
		Template: tpl, Role: model.RoleEarnings, From: 0, To: 1,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	out := decode[model.Template](t, rr)
	assert.Equal(t, "HRA", out.Section(model.RoleEarnings).Items[0].DisplayName)

	rr = doJSON(t, app.routes(), http.MethodPost, "/api/payslip/templates/reorder", ReorderRequest{
		Template: tpl, Role: model.RoleEarnings, From: 0, To: 9,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApplyPresetHandler(t *testing.T) {
	app := newTestApplication(t)
	tpl := model.NewTemplate(model.KindPayslip, "Slip", "ops", testTime())

	rr := doJSON(t, app.routes(), http.MethodPost, "/api/payslip/templates/preset", PresetRequest{
		Template: tpl, Preset: "Standard Structure",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	out := decode[model.Template](t, rr)
	assert.Len(t, out.Section(model.RoleEarnings).Items, 4)

	rr = doJSON(t, app.routes(), http.MethodPost, "/api/payslip/templates/preset", PresetRequest{
		Template: tpl, Preset: "Standard Structure", ReadOnly: true,
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSON(t, app.routes(), http.MethodPost, "/api/payslip/templates/preset", PresetRequest{
		Template: tpl, Preset: "Nope",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPreviewTemplateHandler(t *testing.T) {
	app := newTestApplication(t)
	tpl := model.NewTemplate(model.KindBankAdvice, "NEFT", "ops", testTime())
	tpl.Section(model.RoleBankColumns).Add(model.NewSystemFieldComponent("employee_name", "Beneficiary", ""))

	rr := doJSON(t, app.routes(), http.MethodPost, "/api/bank_advice/templates/preview", PreviewRequest{
		Template: tpl,
		Sample: preview.SampleData{Rows: []preview.RowOverride{
			{},
			{Fields: map[string]string{"employee_name": "Rohan Mehta"}},
		}},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	table := decode[preview.Table](t, rr)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Anjali Sharma", table.Rows[0][0])
	assert.Equal(t, "Rohan Mehta", table.Rows[1][0])
}

func TestSetActiveHandler(t *testing.T) {
	app := newTestApplication(t)
	router := app.routes()

	// The seeded bank-advice default is unpersisted but addressable.
	templates, err := app.manager.Templates(model.KindBankAdvice)
	require.NoError(t, err)
	id := templates[0].ID

	rr := doJSON(t, router, http.MethodPost, "/api/bank_advice/templates/"+id+"/active", SetActiveRequest{
		Active: false, UpdatedBy: "ops",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	out := decode[model.Template](t, rr)
	assert.False(t, out.IsActive)

	// Kinds without the flag refuse the toggle.
	templates, err = app.manager.Templates(model.KindPayslip)
	require.NoError(t, err)
	rr = doJSON(t, router, http.MethodPost, "/api/payslip/templates/"+templates[0].ID+"/active", SetActiveRequest{
		Active: false, UpdatedBy: "ops",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMalformedBody(t *testing.T) {
	app := newTestApplication(t)
	req := httptest.NewRequest(http.MethodPost, "/api/payslip/templates/save", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
