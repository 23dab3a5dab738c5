package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paydoc-studio/internal/manager"
	"paydoc-studio/internal/model"
	"paydoc-studio/internal/preview"
)

// SaveRequest is the body for the save-with-status endpoint. The client
// holds the draft aggregate between requests; the server is stateless with
// respect to unsaved edits.
type SaveRequest struct {
	Template  model.Template `json:"template"`
	Status    model.Status   `json:"status"`
	UpdatedBy string         `json:"updated_by"`
}

// ReorderRequest moves one component of a section to a new position.
type ReorderRequest struct {
	Template model.Template    `json:"template"`
	Role     model.SectionRole `json:"role"`
	From     int               `json:"from"`
	To       int               `json:"to"`
}

// PresetRequest replaces the template's sections with a named preset.
type PresetRequest struct {
	Template model.Template `json:"template"`
	Preset   string         `json:"preset"`
	ReadOnly bool           `json:"read_only"`
}

// PreviewRequest renders a template against sample input data.
type PreviewRequest struct {
	Template model.Template     `json:"template"`
	Sample   preview.SampleData `json:"sample"`
}

// NewTemplateRequest creates an unpersisted draft.
type NewTemplateRequest struct {
	CreatedBy string `json:"created_by"`
}

// SetActiveRequest toggles a bank layout's eligibility flag.
type SetActiveRequest struct {
	Active    bool   `json:"active"`
	UpdatedBy string `json:"updated_by"`
}

func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.Error("Failed to encode response", "error", err)
	}
}

func (app *application) writeError(w http.ResponseWriter, status int, msg string) {
	app.writeJSON(w, status, map[string]string{"error": msg})
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		app.logger.Error("Failed to decode request body", "error", err)
		app.writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

// kindFromRequest extracts and validates the document kind URL parameter.
func (app *application) kindFromRequest(w http.ResponseWriter, r *http.Request) (model.DocumentKind, bool) {
	kind := model.DocumentKind(chi.URLParam(r, "kind"))
	if !model.IsAllowedDocumentKind(kind) {
		app.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown document kind %q", kind))
		return "", false
	}
	return kind, true
}

// writeManagerError maps manager errors onto HTTP statuses. Validation
// rejections are 422: the operator corrects and retries; nothing was saved.
func (app *application) writeManagerError(w http.ResponseWriter, err error) {
	var verr *manager.ValidationError
	switch {
	case errors.As(err, &verr):
		app.writeError(w, http.StatusUnprocessableEntity, verr.Message)
	case errors.Is(err, manager.ErrTemplateNotFound):
		app.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, manager.ErrReadOnly):
		app.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, manager.ErrUnknownKind),
		errors.Is(err, manager.ErrUnknownPreset),
		errors.Is(err, manager.ErrNoActiveFlag):
		app.writeError(w, http.StatusBadRequest, err.Error())
	default:
		app.logger.Error("Unexpected manager error", "error", err)
		app.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (app *application) listKindsHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, map[string][]model.DocumentKind{"kinds": model.Kinds()})
}

func (app *application) listFieldsHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, map[string][]string{"fields": app.registry.FieldIDs()})
}

func (app *application) getFieldHandler(w http.ResponseWriter, r *http.Request) {
	fieldID := chi.URLParam(r, "fieldID")
	field, ok := app.registry.Resolve(fieldID)
	if !ok {
		app.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown system field %q", fieldID))
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{
		"id":     fieldID,
		"label":  field.Label,
		"sample": field.Sample,
	})
}

func (app *application) listTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := app.kindFromRequest(w, r)
	if !ok {
		return
	}
	templates, err := app.manager.Templates(kind)
	if err != nil {
		app.writeManagerError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string][]model.Template{"templates": templates})
}

func (app *application) getTemplateHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := app.kindFromRequest(w, r)
	if !ok {
		return
	}
	tpl, err := app.manager.Get(kind, chi.URLParam(r, "templateID"))
	if err != nil {
		app.writeManagerError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, tpl)
}

// newTemplateHandler hands out a fresh draft with the kind's factory
// defaults. Nothing is persisted until the client saves it.
func (app *application) newTemplateHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := app.kindFromRequest(w, r)
	if !ok {
		return
	}
	var req NewTemplateRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	tpl, err := app.manager.NewDraft(kind, req.CreatedBy)
	if err != nil {
		app.writeManagerError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, tpl)
}

func (app *application) saveTemplateHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := app.kindFromRequest(w, r)
	if !ok {
		return
	}
	var req SaveRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Template.Kind != kind {
		app.writeError(w, http.StatusBadRequest, "template kind does not match URL")
		return
	}

	saved, err := app.manager.Save(req.Template, req.Status, req.UpdatedBy)
	if err != nil {
		app.writeManagerError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, saved)
}

func (app *application) reorderTemplateHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := app.kindFromRequest(w, r); !ok {
		return
	}
	var req ReorderRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	out, err := app.manager.ReorderSection(req.Template, req.Role, req.From, req.To)
	if err != nil {
		app.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app.writeJSON(w, http.StatusOK, out)
}

func (app *application) applyPresetHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := app.kindFromRequest(w, r); !ok {
		return
	}
	var req PresetRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	out, err := app.manager.ApplyPreset(req.Template, req.Preset, req.ReadOnly)
	if err != nil {
		app.writeManagerError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, out)
}

func (app *application) previewTemplateHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := app.kindFromRequest(w, r); !ok {
		return
	}
	var req PreviewRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	table := app.projector.Render(req.Template, req.Sample)
	app.writeJSON(w, http.StatusOK, table)
}

func (app *application) setActiveHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := app.kindFromRequest(w, r)
	if !ok {
		return
	}
	var req SetActiveRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	updated, err := app.manager.SetActive(kind, chi.URLParam(r, "templateID"), req.Active, req.UpdatedBy)
	if err != nil {
		app.writeManagerError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, updated)
}
