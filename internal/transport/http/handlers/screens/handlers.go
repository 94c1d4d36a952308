// Package screenshandler exposes per-session screen instances over JSON.
// Every successful call answers with the screen's view and the toasts queued
// since the previous call; validation and backend failures arrive as toasts.
package screenshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"hrmconsole/internal/app/workspace"
	"hrmconsole/internal/domain/form"
	"hrmconsole/internal/domain/screen"
	"hrmconsole/internal/transport/http/api"
	"hrmconsole/internal/transport/http/middleware"
	"hrmconsole/internal/transport/http/shared"
)

const maxPageSize = 500

type Handler struct {
	Sessions *workspace.Manager
}

func NewHandler(sessions *workspace.Manager) *Handler {
	return &Handler{Sessions: sessions}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/screens", h.handleList)
	r.Route("/screens/{screen}", func(r chi.Router) {
		r.Get("/", h.handleView)
		r.Post("/mount", h.handleMount)
		r.Post("/fields", h.handleSetField)
		r.Post("/rows/{section}", h.handleAddRow)
		r.Delete("/rows/{section}/{index}", h.handleRemoveRow)
		r.Post("/submit", h.handleSubmit)
		r.Post("/reset", h.handleReset)
		r.Post("/reload", h.handleReload)
		r.Post("/search", h.handleSearch)
		r.Post("/edit/{key}", h.handleEdit)
		r.Post("/delete/confirm", h.handleConfirmDelete)
		r.Post("/delete/cancel", h.handleCancelDelete)
		r.Post("/delete/{key}", h.handleRequestDelete)
		r.Get("/export.csv", h.handleExportCSV)
		r.Get("/export.pdf", h.handleExportPDF)
		r.Get("/template.xlsx", h.handleTemplate)
	})
}

type screenResponse struct {
	View    screen.View    `json:"view"`
	Matched int            `json:"matched"`
	Toasts  []screen.Toast `json:"toasts"`
}

type fieldRequest struct {
	Path  string      `json:"path"`
	Value *form.Value `json:"value"`
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Sessions.Registry().Summaries(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(ctx context.Context, s *screen.Screen) error {
		return nil
	})
}

func (h *Handler) handleMount(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ws := h.Sessions.Workspace(middleware.GetSessionID(r.Context()))
	s, err := h.Sessions.Mount(r.Context(), ws, chi.URLParam(r, "screen"))
	if err != nil {
		failFor(w, err, requestID)
		return
	}
	h.respond(w, r, ws, s)
}

func (h *Handler) handleSetField(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req fieldRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", err.Error(), requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("path", req.Path, "is required")
	if req.Value == nil {
		v.Add("value", "is required")
	}
	var path form.Path
	if req.Path != "" {
		p, err := form.ParsePath(req.Path)
		if err != nil {
			v.Add("path", err.Error())
		}
		path = p
	}
	if v.Reject(w, requestID) {
		return
	}
	h.with(w, r, func(ctx context.Context, s *screen.Screen) error {
		return s.Update(ctx, path, *req.Value)
	})
}

func (h *Handler) handleAddRow(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	h.with(w, r, func(_ context.Context, s *screen.Screen) error {
		return s.AddRow(section)
	})
}

func (h *Handler) handleRemoveRow(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	index, _ := v.Index("index", chi.URLParam(r, "index"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	section := chi.URLParam(r, "section")
	h.with(w, r, func(_ context.Context, s *screen.Screen) error {
		return s.RemoveRow(section, index)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(ctx context.Context, s *screen.Screen) error {
		s.Submit(ctx)
		return nil
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(_ context.Context, s *screen.Screen) error {
		s.Reset()
		return nil
	})
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(ctx context.Context, s *screen.Screen) error {
		s.Reload(ctx)
		return nil
	})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	h.with(w, r, func(_ context.Context, s *screen.Screen) error {
		s.Search(req.Query)
		return nil
	})
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	h.with(w, r, func(ctx context.Context, s *screen.Screen) error {
		return s.Edit(ctx, key)
	})
}

func (h *Handler) handleRequestDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	h.with(w, r, func(_ context.Context, s *screen.Screen) error {
		return s.RequestDelete(key)
	})
}

func (h *Handler) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(ctx context.Context, s *screen.Screen) error {
		return s.ConfirmDelete(ctx)
	})
}

func (h *Handler) handleCancelDelete(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(_ context.Context, s *screen.Screen) error {
		s.CancelDelete()
		return nil
	})
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, func(s *screen.Screen) (screen.Download, bool) {
		return s.ExportCSV()
	})
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, func(s *screen.Screen) (screen.Download, bool) {
		return s.ExportPDF()
	})
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ws, s, ok := h.open(w, r)
	if !ok {
		return
	}
	file, err := s.Template()
	if err != nil {
		if errors.Is(err, screen.ErrNotSupported) {
			failFor(w, err, requestID)
			return
		}
		h.failWithView(w, r, ws, s, "template_failed", "template could not be built")
		return
	}
	api.Attachment(w, file.Name, file.ContentType, file.Data)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request, build func(*screen.Screen) (screen.Download, bool)) {
	ws, s, ok := h.open(w, r)
	if !ok {
		return
	}
	if s.Definition().List == nil {
		failFor(w, errors.Wrap(screen.ErrNotSupported, "export"), middleware.GetRequestID(r.Context()))
		return
	}
	file, ok := build(s)
	if !ok {
		h.failWithView(w, r, ws, s, "export_failed", "export could not be built")
		return
	}
	api.Attachment(w, file.Name, file.ContentType, file.Data)
}

// with resolves the session's screen, runs op and answers with the view.
func (h *Handler) with(w http.ResponseWriter, r *http.Request, op func(context.Context, *screen.Screen) error) {
	ws, s, ok := h.open(w, r)
	if !ok {
		return
	}
	if err := op(r.Context(), s); err != nil {
		failFor(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.respond(w, r, ws, s)
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, *screen.Screen, bool) {
	ws := h.Sessions.Workspace(middleware.GetSessionID(r.Context()))
	s, err := h.Sessions.Screen(r.Context(), ws, chi.URLParam(r, "screen"))
	if err != nil {
		failFor(w, err, middleware.GetRequestID(r.Context()))
		return nil, nil, false
	}
	return ws, s, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, s *screen.Screen) {
	api.Success(w, buildResponse(r, ws, s), middleware.GetRequestID(r.Context()))
}

func (h *Handler) failWithView(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, s *screen.Screen, code, message string) {
	api.WriteJSON(w, http.StatusUnprocessableEntity, api.Envelope{
		Success:   false,
		Data:      buildResponse(r, ws, s),
		Error:     &api.Error{Code: code, Message: message},
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func buildResponse(r *http.Request, ws *workspace.Workspace, s *screen.Screen) screenResponse {
	view := s.View()
	matched := len(view.Rows)
	start, end := shared.ParsePagination(r, 0, maxPageSize).Bounds(matched)
	view.Rows = view.Rows[start:end]
	return screenResponse{View: view, Matched: matched, Toasts: ws.Toasts.Drain()}
}

func failFor(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, workspace.ErrUnknownScreen):
		api.Fail(w, http.StatusNotFound, "unknown_screen", err.Error(), requestID)
	case errors.Is(err, screen.ErrNotSupported):
		api.Fail(w, http.StatusNotFound, "not_supported", err.Error(), requestID)
	case errors.Is(err, screen.ErrUnknownRow):
		api.Fail(w, http.StatusNotFound, "unknown_row", err.Error(), requestID)
	case errors.Is(err, screen.ErrNoPendingDelete):
		api.Fail(w, http.StatusConflict, "no_pending_delete", err.Error(), requestID)
	case errors.Is(err, screen.ErrUnknownField),
		errors.Is(err, screen.ErrReadOnly),
		errors.Is(err, screen.ErrFieldDisabled),
		errors.Is(err, screen.ErrUnknownSection),
		errors.Is(err, screen.ErrUnknownOption),
		errors.Is(err, screen.ErrOptionDisabled),
		errors.Is(err, form.ErrNotSection),
		errors.Is(err, form.ErrRowIndex),
		errors.Is(err, form.ErrProtectedRow):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "unexpected error", requestID)
	}
}
