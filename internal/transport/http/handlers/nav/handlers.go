package navhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrmconsole/internal/domain/nav"
	"hrmconsole/internal/transport/http/api"
	"hrmconsole/internal/transport/http/middleware"
)

type Handler struct {
	Menu nav.Menu
}

func NewHandler(menu nav.Menu) *Handler {
	return &Handler{Menu: menu}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/nav", h.handleMenu)
}

func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Menu, middleware.GetRequestID(r.Context()))
}
