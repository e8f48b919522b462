package home

import (
	"net/http"

	"locallibrary/internal/httpx"
	"locallibrary/internal/view"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /catalog", h.Index)
	mux.HandleFunc("GET /catalog/{$}", h.Index)
}

// Root handles GET /
func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

// Index handles GET /catalog
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Counts(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.IndexPage{Title: "Local Library Home", Counts: c})
}
