package genre

import (
	"errors"
	"net/http"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
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
	mux.HandleFunc("GET /catalog/genres", h.List)
	mux.HandleFunc("GET /catalog/genre/create", h.CreateForm)
	mux.HandleFunc("POST /catalog/genre/create", h.Create)
	mux.HandleFunc("GET /catalog/genre/{id}", h.Detail)
	mux.HandleFunc("GET /catalog/genre/{id}/update", h.UpdateForm)
	mux.HandleFunc("POST /catalog/genre/{id}/update", h.Update)
	mux.HandleFunc("GET /catalog/genre/{id}/delete", h.DeleteForm)
	mux.HandleFunc("POST /catalog/genre/{id}/delete", h.Delete)
}

func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.List(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.GenreListPage{Title: "Genre List", Genres: genres})
}

func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.GenreDetailPage{Title: "Genre Detail", Genre: d.Genre, Books: d.Books})
}

func (h *HTTPHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.CreateForm(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Create Genre", fd))
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	g, fd, err := h.service.Create(r.Context(), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if g == nil {
		httpx.Rejected(w, r, formPage("Create Genre", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, g.URL())
}

func (h *HTTPHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.UpdateForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Update Genre", fd))
}

func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	g, fd, err := h.service.Update(r.Context(), r.PathValue("id"), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if g == nil {
		httpx.Rejected(w, r, formPage("Update Genre", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, g.URL())
}

func (h *HTTPHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.DeleteForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.GenreDeletePage{Title: "Delete Genre", Genre: d.Genre, Books: d.Books})
}

func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if errors.Is(err, catalog.ErrReferentialConflict) {
		httpx.Conflict(w, r, view.GenreDeletePage{Title: "Delete Genre", Genre: d.Genre, Books: d.Books})
		return
	}
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Redirect(w, r, "/catalog/genres")
}

func formPage(title string, fd FormData) view.GenreFormPage {
	return view.GenreFormPage{Title: title, Values: fd.Values, Errors: fd.Errors}
}
