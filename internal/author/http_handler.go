package author

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

// Register mounts the author routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /catalog/authors", h.List)
	mux.HandleFunc("GET /catalog/author/create", h.CreateForm)
	mux.HandleFunc("POST /catalog/author/create", h.Create)
	mux.HandleFunc("GET /catalog/author/{id}", h.Detail)
	mux.HandleFunc("GET /catalog/author/{id}/update", h.UpdateForm)
	mux.HandleFunc("POST /catalog/author/{id}/update", h.Update)
	mux.HandleFunc("GET /catalog/author/{id}/delete", h.DeleteForm)
	mux.HandleFunc("POST /catalog/author/{id}/delete", h.Delete)
}

// List handles GET /catalog/authors
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.List(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.AuthorListPage{Title: "Author List", Authors: authors})
}

// Detail handles GET /catalog/author/{id}
func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.AuthorDetailPage{Title: "Author Detail", Author: d.Author, Books: d.Books})
}

func (h *HTTPHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.CreateForm(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Create Author", fd))
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	a, fd, err := h.service.Create(r.Context(), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if a == nil {
		httpx.Rejected(w, r, formPage("Create Author", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, a.URL())
}

func (h *HTTPHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.UpdateForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Update Author", fd))
}

func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	a, fd, err := h.service.Update(r.Context(), r.PathValue("id"), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if a == nil {
		httpx.Rejected(w, r, formPage("Update Author", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, a.URL())
}

func (h *HTTPHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.DeleteForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.AuthorDeletePage{Title: "Delete Author", Author: d.Author, Books: d.Books})
}

// Delete handles POST /catalog/author/{id}/delete. The id comes from the path;
// the hidden authorid field of the page is not trusted.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if errors.Is(err, catalog.ErrReferentialConflict) {
		httpx.Conflict(w, r, view.AuthorDeletePage{Title: "Delete Author", Author: d.Author, Books: d.Books})
		return
	}
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Redirect(w, r, "/catalog/authors")
}

func formPage(title string, fd FormData) view.AuthorFormPage {
	return view.AuthorFormPage{Title: title, Values: fd.Values, Errors: fd.Errors}
}
