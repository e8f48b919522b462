package book

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
	mux.HandleFunc("GET /catalog/books", h.List)
	mux.HandleFunc("GET /catalog/book/create", h.CreateForm)
	mux.HandleFunc("POST /catalog/book/create", h.Create)
	mux.HandleFunc("GET /catalog/book/{id}", h.Detail)
	mux.HandleFunc("GET /catalog/book/{id}/update", h.UpdateForm)
	mux.HandleFunc("POST /catalog/book/{id}/update", h.Update)
	mux.HandleFunc("GET /catalog/book/{id}/delete", h.DeleteForm)
	mux.HandleFunc("POST /catalog/book/{id}/delete", h.Delete)
}

// List handles GET /catalog/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.BookListPage{Title: "Book List", Books: books})
}

// Detail handles GET /catalog/book/{id}
func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.BookDetailPage{Title: d.Book.Title, Book: d.Book, Instances: d.Instances})
}

func (h *HTTPHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.CreateForm(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Create Book", fd))
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	b, fd, err := h.service.Create(r.Context(), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if b == nil {
		httpx.Rejected(w, r, formPage("Create Book", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, b.URL())
}

func (h *HTTPHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.UpdateForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Update Book", fd))
}

func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	b, fd, err := h.service.Update(r.Context(), r.PathValue("id"), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if b == nil {
		httpx.Rejected(w, r, formPage("Update Book", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, b.URL())
}

func (h *HTTPHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.DeleteForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.BookDeletePage{Title: "Delete Book", Book: d.Book, Instances: d.Instances})
}

func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if errors.Is(err, catalog.ErrReferentialConflict) {
		httpx.Conflict(w, r, view.BookDeletePage{Title: "Delete Book", Book: d.Book, Instances: d.Instances})
		return
	}
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Redirect(w, r, "/catalog/books")
}

func formPage(title string, fd FormData) view.BookFormPage {
	return view.BookFormPage{Title: title, Values: fd.Values, Errors: fd.Errors, Authors: fd.Authors, Genres: fd.Genres}
}
