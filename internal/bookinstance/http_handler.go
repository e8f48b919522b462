package bookinstance

import (
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
	mux.HandleFunc("GET /catalog/bookinstances", h.List)
	mux.HandleFunc("GET /catalog/bookinstances/available", h.ListAvailable)
	mux.HandleFunc("GET /catalog/bookinstance/create", h.CreateForm)
	mux.HandleFunc("POST /catalog/bookinstance/create", h.Create)
	mux.HandleFunc("GET /catalog/bookinstance/{id}", h.Detail)
	mux.HandleFunc("GET /catalog/bookinstance/{id}/update", h.UpdateForm)
	mux.HandleFunc("POST /catalog/bookinstance/{id}/update", h.Update)
	mux.HandleFunc("GET /catalog/bookinstance/{id}/delete", h.DeleteForm)
	mux.HandleFunc("POST /catalog/bookinstance/{id}/delete", h.Delete)
}

func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	instances, err := h.service.List(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.InstanceListPage{Title: "Book Instance List", Instances: instances})
}

// ListAvailable handles GET /catalog/bookinstances/available
func (h *HTTPHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	instances, err := h.service.ListAvailable(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.InstanceListPage{Title: "Available Book Instances", Instances: instances})
}

func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	bi, err := h.service.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.InstanceDetailPage{Title: "Book:", Instance: bi})
}

func (h *HTTPHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.CreateForm(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Create BookInstance", fd))
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	bi, fd, err := h.service.Create(r.Context(), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if bi == nil {
		httpx.Rejected(w, r, formPage("Create BookInstance", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, bi.URL())
}

func (h *HTTPHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	fd, err := h.service.UpdateForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, formPage("Update BookInstance", fd))
}

func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	v, err := form.FromRequest(r)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	bi, fd, err := h.service.Update(r.Context(), r.PathValue("id"), v)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if bi == nil {
		httpx.Rejected(w, r, formPage("Update BookInstance", fd), fd.Errors)
		return
	}
	httpx.Redirect(w, r, bi.URL())
}

func (h *HTTPHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	bi, err := h.service.DeleteForm(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Page(w, r, http.StatusOK, view.InstanceDeletePage{Title: "Delete BookInstance", Instance: bi})
}

func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.Redirect(w, r, "/catalog/bookinstances")
}

func formPage(title string, fd FormData) view.InstanceFormPage {
	return view.InstanceFormPage{Title: title, Values: fd.Values, Errors: fd.Errors, Books: fd.Books, Statuses: catalog.Statuses}
}
