package bookinstance

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/catalog/mocks"
	"locallibrary/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHTTPHandler_ListAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	instances := mocks.NewMockInstanceRepository(ctrl)
	handler := NewHTTPHandler(NewService(catalog.Store{Instances: instances}, time.Second))

	instances.EXPECT().
		FindAll(gomock.Any(), catalog.InstanceFilter{Status: catalog.StatusAvailable}).
		Return([]catalog.InstanceDetail{{BookInstance: catalog.BookInstance{ID: "i1", Imprint: "Ace", Status: catalog.StatusAvailable}}}, nil)

	w := httptest.NewRecorder()
	handler.ListAvailable(w, httptest.NewRequest(http.MethodGet, "/catalog/bookinstances/available", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Available Book Instances")
}

func TestHTTPHandler_DeleteErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	instances := mocks.NewMockInstanceRepository(ctrl)
	handler := NewHTTPHandler(NewService(catalog.Store{Instances: instances}, time.Second))

	t.Run("missing copy", func(t *testing.T) {
		instances.EXPECT().FindByID(gomock.Any(), "i1").Return(nil, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/catalog/bookinstance/i1/delete", nil)
		r.SetPathValue("id", "i1")
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		instances.EXPECT().FindByID(gomock.Any(), "i1").Return(&catalog.InstanceDetail{BookInstance: catalog.BookInstance{ID: "i1"}}, nil)
		instances.EXPECT().Delete(gomock.Any(), "i1").Return(errors.New("write conflict"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/catalog/bookinstance/i1/delete", nil)
		r.SetPathValue("id", "i1")
		handler.Delete(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_CreateFormSelectsMaintenance(t *testing.T) {
	store := testutil.NewStore(t)
	handler := NewHTTPHandler(NewService(store, time.Second))

	w := httptest.NewRecorder()
	handler.Create(w, testutil.NewFormRequest(http.MethodPost, "/catalog/bookinstance/create", url.Values{"imprint": {"Ace"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Book must be specified")
	assert.Contains(t, body, `<option value="Maintenance" selected>`)
}
