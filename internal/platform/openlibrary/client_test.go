package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "locallibrary-test", 100, 2)
	c.backoff = time.Millisecond
	return c
}

func TestSearchBySubject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "subject:science fiction", r.URL.Query().Get("q"))
		assert.Equal(t, "locallibrary-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"numFound":1,"docs":[{"key":"/works/OL1W","title":"Dune","author_name":["Frank Herbert"],"author_key":["OL1A"],"isbn":["0441013597","9780441013593"],"publisher":["Ace"],"first_publish_year":1965}]}`))
	})

	res, err := c.SearchBySubject(context.Background(), "science fiction", 5)
	require.NoError(t, err)
	require.Len(t, res.Docs, 1)
	assert.Equal(t, "Dune", res.Docs[0].Title)
	assert.Equal(t, []string{"OL1A"}, res.Docs[0].AuthorKeys)
	assert.Equal(t, 1965, res.Docs[0].FirstPublishYear)
}

func TestGetAuthor_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "/authors/OL1A.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"Frank Herbert","birth_date":"8 October 1920","death_date":"11 February 1986"}`))
	})

	a, err := c.GetAuthor(context.Background(), "/authors/OL1A")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", a.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetAuthor_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetAuthor(context.Background(), "OL404A")
	assert.EqualError(t, err, "unexpected status code: 404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetAuthor_GivesUpAfterRetries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetAuthor(context.Background(), "OL1A")
	assert.EqualError(t, err, "after 2 retries: unexpected status code: 429")
}

func TestISODate(t *testing.T) {
	tests := map[string]string{
		"8 October 1920":    "1920-10-08",
		"October 8, 1920":   "1920-10-08",
		"1920-10-08":        "1920-10-08",
		"11 Feb 1986.":      "1986-02-11",
		"1920":              "",
		"c. 1200":           "",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ISODate(in), in)
	}
}
