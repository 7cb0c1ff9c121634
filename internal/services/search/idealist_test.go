package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdealistSearch_PagesReassembledInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/volunteer/search", r.URL.Path)
		assert.Equal(t, "japan", r.URL.Query().Get("country"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		page := r.URL.Query().Get("page")
		links := map[string][]string{
			"1": {"https://a.example/p1a", "https://a.example/p1b"},
			"2": {"https://a.example/p2a", "https://a.example/p2b"},
		}[page]

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(searchPage{Links: links, Total: 4})
	}))
	defer srv.Close()

	client := NewIdealistClient(srv.URL, 2)
	links, err := client.Search(context.Background(), "japan", 4)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://a.example/p1a",
		"https://a.example/p1b",
		"https://a.example/p2a",
		"https://a.example/p2b",
	}, links)
}

func TestIdealistSearch_TruncatesToLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		links := []string{
			fmt.Sprintf("https://a.example/%s-1", page),
			fmt.Sprintf("https://a.example/%s-2", page),
		}
		json.NewEncoder(w).Encode(searchPage{Links: links, Total: 10})
	}))
	defer srv.Close()

	client := NewIdealistClient(srv.URL, 2)
	links, err := client.Search(context.Background(), "kenya", 3)
	require.NoError(t, err)
	assert.Len(t, links, 3)
	assert.Equal(t, "https://a.example/1-1", links[0])
}

func TestIdealistSearch_CallerFacingStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "unknown country"})
	}))
	defer srv.Close()

	client := NewIdealistClient(srv.URL, 25)
	_, err := client.Search(context.Background(), "nowhere", 10)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
	assert.Equal(t, "unknown country", statusErr.Message)
}

func TestIdealistSearch_ServerErrorIsNotStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewIdealistClient(srv.URL, 25)
	_, err := client.Search(context.Background(), "japan", 10)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestIdealistSearch_DefaultAndMaxLimit(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		json.NewEncoder(w).Encode(searchPage{Links: []string{"https://a.example/x"}})
	}))
	defer srv.Close()

	client := NewIdealistClient(srv.URL, 100)

	// limit <= 0 uses the default of 50 -> one page at size 100.
	_, err := client.Search(context.Background(), "japan", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), requests.Load())

	// limit above the cap is clamped to 200 -> two pages at size 100.
	requests.Store(0)
	_, err = client.Search(context.Background(), "japan", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(2), requests.Load())
}
