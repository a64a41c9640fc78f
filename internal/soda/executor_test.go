package soda

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

func TestFetchAll(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"a":"1"},{"a":"2"}]`))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	requests := map[string]Request{
		"good": {Endpoint: good.URL, Query: NewQuery().Limit(2)},
		"bad":  {Endpoint: bad.URL, Query: NewQuery().Limit(2)},
	}

	ex := NewExecutor(NewClient(time.Second, ""), nil)
	results, failures := ex.FetchAll(context.Background(), 2, requests, false)

	require.Len(t, results, 1)
	require.Len(t, failures, 1)
	assert.Equal(t, 2, results["good"].RowCount)

	var reqErr *RequestError
	require.ErrorAs(t, failures["bad"], &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
}

func TestFetchAllZeroWorkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ex := NewExecutor(NewClient(time.Second, ""), nil)
	results, failures := ex.FetchAll(context.Background(), 0,
		map[string]Request{"only": {Endpoint: srv.URL}}, false)

	assert.Len(t, results, 1)
	assert.Empty(t, failures)
}

func TestFetchOneUsesCache(t *testing.T) {
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[{"a":"1"}]`))
	}))
	defer srv.Close()

	ex := NewExecutor(NewClient(time.Second, ""), NewCache(time.Minute))
	req := Request{Endpoint: srv.URL, Query: NewQuery().Limit(1)}

	first, err := ex.FetchOne(context.Background(), req, true)
	require.NoError(t, err)

	second, err := ex.FetchOne(context.Background(), req, true)
	require.NoError(t, err)

	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, first, second)
}

func TestFetchOneBypassesCache(t *testing.T) {
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[{"a":"1"}]`))
	}))
	defer srv.Close()

	ex := NewExecutor(NewClient(time.Second, ""), NewCache(time.Minute))
	req := Request{Endpoint: srv.URL, Query: NewQuery().Limit(1)}

	_, err := ex.FetchOne(context.Background(), req, false)
	require.NoError(t, err)

	_, err = ex.FetchOne(context.Background(), req, false)
	require.NoError(t, err)

	assert.EqualValues(t, 2, hits.Load())
}
