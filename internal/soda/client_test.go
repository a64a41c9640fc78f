package soda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return NewClient(5*time.Second, "sodapop/test")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("$limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"PermitNum":"A1","Description":"x"},{"PermitNum":"A2"}]`))
	}))
	defer srv.Close()

	res, err := newTestClient().Fetch(context.Background(),
		srv.URL+"/resource/abcd-1234.json", NewQuery().Limit(2))
	require.NoError(t, err)

	assert.Equal(t, 2, res.RowCount)
	assert.Equal(t, "A1", res.Records[0].Field("PermitNum"))
	assert.Equal(t, "x", res.Records[0].Field("Description"))

	// sparse record: missing field reads as empty, not an error
	assert.False(t, res.Records[1].Has("Description"))
	assert.Equal(t, "", res.Records[1].Field("Description"))
}

func TestFetchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	res, err := newTestClient().Fetch(context.Background(), srv.URL, NewQuery())
	require.NoError(t, err)
	assert.Equal(t, 0, res.RowCount)
}

func TestFetchNestedValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"location":{"latitude":"47.6","longitude":"-122.3"}}]`))
	}))
	defer srv.Close()

	res, err := newTestClient().Fetch(context.Background(), srv.URL, NewQuery())
	require.NoError(t, err)
	assert.True(t, res.Records[0].Has("location"))
	assert.NotEmpty(t, res.Records[0].Field("location"))
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such dataset", http.StatusNotFound)
	}))
	defer srv.Close()

	res, err := newTestClient().Fetch(context.Background(), srv.URL, NewQuery())
	require.Error(t, err)
	assert.Nil(t, res)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "no such dataset")
	assert.ErrorIs(t, err, ErrRequest)
}

func TestFetchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not JSON`))
	}))
	defer srv.Close()

	_, err := newTestClient().Fetch(context.Background(), srv.URL, NewQuery())
	require.Error(t, err)

	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFetchNotAnArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": true, "message": "maybe later"}`))
	}))
	defer srv.Close()

	_, err := newTestClient().Fetch(context.Background(), srv.URL, NewQuery())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("$limit"))
		w.Write([]byte(`[{"a":"1"}]`))
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient().Check(context.Background(), srv.URL))
}
