package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDAWAClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/adresser", r.URL.Path)
		assert.Equal(t, "mini", r.URL.Query().Get("struktur"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"x": 10.2039, "y": 56.1629}]`))
	}))
	defer srv.Close()

	client := NewDAWAClient(srv.URL, 3)
	point, err := client.Geocode(context.Background(), "Banegårdspladsen 1, 8000 Aarhus")

	require.NoError(t, err)
	assert.InDelta(t, 56.1629, point.Latitude, 1e-6)
	assert.InDelta(t, 10.2039, point.Longitude, 1e-6)
}

func TestDAWAClient_Geocode_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewDAWAClient(srv.URL, 3)
	_, err := client.Geocode(context.Background(), "Atlantis 1")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDAWAClient_Geocode_EmptyAddress(t *testing.T) {
	client := NewDAWAClient("http://unused", 3)
	_, err := client.Geocode(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDAWAClient_Geocode_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"x": 9.9, "y": 55.7}]`))
	}))
	defer srv.Close()

	client := NewDAWAClient(srv.URL, 3)
	point, err := client.Geocode(context.Background(), "Vestergade 5")

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.InDelta(t, 55.7, point.Latitude, 1e-6)
}

func TestDAWAClient_Geocode_ExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewDAWAClient(srv.URL, 2)
	_, err := client.Geocode(context.Background(), "Vestergade 5")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(2), calls.Load())
}
