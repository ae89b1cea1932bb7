package comvest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDetectTarget(t *testing.T) {
	institution, call := DetectTarget("https://www.comvest.unicamp.br/lista/chamada2.html")
	require.Equal(t, "unicamp", institution)
	require.Equal(t, 2, call)

	institution, call = DetectTarget("https://example.com/lista.html")
	require.Equal(t, "unknown", institution)
	require.Equal(t, 1, call)
}

func TestFetchListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Chamada 1</h1><pre>(100) Fulano   Pedagogia (N)</pre></body></html>`))
	}))
	defer server.Close()

	client, err := NewClient()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	text, err := client.FetchListing(ctx, server.URL)
	require.NoError(t, err)
	require.Equal(t, "(100) Fulano   Pedagogia (N)", text)
}

func TestFetchListingNoPre(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nada aqui</p></body></html>`))
	}))
	defer server.Close()

	client, err := NewClient()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err = client.FetchListing(ctx, server.URL)
	require.ErrorIs(t, err, ErrNoListing)
}
