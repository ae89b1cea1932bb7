package mirror

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpsert(t *testing.T) {
	var gotPath, gotConflict, gotPrefer string
	var gotRows []Row

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotConflict = r.URL.Query().Get("on_conflict")
		gotPrefer = r.Header.Get("Prefer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRows))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(gotRows)
	}))
	defer server.Close()

	client, err := NewClient(Config{Url: server.URL, ServiceKey: "test-key"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	inserted, err := client.Upsert(ctx, []Row{
		{Inscricao: "100", Name: "Fulano", Course: "Pedagogia", Cidade: "Campinas", Chamada: 1, Genero: "male"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, inserted)
	require.Equal(t, "/rest/v1/master_calouros", gotPath)
	require.Equal(t, "inscricao", gotConflict)
	require.Contains(t, gotPrefer, "merge-duplicates")
	require.Len(t, gotRows, 1)
	require.Equal(t, "100", gotRows[0].Inscricao)
}

func TestUpsertRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(Config{Url: server.URL, ServiceKey: "bad-key"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err = client.Upsert(ctx, []Row{{Inscricao: "100"}})
	require.Error(t, err)
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestUpsertEmptyBatch(t *testing.T) {
	client, err := NewClient(Config{Url: "http://localhost:9", ServiceKey: "key"})
	require.NoError(t, err)

	inserted, err := client.Upsert(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, inserted)
}
