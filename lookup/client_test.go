package lookup_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hvillega/padron/lookup"
)

func TestClient_Find(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req struct {
			DocumentNumber string `json:"document_number"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "12345678", req.DocumentNumber)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]string{
				"name":          "Ana",
				"surname":       "Quispe Mamani",
				"address":       "Jr. Los Pinos 123",
				"district":      "San Juan",
				"province":      "Lima",
				"department":    "Lima",
				"date_of_birth": "1985-04-12",
			},
		})
	}))
	defer srv.Close()

	c := lookup.NewClient(srv.URL)
	person, err := c.Find(context.Background(), "12345678")
	require.NoError(t, err)
	require.Equal(t, "Ana", person.Name)
	require.Equal(t, "Quispe Mamani", person.Surname)
	require.Equal(t, "San Juan", person.District)
	require.Equal(t, "1985-04-12", person.DateOfBirth)
}

func TestClient_FindNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "document not found",
		})
	}))
	defer srv.Close()

	c := lookup.NewClient(srv.URL)
	_, err := c.Find(context.Background(), "00000000")
	require.ErrorIs(t, err, lookup.ErrUnavailable)
	require.Contains(t, err.Error(), "document not found")
}

func TestClient_FindServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := lookup.NewClient(srv.URL)
	_, err := c.Find(context.Background(), "12345678")
	require.ErrorIs(t, err, lookup.ErrUnavailable)
}

func TestClient_FindConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := lookup.NewClient(srv.URL)
	_, err := c.Find(context.Background(), "12345678")
	require.ErrorIs(t, err, lookup.ErrUnavailable)
}
