package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atelieperto/atelieperto/internal/client/models"
	"github.com/atelieperto/atelieperto/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func TestLogin_OK(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "maria", req.Username)
		assert.Equal(t, "12345", req.Password)

		json.NewEncoder(w).Encode(models.User{ID: 1, Username: "maria", Token: "jwt-abc"})
	}))

	user, err := c.Login(context.Background(), "maria", "12345")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "jwt-abc", user.Token)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest} {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(messageResponse{Message: "credenciais inválidas"})
		}))

		user, err := c.Login(context.Background(), "maria", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, common.ErrInvalidCredentials, "status %d", status)
	}
}

func TestLogin_ServerErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Login(context.Background(), "maria", "12345")
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestLogin_DeadServerIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL, time.Second)

	_, err := c.Login(context.Background(), "maria", "12345")
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestProvidersAndFeatured(t *testing.T) {
	all := []models.Provider{
		{ID: 1, Name: "Maria Silva Santos", Services: []string{"Bordados"}},
		{ID: 2, Name: "Ana Paula Oliveira", Services: []string{"Ajustes"}},
	}
	feat := []models.Provider{{ID: 101, Name: "Maria Silva Santos"}}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/api/providers":
			json.NewEncoder(w).Encode(all)
		case "/api/providers/featured":
			json.NewEncoder(w).Encode(feat)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	got, err := c.Providers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all, got)

	got, err = c.Featured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, feat, got)
}

func TestProfile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/providers/3", r.URL.Path)
		json.NewEncoder(w).Encode(models.Profile{
			ID:   3,
			Name: "Carla Mendes Costa",
			Offers: []models.ServiceOffer{
				{Name: "Customização", PriceRange: "R$ 40-90"},
			},
			Reviews: []models.Review{
				{ID: 1, CustomerName: "Fernanda", Rating: 5, Comment: "Excelente!"},
			},
		})
	}))

	p, err := c.Profile(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Carla Mendes Costa", p.Name)
	require.Len(t, p.Offers, 1)
	require.Len(t, p.Reviews, 1)
}

func TestProfile_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	p, err := c.Profile(context.Background(), 99)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPing(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/healthz", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	}))

	assert.NoError(t, c.Ping(context.Background()))
}
