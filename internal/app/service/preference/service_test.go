package preference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/storefront/internal/platform/mercadopago"
	"github.com/fatflowers/storefront/pkg/config"
)

func newTestService(t *testing.T, token string, h http.HandlerFunc) (*Service, *int) {
	t.Helper()
	t.Setenv(config.AccessTokenEnv, "")
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{MercadoPago: config.MercadoPagoConfig{AccessToken: token, BaseURL: srv.URL}}
	return NewService(cfg, mercadopago.New(cfg), zap.NewNop().Sugar()), &calls
}

func items() map[string]any {
	return map[string]any{"items": []any{map[string]any{"title": "Print", "quantity": 1, "unit_price": 10}}}
}

func TestCreate_RejectsMalformedWithoutNetwork(t *testing.T) {
	svc, calls := newTestService(t, "tok", func(w http.ResponseWriter, r *http.Request) {})

	for name, pref := range map[string]map[string]any{
		"nil":            nil,
		"no items":       {"payer": map[string]any{}},
		"items not list": {"items": map[string]any{"0": "x"}},
	} {
		_, err := svc.Create(context.Background(), pref)
		require.ErrorIs(t, err, ErrInvalidArgument, name)
	}
	require.Zero(t, *calls)
}

func TestCreate_NotConfiguredWithoutNetwork(t *testing.T) {
	svc, calls := newTestService(t, "", func(w http.ResponseWriter, r *http.Request) {})

	_, err := svc.Create(context.Background(), items())
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Zero(t, *calls)
	require.False(t, svc.Configured())
}

func TestCreate_ForwardsVerbatim(t *testing.T) {
	var got map[string]any
	svc, _ := newTestService(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://mp/1","sandbox_init_point":"https://sb/1","collector_id":7}`))
	})

	pref := items()
	pref["external_reference"] = "ORD-1"
	res, err := svc.Create(context.Background(), pref)
	require.NoError(t, err)
	require.Equal(t, &Result{ID: "pref-1", InitPoint: "https://mp/1", SandboxInitPoint: "https://sb/1"}, res)
	require.Equal(t, "ORD-1", got["external_reference"])
	require.Len(t, got["items"], 1)
	require.True(t, svc.Configured())
}

func TestCreate_SurfacesProviderMessage(t *testing.T) {
	svc, _ := newTestService(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid items.unit_price"}`))
	})

	_, err := svc.Create(context.Background(), items())
	var apiErr *mercadopago.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	require.Equal(t, "invalid items.unit_price", apiErr.Message)
}

func TestCreate_EnvCredentialWins(t *testing.T) {
	var auth string
	svc, _ := newTestService(t, "file-token", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"p"}`))
	})
	t.Setenv(config.AccessTokenEnv, "env-token")

	_, err := svc.Create(context.Background(), items())
	require.NoError(t, err)
	require.Equal(t, "Bearer env-token", auth)
}
