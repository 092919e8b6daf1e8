package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPayment_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payments/999", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": 999, "status": "approved", "external_reference": "ORD-1"}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientOptions{BaseURL: srv.URL + "/"})
	p, err := c.GetPayment(context.Background(), "tok", "999")
	require.NoError(t, err)
	require.Equal(t, "approved", *p.Status())
	require.Equal(t, "ORD-1", p.ExternalReference())
	require.Equal(t, json.Number("999"), p["id"])
}

func TestGetPayment_NonSuccessIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"payment not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(&ClientOptions{BaseURL: srv.URL}).GetPayment(context.Background(), "tok", "1")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, http.StatusNotFound, fe.HTTPStatus)
	require.Equal(t, "1", fe.PaymentID)
}

func TestGetPayment_UnparsableBodyIsFetchError(t *testing.T) {
	for _, body := range []string{"<html>oops</html>", "null", "[1,2]"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		}))
		_, err := NewClient(&ClientOptions{BaseURL: srv.URL}).GetPayment(context.Background(), "tok", "1")
		srv.Close()

		var fe *FetchError
		require.True(t, errors.As(err, &fe), body)
		require.Equal(t, http.StatusOK, fe.HTTPStatus, body)
	}
}

func TestGetPayment_TransportErrorHasZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(&ClientOptions{BaseURL: url}).GetPayment(context.Background(), "tok", "1")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Zero(t, fe.HTTPStatus)
	require.Error(t, fe.Unwrap())
}

func TestPayment_StatusFallbacks(t *testing.T) {
	p := Payment{"body": map[string]any{"status": "pending"}}
	require.Equal(t, "pending", *p.Status())

	require.Nil(t, Payment{}.Status())

	p = Payment{"metadata": map[string]any{"external_reference": "ORD-9"}}
	require.Equal(t, "ORD-9", p.ExternalReference())
	require.Empty(t, Payment{}.ExternalReference())
}

func TestCreatePreference_ForwardsVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, "ORD-1", got["external_reference"])
		require.Len(t, got["items"], 1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://mp/init","sandbox_init_point":"https://mp/sandbox","collector_id":7}`))
	}))
	defer srv.Close()

	pref := map[string]any{
		"items":              []any{map[string]any{"title": "Print", "quantity": 1, "unit_price": 10}},
		"external_reference": "ORD-1",
	}
	out, err := NewClient(&ClientOptions{BaseURL: srv.URL}).CreatePreference(context.Background(), "tok", pref)
	require.NoError(t, err)
	require.Equal(t, &PreferenceResponse{ID: "pref-1", InitPoint: "https://mp/init", SandboxInitPoint: "https://mp/sandbox"}, out)
}

func TestCreatePreference_ProviderMessage(t *testing.T) {
	cases := map[string]string{
		`{"message":"invalid items","error":"bad_request"}`: "invalid items",
		`{"error":"unauthorized"}`:                           "unauthorized",
		`gateway timeout`:                                    "failed to create preference",
	}
	for body, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, body)
		}))
		_, err := NewClient(&ClientOptions{BaseURL: srv.URL}).CreatePreference(context.Background(), "tok", map[string]any{"items": []any{}})
		srv.Close()

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr), body)
		require.Equal(t, want, apiErr.Message)
		require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	}
}
