package notification_handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/storefront/pkg/fieldpath"
)

func TestNormalize_V2Body(t *testing.T) {
	body := fieldpath.Decode([]byte(`{"type":"payment","data":{"id":"999"}}`))
	require.Equal(t, Normalized{Topic: "payment", PaymentID: "999"}, Normalize(body, nil))
}

func TestNormalize_NumericIDKeepsDigits(t *testing.T) {
	body := fieldpath.Decode([]byte(`{"type":"payment","data":{"id":123456789012}}`))
	require.Equal(t, "123456789012", Normalize(body, nil).PaymentID)
}

func TestNormalize_ClassicQuery(t *testing.T) {
	query := map[string]any{"topic": "PAYMENT", "id": "42"}
	require.Equal(t, Normalized{Topic: "payment", PaymentID: "42"}, Normalize(nil, query))
}

func TestNormalize_QueryDottedKey(t *testing.T) {
	query := map[string]any{"type": "payment", "data.id": "7"}
	require.Equal(t, "7", Normalize(map[string]any{}, query).PaymentID)
}

func TestNormalize_ResourceURL(t *testing.T) {
	body := map[string]any{"topic": "payment", "resource": "https://api.mercadopago.com/v1/payments/555"}
	require.Equal(t, Normalized{Topic: "payment", PaymentID: "555"}, Normalize(body, nil))

	body = map[string]any{"topic": "payment", "resource": "https://api.mercadopago.com/merchant_orders/9"}
	require.Empty(t, Normalize(body, nil).PaymentID)

	body = map[string]any{"topic": "payment", "resource": map[string]any{"url": "/payments/1"}}
	require.Empty(t, Normalize(body, nil).PaymentID)
}

func TestNormalize_Precedence(t *testing.T) {
	body := map[string]any{"type": "payment", "topic": "merchant_order", "data": map[string]any{"id": "1"}, "id": "2"}
	query := map[string]any{"type": "plan", "id": "3", "data.id": "4"}
	require.Equal(t, Normalized{Topic: "payment", PaymentID: "1"}, Normalize(body, query))

	// falsy values fall through to the next candidate
	body = map[string]any{"type": "", "topic": "payment", "data": map[string]any{"id": json.Number("0")}, "id": "2"}
	require.Equal(t, Normalized{Topic: "payment", PaymentID: "2"}, Normalize(body, query))

	// body id wins over the resource URL
	body = map[string]any{"id": "8", "resource": "/v1/payments/9"}
	require.Equal(t, "8", Normalize(body, nil).PaymentID)
}

func TestNormalize_Malformed(t *testing.T) {
	require.Equal(t, Normalized{}, Normalize(nil, nil))
	require.Equal(t, Normalized{}, Normalize(fieldpath.Decode([]byte(`not json`)), nil))
	require.Equal(t, Normalized{}, Normalize(fieldpath.Decode([]byte(`[1,2]`)), nil))
	require.Equal(t, Normalized{}, Normalize(map[string]any{"data": "oops", "type": []any{"payment"}}, nil))
}

func TestCandidateTables(t *testing.T) {
	require.Equal(t, fieldpath.Path{"type"}, topicPaths[0].Path)
	require.Equal(t, SourceQuery, topicPaths[len(topicPaths)-1].Source)
	require.Equal(t, fieldpath.Path{"data", "id"}, paymentIDPaths[0].Path)
	require.Equal(t, fieldpath.Path{"data.id"}, paymentIDPaths[len(paymentIDPaths)-1].Path)
}
