package notification_handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	notificationlog "github.com/fatflowers/storefront/internal/app/service/notification_log"
	"github.com/fatflowers/storefront/internal/app/service/payment"
	"github.com/fatflowers/storefront/internal/models"
	"github.com/fatflowers/storefront/internal/platform/dbtest"
	"github.com/fatflowers/storefront/internal/platform/mercadopago"
	"github.com/fatflowers/storefront/pkg/config"
	"github.com/fatflowers/storefront/pkg/fieldpath"
	"github.com/fatflowers/storefront/pkg/types"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	h     *NotificationHandler
	db    *gorm.DB
	calls *atomic.Int32
}

func newFixture(t *testing.T, token string, mp http.HandlerFunc) *fixture {
	t.Helper()
	t.Setenv(config.AccessTokenEnv, "")
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		mp(w, r)
	}))
	t.Cleanup(srv.Close)

	gdb := dbtest.Open(t)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{MercadoPago: config.MercadoPagoConfig{AccessToken: token, BaseURL: srv.URL}}
	h := NewNotificationHandler(cfg,
		notificationlog.New(gdb, log),
		payment.NewService(gdb, log),
		mercadopago.New(cfg),
		func() time.Time { return fixedNow },
		log,
	)
	return &fixture{h: h, db: gdb, calls: calls}
}

func payments(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestHandleNotification_ConcreteScenario(t *testing.T) {
	f := newFixture(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/999", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"approved","external_reference":"ORD-1"}`))
	})
	require.NoError(t, f.db.Create(&models.Order{ID: "o-1", ExternalReference: "ORD-1"}).Error)

	out, err := f.h.HandleNotification(context.Background(), &Notification{
		TraceID: "trace-1",
		Headers: map[string]any{"x-request-id": "abc"},
		Body:    fieldpath.Decode([]byte(`{"type":"payment","data":{"id":"999"}}`)),
	})
	require.NoError(t, err)
	require.Equal(t, "999", out.PaymentID)
	require.True(t, out.Fetched)
	require.Equal(t, payment.OutcomeProcessed, out.Reconciled.Outcome)

	var hooks []models.MPWebhook
	require.NoError(t, f.db.Find(&hooks).Error)
	require.Len(t, hooks, 1)
	require.Equal(t, "payment", lo.FromPtr(hooks[0].Topic))
	require.Equal(t, "999", lo.FromPtr(hooks[0].PaymentID))
	require.Equal(t, "trace-1", hooks[0].TraceID)
	require.True(t, hooks[0].ReceivedAt.Equal(fixedNow))
	require.JSONEq(t, `{"type":"payment","data":{"id":"999"}}`, string(hooks[0].Body))
	require.JSONEq(t, `{}`, string(hooks[0].Query))

	var rec models.MPPayment
	require.NoError(t, f.db.Where("id = ?", "999").Take(&rec).Error)
	require.Equal(t, "approved", lo.FromPtr(rec.Status))
	require.True(t, rec.Processed)

	var order models.Order
	require.NoError(t, f.db.Where("id = ?", "o-1").Take(&order).Error)
	require.Equal(t, "approved", lo.FromPtr(order.PaymentStatus))
	require.Equal(t, "999", lo.FromPtr(order.MPPaymentID))
}

func TestHandleNotification_SkipsNonPaymentTopic(t *testing.T) {
	f := newFixture(t, "tok", payments(`{}`))

	out, err := f.h.HandleNotification(context.Background(), &Notification{
		Query: map[string]any{"topic": "merchant_order", "id": "5"},
	})
	require.NoError(t, err)
	require.Equal(t, types.WebhookSkipNonPaymentTopic, out.Skipped)
	require.Zero(t, f.calls.Load())
	require.EqualValues(t, 1, f.count(t, &models.MPWebhook{}))
	require.Zero(t, f.count(t, &models.MPPayment{}))
}

func TestHandleNotification_NoTopicIsSkippedAndAuditedWithNulls(t *testing.T) {
	f := newFixture(t, "tok", payments(`{}`))

	out, err := f.h.HandleNotification(context.Background(), &Notification{})
	require.NoError(t, err)
	require.Equal(t, types.WebhookSkipNonPaymentTopic, out.Skipped)

	var hook models.MPWebhook
	require.NoError(t, f.db.Take(&hook).Error)
	require.Nil(t, hook.Topic)
	require.Nil(t, hook.PaymentID)
}

func TestHandleNotification_MissingPaymentID(t *testing.T) {
	f := newFixture(t, "tok", payments(`{}`))

	out, err := f.h.HandleNotification(context.Background(), &Notification{Body: map[string]any{"type": "payment"}})
	require.NoError(t, err)
	require.Equal(t, types.WebhookSkipMissingPaymentID, out.Skipped)
	require.Zero(t, f.calls.Load())
}

func TestHandleNotification_MissingCredential(t *testing.T) {
	f := newFixture(t, "", payments(`{"status":"approved"}`))

	_, err := f.h.HandleNotification(context.Background(), &Notification{
		Body: map[string]any{"type": "payment", "data": map[string]any{"id": "1"}},
	})
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Zero(t, f.calls.Load())
	require.Zero(t, f.count(t, &models.MPPayment{}))
	require.EqualValues(t, 1, f.count(t, &models.MPWebhook{}))
}

func TestHandleNotification_FetchFailureIsRecorded(t *testing.T) {
	f := newFixture(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Payment not found"}`))
	})

	out, err := f.h.HandleNotification(context.Background(), &Notification{
		Body: map[string]any{"type": "payment", "data": map[string]any{"id": "404"}},
	})
	require.NoError(t, err)
	require.False(t, out.Fetched)
	require.Equal(t, "404", out.PaymentID)
	require.Nil(t, out.Reconciled)

	var rec models.MPPayment
	require.NoError(t, f.db.Where("id = ?", "404").Take(&rec).Error)
	require.False(t, rec.Processed)
	require.Equal(t, types.PaymentLastErrorFetchFailed, lo.FromPtr(rec.LastError))
	require.Equal(t, http.StatusNotFound, lo.FromPtr(rec.HTTPStatus))
	require.True(t, rec.LastErrorAt.Equal(fixedNow))
}

func TestHandleNotification_UnparsableFetchBody(t *testing.T) {
	f := newFixture(t, "tok", payments(`<html>oops</html>`))

	out, err := f.h.HandleNotification(context.Background(), &Notification{
		Query: map[string]any{"topic": "payment", "id": "12"},
	})
	require.NoError(t, err)
	require.False(t, out.Fetched)

	var rec models.MPPayment
	require.NoError(t, f.db.Where("id = ?", "12").Take(&rec).Error)
	require.Equal(t, http.StatusOK, lo.FromPtr(rec.HTTPStatus))
}

func TestHandleNotification_ReplayAuditsEveryDelivery(t *testing.T) {
	f := newFixture(t, "tok", payments(`{"status":"approved"}`))
	n := &Notification{Body: map[string]any{"type": "payment", "data": map[string]any{"id": "1"}}}

	outcomes := []payment.Outcome{}
	for i := 0; i < 3; i++ {
		out, err := f.h.HandleNotification(context.Background(), n)
		require.NoError(t, err)
		outcomes = append(outcomes, out.Reconciled.Outcome)
	}
	require.Equal(t, []payment.Outcome{payment.OutcomeProcessed, payment.OutcomeReplayed, payment.OutcomeReplayed}, outcomes)
	require.EqualValues(t, 3, f.count(t, &models.MPWebhook{}))
	require.EqualValues(t, 1, f.count(t, &models.MPPayment{}))
}

func TestRefetch_RecoversAfterFetchFailure(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	f := newFixture(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"status":"approved"}`))
	})

	out, err := f.h.HandleNotification(context.Background(), &Notification{
		Body: map[string]any{"type": "payment", "data": map[string]any{"id": "31"}},
	})
	require.NoError(t, err)
	require.False(t, out.Fetched)

	fail.Store(false)
	out, err = f.h.Refetch(context.Background(), "31")
	require.NoError(t, err)
	require.True(t, out.Fetched)
	require.Equal(t, payment.OutcomeProcessed, out.Reconciled.Outcome)
	require.EqualValues(t, 1, f.count(t, &models.MPWebhook{}))

	var rec models.MPPayment
	require.NoError(t, f.db.Where("id = ?", "31").Take(&rec).Error)
	require.True(t, rec.Processed)
	require.Equal(t, http.StatusBadGateway, lo.FromPtr(rec.HTTPStatus))
}
