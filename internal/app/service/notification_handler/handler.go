package notification_handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	notificationlog "github.com/fatflowers/storefront/internal/app/service/notification_log"
	"github.com/fatflowers/storefront/internal/app/service/payment"
	"github.com/fatflowers/storefront/internal/models"
	"github.com/fatflowers/storefront/internal/platform/mercadopago"
	"github.com/fatflowers/storefront/pkg/config"
	"github.com/fatflowers/storefront/pkg/logctx"
	"github.com/fatflowers/storefront/pkg/metrics"
	"github.com/fatflowers/storefront/pkg/tool"
	"github.com/fatflowers/storefront/pkg/types"
)

// ErrNotConfigured is returned for a payment notification that cannot be
// verified because no Mercado Pago credential is configured.
var ErrNotConfigured = errors.New("missing Mercado Pago configuration")

// Notification is one inbound webhook delivery as received.
type Notification struct {
	TraceID string
	Headers map[string]any
	Query   map[string]any
	Body    map[string]any
}

// Outcome describes how a delivery was handled. Exactly one of Skipped,
// a failed fetch (Fetched false with PaymentID set) or Reconciled applies.
type Outcome struct {
	Skipped    types.WebhookSkipReason
	PaymentID  string
	Fetched    bool
	Reconciled *payment.ReconcileResult
}

type NotificationHandler struct {
	cfg      *config.Config
	notifSvc *notificationlog.Service
	paySvc   *payment.Service
	mp       *mercadopago.Client
	now      tool.Clock
	Logger   *zap.SugaredLogger
}

func NewNotificationHandler(cfg *config.Config, notif *notificationlog.Service, pay *payment.Service, mp *mercadopago.Client, now tool.Clock, log *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{cfg: cfg, notifSvc: notif, paySvc: pay, mp: mp, now: now, Logger: log}
}

// HandleNotification records the delivery, then verifies and reconciles the
// referenced payment. A non-nil error means the delivery could not be
// handled and the provider should retry.
func (h *NotificationHandler) HandleNotification(ctx context.Context, n *Notification) (*Outcome, error) {
	receivedAt := h.now()
	norm := Normalize(n.Body, n.Query)
	log := logctx.FromCtx(ctx, h.Logger).With("topic", norm.Topic, "payment_id", norm.PaymentID)
	log.Infow("mp_webhook_received")

	// best effort: Save logs its own failure
	_ = h.notifSvc.Save(ctx, &models.MPWebhook{
		ReceivedAt: receivedAt,
		Topic:      lo.EmptyableToPtr(norm.Topic),
		PaymentID:  lo.EmptyableToPtr(norm.PaymentID),
		TraceID:    n.TraceID,
		Headers:    toJSON(n.Headers),
		Query:      toJSON(n.Query),
		Body:       toJSON(n.Body),
	})

	if norm.Topic != string(types.NotificationTopicPayment) {
		log.Infow("mp_webhook_skipped", "reason", types.WebhookSkipNonPaymentTopic)
		return &Outcome{Skipped: types.WebhookSkipNonPaymentTopic}, nil
	}
	if norm.PaymentID == "" {
		log.Infow("mp_webhook_skipped", "reason", types.WebhookSkipMissingPaymentID)
		return &Outcome{Skipped: types.WebhookSkipMissingPaymentID}, nil
	}
	return h.process(ctx, norm.PaymentID, receivedAt)
}

// Refetch re-runs verification and reconciliation for a payment id outside
// of a webhook delivery. No audit row is written.
func (h *NotificationHandler) Refetch(ctx context.Context, paymentID string) (*Outcome, error) {
	return h.process(ctx, paymentID, h.now())
}

// process fetches the authoritative payment and reconciles it. A failed
// fetch is recorded on the payment record and is not an error.
func (h *NotificationHandler) process(ctx context.Context, paymentID string, now time.Time) (*Outcome, error) {
	log := logctx.FromCtx(ctx, h.Logger).With("payment_id", paymentID)

	token := h.cfg.MercadoPagoAccessToken()
	if token == "" {
		log.Warnw("mp_access_token_missing")
		return nil, ErrNotConfigured
	}

	start := time.Now()
	p, err := h.mp.GetPayment(ctx, token, paymentID)
	if err != nil {
		metrics.ObserveBusinessProcess("mp_fetch_payment", "error", start)
		status := 0
		var fetchErr *mercadopago.FetchError
		if errors.As(err, &fetchErr) {
			status = fetchErr.HTTPStatus
		}
		log.Warnw("mp_payment_fetch_failed", "http_status", status, "error", err.Error())
		if err := h.paySvc.RecordFetchFailure(ctx, paymentID, status, now); err != nil {
			return nil, err
		}
		return &Outcome{PaymentID: paymentID}, nil
	}
	metrics.ObserveBusinessProcess("mp_fetch_payment", "ok", start)

	res, err := h.paySvc.Reconcile(ctx, paymentID, p, now)
	if err != nil {
		log.Errorw("mp_payment_reconcile_failed", "error", err.Error())
		return nil, fmt.Errorf("failed to reconcile notification: %w", err)
	}
	return &Outcome{PaymentID: paymentID, Fetched: true, Reconciled: res}, nil
}

func toJSON(v map[string]any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

var Module = fx.Options(
	fx.Provide(
		func() tool.Clock { return tool.SystemClock },
		NewNotificationHandler,
	),
)
