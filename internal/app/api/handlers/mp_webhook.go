package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	nh "github.com/fatflowers/storefront/internal/app/service/notification_handler"
	"github.com/fatflowers/storefront/pkg/fieldpath"
	"github.com/fatflowers/storefront/pkg/logctx"
	"github.com/fatflowers/storefront/pkg/types"
)

// WebhookAck is the body returned to Mercado Pago for a handled delivery.
type WebhookAck struct {
	Received  bool                    `json:"received"`
	Skipped   types.WebhookSkipReason `json:"skipped,omitempty"`
	Fetched   *bool                   `json:"fetched,omitempty"`
	PaymentID string                  `json:"paymentId,omitempty"`
}

// WebhookError is returned when a delivery could not be handled.
type WebhookError struct {
	Error string `json:"error"`
}

const (
	msgMethodNotAllowed  = "Method not allowed"
	msgMissingMPConfig   = "Missing Mercado Pago configuration"
	msgInternalServerErr = "Internal server error"
)

// @Summary      Mercado Pago Webhook
// @Description  Receives classic and v2 Mercado Pago notifications. Payment notifications are verified against the Mercado Pago API and reconciled idempotently. Non-payment topics and notifications without a payment id are acknowledged and skipped.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        topic    query  string  false  "Classic notification topic"
// @Param        id       query  string  false  "Classic notification resource id"
// @Param        payload  body   object  false  "Notification body"
// @Success      200  {object}  handlers.WebhookAck
// @Failure      405  {object}  handlers.WebhookError
// @Failure      500  {object}  handlers.WebhookError
// @Router       /mpWebhook [post]
func ApiMPWebhook(h *nh.NotificationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodOptions:
			c.Status(http.StatusOK)
			return
		case http.MethodPost:
		default:
			c.JSON(http.StatusMethodNotAllowed, WebhookError{Error: msgMethodNotAllowed})
			return
		}

		log := logctx.FromGin(c, h.Logger)
		raw, err := c.GetRawData()
		if err != nil {
			log.Warnw("mp_webhook_body_unreadable", "error", err.Error())
		}

		out, err := h.HandleNotification(c.Request.Context(), &nh.Notification{
			TraceID: c.GetString(logctx.GinTraceIDKey),
			Headers: firstValues(c.Request.Header, strings.ToLower),
			Query:   firstValues(c.Request.URL.Query(), nil),
			Body:    fieldpath.Decode(raw),
		})
		switch {
		case errors.Is(err, nh.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, WebhookError{Error: msgMissingMPConfig})
			return
		case err != nil:
			log.Errorw("mp_webhook_failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, WebhookError{Error: msgInternalServerErr})
			return
		}

		ack := WebhookAck{Received: true}
		switch {
		case out.Skipped != "":
			ack.Skipped = out.Skipped
		case !out.Fetched:
			ack.Fetched = &out.Fetched
		default:
			ack.PaymentID = out.PaymentID
		}
		c.JSON(http.StatusOK, ack)
	}
}

// firstValues flattens multi-valued headers or query parameters to their
// first value, optionally rewriting keys.
func firstValues(in map[string][]string, key func(string) string) map[string]any {
	out := make(map[string]any, len(in))
	for k, vs := range in {
		if len(vs) == 0 {
			continue
		}
		if key != nil {
			k = key(k)
		}
		out[k] = vs[0]
	}
	return out
}

func RegisterMPWebhookRoutes(r gin.IRouter, h *nh.NotificationHandler) {
	r.Any("/mpWebhook", ApiMPWebhook(h))
}
