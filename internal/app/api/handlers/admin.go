package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	nh "github.com/fatflowers/storefront/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/storefront/internal/app/service/notification_log"
	"github.com/fatflowers/storefront/internal/app/service/payment"
	"github.com/fatflowers/storefront/internal/app/service/statistics"
	"github.com/fatflowers/storefront/pkg/response"
	"github.com/fatflowers/storefront/pkg/types"
)

type ListRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

func (r *ListRequest) scanRequest() *types.ScanRequest {
	return &types.ScanRequest{Filters: r.Filters, From: r.From, Size: r.Size, SortBy: r.SortBy, SortOrder: r.SortOrder}
}

type RefetchResponse struct {
	PaymentID string          `json:"payment_id"`
	Fetched   bool            `json:"fetched"`
	Outcome   payment.Outcome `json:"outcome,omitempty"`
	Status    *string         `json:"status,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
}

func listErrorCode(err error) response.APIResponseCode {
	if errors.Is(err, types.ErrInvalidScanRequest) {
		return response.APIResponseCodeBadRequest
	}
	return response.APIResponseCodeError
}

// @Summary      List Mercado Pago payments (Admin)
// @Description  Retrieves a paginated and filterable list of reconciled payment records.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ListRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListMPPayments
// @Router       /api/v1/admin/list_mp_payments [post]
func ApiListMPPayments(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Scan(c.Request.Context(), req.scanRequest())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](listErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List Mercado Pago webhook deliveries (Admin)
// @Description  Retrieves the webhook audit log, newest first by default.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ListRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListMPWebhooks
// @Router       /api/v1/admin/list_mp_webhooks [post]
func ApiListMPWebhooks(svc *notificationlog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Scan(c.Request.Context(), req.scanRequest())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](listErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Mercado Pago payment (Admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Mercado Pago payment id"
// @Success      200  {object}  handlers.RespMPPayment
// @Router       /api/v1/admin/mp_payments/{id} [get]
func ApiGetMPPayment(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
			return
		}
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rec))
	}
}

// @Summary      Refetch Mercado Pago payment (Admin)
// @Description  Fetches the payment from Mercado Pago and reconciles it, as a webhook delivery would. Used to recover records whose last fetch failed.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Mercado Pago payment id"
// @Success      200  {object}  handlers.RespRefetch
// @Router       /api/v1/admin/mp_payments/{id}/refetch [post]
func ApiRefetchMPPayment(h *nh.NotificationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		out, err := h.Refetch(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		res := &RefetchResponse{PaymentID: id, Fetched: out.Fetched}
		if r := out.Reconciled; r != nil {
			res.Outcome = r.Outcome
			res.Status = r.Status
			res.OrderID = r.OrderID
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Payment Statistics (Admin)
// @Description  Retrieves daily webhook, payment and fetch failure counts. Only "date" filters are accepted.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body statistics.PaymentStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespPaymentStatistic
// @Router       /api/v1/admin/get_payment_statistic [post]
func ApiGetPaymentStatistic(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.PaymentStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetPaymentStatistic(c.Request.Context(), &req)
		if errors.Is(err, statistics.ErrInvalidStatisticRequest) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminPaymentRoutes(r gin.IRouter, pay *payment.Service, hooks *notificationlog.Service, h *nh.NotificationHandler, stats *statistics.Service) {
	r.POST("/list_mp_payments", ApiListMPPayments(pay))
	r.POST("/list_mp_webhooks", ApiListMPWebhooks(hooks))
	r.GET("/mp_payments/:id", ApiGetMPPayment(pay))
	r.POST("/mp_payments/:id/refetch", ApiRefetchMPPayment(h))
	r.POST("/get_payment_statistic", ApiGetPaymentStatistic(stats))
}

