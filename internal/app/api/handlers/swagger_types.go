package handlers

import (
	notificationlog "github.com/fatflowers/storefront/internal/app/service/notification_log"
	"github.com/fatflowers/storefront/internal/app/service/payment"
	"github.com/fatflowers/storefront/internal/app/service/preference"
	"github.com/fatflowers/storefront/internal/app/service/statistics"
	"github.com/fatflowers/storefront/internal/models"
	"github.com/fatflowers/storefront/pkg/response"
)

// Envelope types below exist for swagger generation only.

// RespListMPPayments wraps a payment page in the standard envelope.
type RespListMPPayments struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    payment.ScanResponse     `json:"data"`
}

// RespListMPWebhooks wraps a webhook audit page in the standard envelope.
type RespListMPWebhooks struct {
	Code    response.APIResponseCode     `json:"code"`
	Message string                       `json:"message"`
	Data    notificationlog.ScanResponse `json:"data"`
}

type RespMPPayment struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.MPPayment         `json:"data"`
}

type RespRefetch struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    RefetchResponse          `json:"data"`
}

// RespPaymentStatistic wraps PaymentStatisticResponse in the standard envelope.
type RespPaymentStatistic struct {
	Code    response.APIResponseCode            `json:"code"`
	Message string                              `json:"message"`
	Data    statistics.PaymentStatisticResponse `json:"data"`
}

// CallableCreatePreference is the callable request envelope of mpCreatePreference.
type CallableCreatePreference struct {
	Data CreatePreferenceRequest `json:"data"`
}

type RespCreatePreference struct {
	Result preference.Result `json:"result"`
}

type RespCheckConfig struct {
	Result CheckConfigResponse `json:"result"`
}
