package models

import (
	"time"

	"gorm.io/datatypes"
)

// MPPayment is the local view of a Mercado Pago payment, keyed by the
// provider's payment id. It is only ever merge-written: each writer names the
// columns it owns and every other column survives.
//
// Processed implies Payment and Status hold the latest successfully fetched
// state.
type MPPayment struct {
	ID          string          `gorm:"column:id;type:varchar(64);primary_key" json:"id"`
	Status      *string         `gorm:"column:status;type:varchar(64);index" json:"status"`
	Payment     *datatypes.JSON `gorm:"column:payment;type:jsonb" json:"payment"`
	Processed   bool            `gorm:"column:processed;not null" json:"processed"`
	ProcessedAt *time.Time      `gorm:"column:processed_at" json:"processedAt"`
	FetchedAt   *time.Time      `gorm:"column:fetched_at" json:"fetchedAt"`
	LastSeenAt  *time.Time      `gorm:"column:last_seen_at" json:"lastSeenAt"`
	LastErrorAt *time.Time      `gorm:"column:last_error_at" json:"lastErrorAt"`
	LastError   *string         `gorm:"column:last_error;type:varchar(128)" json:"lastError"`
	HTTPStatus  *int            `gorm:"column:http_status" json:"httpStatus"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (MPPayment) TableName() string { return "mp_payments" }

// Column names used by merge-writes.
const (
	MPPaymentColStatus      = "status"
	MPPaymentColPayment     = "payment"
	MPPaymentColProcessed   = "processed"
	MPPaymentColProcessedAt = "processed_at"
	MPPaymentColFetchedAt   = "fetched_at"
	MPPaymentColLastSeenAt  = "last_seen_at"
	MPPaymentColLastErrorAt = "last_error_at"
	MPPaymentColLastError   = "last_error"
	MPPaymentColHTTPStatus  = "http_status"
	MPPaymentColUpdatedAt   = "updated_at"
)

// SameStatus reports whether the stored status equals status. A nil stored
// status only matches a nil status.
func (p *MPPayment) SameStatus(status *string) bool {
	if p == nil {
		return false
	}
	if p.Status == nil || status == nil {
		return p.Status == nil && status == nil
	}
	return *p.Status == *status
}
