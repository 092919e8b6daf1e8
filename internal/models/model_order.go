package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order is owned by the storefront checkout. The payment pipeline only looks
// orders up by ExternalReference and merge-writes the payment columns.
type Order struct {
	ID                string         `gorm:"column:id;type:varchar(64);primary_key" json:"id"`
	ExternalReference string         `gorm:"column:external_reference;type:varchar(128);index" json:"external_reference"`
	PaymentStatus     *string        `gorm:"column:payment_status;type:varchar(64)" json:"paymentStatus"`
	MPPaymentID       *string        `gorm:"column:mp_payment_id;type:varchar(64)" json:"mpPaymentId"`
	Data              datatypes.JSON `gorm:"column:data;type:jsonb" json:"data"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

const (
	OrderColExternalReference = "external_reference"
	OrderColPaymentStatus     = "payment_status"
	OrderColMPPaymentID       = "mp_payment_id"
	OrderColUpdatedAt         = "updated_at"
)
