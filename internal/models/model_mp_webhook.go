package models

import (
	"time"

	"gorm.io/datatypes"
)

// MPWebhook is the append-only audit copy of one inbound Mercado Pago
// notification. Rows are written once per delivery, whatever the outcome.
type MPWebhook struct {
	ID         string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	ReceivedAt time.Time      `gorm:"column:received_at;not null;index" json:"receivedAt"`
	Topic      *string        `gorm:"column:topic;type:varchar(64)" json:"topic"`
	PaymentID  *string        `gorm:"column:payment_id;type:varchar(64);index" json:"paymentId"`
	TraceID    string         `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	Headers    datatypes.JSON `gorm:"column:headers;type:jsonb" json:"headers"`
	Query      datatypes.JSON `gorm:"column:query;type:jsonb" json:"query"`
	Body       datatypes.JSON `gorm:"column:body;type:jsonb" json:"body"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (MPWebhook) TableName() string { return "mp_webhooks" }
