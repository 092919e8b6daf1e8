package types

type PaymentProvider string

const (
	PaymentProviderMercadoPago PaymentProvider = "mercadopago"
)

// NotificationTopic is the lowercased topic/type of an inbound webhook.
type NotificationTopic string

const (
	NotificationTopicPayment NotificationTopic = "payment"
)

// WebhookSkipReason explains why a delivery was acknowledged without processing.
type WebhookSkipReason string

const (
	WebhookSkipNonPaymentTopic  WebhookSkipReason = "non-payment-topic"
	WebhookSkipMissingPaymentID WebhookSkipReason = "missing-payment-id"
)

// PaymentLastErrorFetchFailed is stored on a payment record whose
// authoritative state could not be retrieved from the provider.
const PaymentLastErrorFetchFailed = "failed-to-fetch-payment"
