package notification_handler

import (
	"regexp"
	"strings"

	"github.com/fatflowers/storefront/pkg/fieldpath"
)

// Source names the document a candidate path is read from.
type Source int

const (
	SourceBody Source = iota
	SourceQuery
)

// Candidate is one place a notification field may be found.
type Candidate struct {
	Source Source
	Path   fieldpath.Path
}

// Mercado Pago sends classic (topic + id in the query) and v2 (type + data.id
// in the body) notifications. The first truthy candidate wins, in order.
var (
	topicPaths = []Candidate{
		{SourceBody, fieldpath.Path{"type"}},
		{SourceBody, fieldpath.Path{"topic"}},
		{SourceQuery, fieldpath.Path{"type"}},
		{SourceQuery, fieldpath.Path{"topic"}},
	}
	paymentIDPaths = []Candidate{
		{SourceBody, fieldpath.Path{"data", "id"}},
		{SourceBody, fieldpath.Path{"id"}},
		{SourceQuery, fieldpath.Path{"id"}},
		// literal "data.id" key, as sent in the query string
		{SourceQuery, fieldpath.Path{"data.id"}},
	}
	// resourcePath is consulted last; its value is a URL such as
	// https://api.mercadopago.com/v1/payments/123.
	resourcePath = fieldpath.Path{"resource"}
	resourceRe   = regexp.MustCompile(`/payments/(\d+)`)
)

// Normalized is the canonical (topic, payment id) pair of a notification.
// Empty strings mean the value could not be resolved.
type Normalized struct {
	Topic     string
	PaymentID string
}

// Normalize never fails; nil body or query behave as empty objects.
func Normalize(body, query map[string]any) Normalized {
	var n Normalized
	if topic, ok := first(body, query, topicPaths); ok {
		n.Topic = strings.ToLower(topic)
	}
	if id, ok := first(body, query, paymentIDPaths); ok {
		n.PaymentID = id
		return n
	}
	if v, ok := fieldpath.Lookup(body, resourcePath); ok {
		if s, isString := v.(string); isString {
			if m := resourceRe.FindStringSubmatch(s); m != nil {
				n.PaymentID = m[1]
			}
		}
	}
	return n
}

func first(body, query map[string]any, candidates []Candidate) (string, bool) {
	for _, c := range candidates {
		doc := body
		if c.Source == SourceQuery {
			doc = query
		}
		v, ok := fieldpath.Lookup(doc, c.Path)
		if !ok {
			continue
		}
		if s, ok := fieldpath.Text(v); ok {
			return s, true
		}
	}
	return "", false
}
