package payment

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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/storefront/internal/models"
	"github.com/fatflowers/storefront/internal/platform/mercadopago"
	"github.com/fatflowers/storefront/pkg/logctx"
	"github.com/fatflowers/storefront/pkg/metrics"
	"github.com/fatflowers/storefront/pkg/types"
)

var ErrNotFound = errors.New("payment not found")

type Outcome string

const (
	// OutcomeProcessed: first sighting or a status change; the record was fully written.
	OutcomeProcessed Outcome = "processed"
	// OutcomeReplayed: already processed with the same status; only last_seen_at was touched.
	OutcomeReplayed Outcome = "replayed"
)

type ReconcileResult struct {
	PaymentID string  `json:"payment_id"`
	Status    *string `json:"status"`
	Outcome   Outcome `json:"outcome"`
	// OrderID is the order that received the new status, empty when none did.
	OrderID string `json:"order_id,omitempty"`
}

// Service owns the mp_payments table and the payment columns of orders.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Reconcile applies an authoritative payment payload to the local record in
// one transaction.
//
// The row is created empty if missing and then locked, so concurrent
// deliveries for the same id serialize here; different ids never contend.
// A payment already processed with the same status is only touched
// (last_seen_at). Otherwise the record is fully merge-written and the status
// is propagated to the first order whose external_reference matches.
//
// Only store failures are returned as errors.
func (s *Service) Reconcile(ctx context.Context, paymentID string, payment mercadopago.Payment, now time.Time) (*ReconcileResult, error) {
	start := time.Now()
	raw, err := json.Marshal(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment %s: %w", paymentID, err)
	}

	log := logctx.FromCtx(ctx, s.log).With("payment_id", paymentID)
	res := &ReconcileResult{PaymentID: paymentID, Status: payment.Status()}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev, err := s.lockPayment(tx, paymentID)
		if err != nil {
			return err
		}

		if prev.Processed && prev.SameStatus(res.Status) {
			res.Outcome = OutcomeReplayed
			return s.mergePayment(tx, paymentID, map[string]any{
				models.MPPaymentColLastSeenAt: now,
			})
		}

		res.Outcome = OutcomeProcessed
		if err := s.mergePayment(tx, paymentID, map[string]any{
			models.MPPaymentColFetchedAt:   now,
			models.MPPaymentColPayment:     datatypes.JSON(raw),
			models.MPPaymentColStatus:      res.Status,
			models.MPPaymentColProcessed:   true,
			models.MPPaymentColProcessedAt: now,
			models.MPPaymentColUpdatedAt:   now,
		}); err != nil {
			return err
		}

		ref := payment.ExternalReference()
		if ref == "" {
			return nil
		}
		order, err := s.findOrder(tx, ref)
		if err != nil {
			// not every payment belongs to a tracked order; a failed lookup is not fatal
			log.Warnw("mp_order_lookup_failed", "external_reference", ref, "error", err.Error())
			return nil
		}
		if order == nil {
			log.Infow("mp_order_not_found", "external_reference", ref)
			return nil
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).UpdateColumns(map[string]any{
			models.OrderColPaymentStatus: res.Status,
			models.OrderColMPPaymentID:   paymentID,
			models.OrderColUpdatedAt:     now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update order %s: %w", order.ID, err)
		}
		res.OrderID = order.ID
		return nil
	})
	if err != nil {
		metrics.ObserveBusinessProcess("mp_reconcile", "error", start)
		return nil, fmt.Errorf("failed to reconcile payment %s: %w", paymentID, err)
	}

	metrics.ObserveBusinessProcess("mp_reconcile", string(res.Outcome), start)
	log.Infow("mp_payment_reconciled", "outcome", res.Outcome, "status", lo.FromPtr(res.Status), "order_id", res.OrderID)
	return res, nil
}

// lockPayment ensures the row exists and returns it under a row lock.
func (s *Service) lockPayment(tx *gorm.DB, paymentID string) (*models.MPPayment, error) {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.MPPayment{ID: paymentID}).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure payment row: %w", err)
	}
	var prev models.MPPayment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", paymentID).Take(&prev).Error; err != nil {
		return nil, fmt.Errorf("failed to lock payment row: %w", err)
	}
	return &prev, nil
}

func (s *Service) mergePayment(tx *gorm.DB, paymentID string, fields map[string]any) error {
	if err := tx.Model(&models.MPPayment{}).Where("id = ?", paymentID).UpdateColumns(fields).Error; err != nil {
		return fmt.Errorf("failed to merge payment: %w", err)
	}
	return nil
}

// findOrder runs inside a savepoint so a failed lookup leaves the outer
// transaction usable.
func (s *Service) findOrder(tx *gorm.DB, externalRef string) (*models.Order, error) {
	var orders []*models.Order
	err := tx.Transaction(func(sp *gorm.DB) error {
		return sp.Where(models.OrderColExternalReference+" = ?", externalRef).
			Order("created_at asc").
			Limit(1).
			Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return orders[0], nil
}

// RecordFetchFailure merges the fetch error columns onto the payment record,
// creating it if needed. Status and payload from earlier fetches survive.
func (s *Service) RecordFetchFailure(ctx context.Context, paymentID string, httpStatus int, now time.Time) error {
	rec := &models.MPPayment{
		ID:          paymentID,
		LastErrorAt: &now,
		LastError:   lo.ToPtr(types.PaymentLastErrorFetchFailed),
		HTTPStatus:  &httpStatus,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			models.MPPaymentColLastErrorAt,
			models.MPPaymentColLastError,
			models.MPPaymentColHTTPStatus,
			models.MPPaymentColUpdatedAt,
		}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to record fetch failure for payment %s: %w", paymentID, err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, paymentID string) (*models.MPPayment, error) {
	var rec models.MPPayment
	err := s.db.WithContext(ctx).Where("id = ?", paymentID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment %s: %w", paymentID, err)
	}
	return &rec, nil
}

type ScanResponse struct {
	Items []*models.MPPayment `json:"items"`
	Total int64               `json:"total"`
}

var paymentScanColumns = types.ScanColumns{
	DefaultSort: "updated_at",
	Allowed: []string{
		"id", "status", "processed", "processed_at", "fetched_at", "last_seen_at",
		"last_error_at", "last_error", "http_status", "created_at", "updated_at",
	},
}

// Scan implements paginated/admin listing with filters
func (s *Service) Scan(ctx context.Context, req *types.ScanRequest) (*ScanResponse, error) {
	var rows []*models.MPPayment
	total, err := types.Scan(s.db.WithContext(ctx).Model(&models.MPPayment{}), req, paymentScanColumns, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
