package notification_log

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/storefront/internal/models"
	"github.com/fatflowers/storefront/pkg/logctx"
	"github.com/fatflowers/storefront/pkg/tool"
	"github.com/fatflowers/storefront/pkg/types"
)

// Service appends raw webhook deliveries to the mp_webhooks audit table.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

var Module = fx.Options(
	fx.Provide(New),
)

// Save inserts one audit row. It is called once per delivery, before any
// validation. Failures are logged here and returned; callers carry on
// without the audit row.
func (s *Service) Save(ctx context.Context, log *models.MPWebhook) error {
	if log == nil {
		return nil
	}
	if log.ID == "" {
		log.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("mp_webhook_audit_failed", "payment_id", log.PaymentID, "error", err.Error())
		return fmt.Errorf("failed to save webhook audit: %w", err)
	}
	return nil
}

// ScanRequest mirrors the admin list contract used for transactions.
type ScanRequest = types.ScanRequest

type ScanResponse struct {
	Items []*models.MPWebhook `json:"items"`
	Total int64               `json:"total"`
}

var webhookScanColumns = types.ScanColumns{
	DefaultSort: "received_at",
	Allowed:     []string{"id", "received_at", "topic", "payment_id", "trace_id", "created_at"},
}

// Scan lists audit rows for the admin API, newest first by default.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	var rows []*models.MPWebhook
	total, err := types.Scan(s.db.WithContext(ctx).Model(&models.MPWebhook{}), req, webhookScanColumns, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}
