package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/storefront/internal/platform/mercadopago"
	"github.com/fatflowers/storefront/pkg/config"
	"github.com/fatflowers/storefront/pkg/logctx"
	"github.com/fatflowers/storefront/pkg/metrics"
)

var (
	ErrInvalidArgument = errors.New("invalid preference")
	ErrNotConfigured   = errors.New("Mercado Pago is not configured, set MP_ACCESS_TOKEN")
)

// Result holds the checkout redirect targets for a created preference.
type Result struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type Service struct {
	cfg    *config.Config
	client *mercadopago.Client
	log    *zap.SugaredLogger
}

func NewService(cfg *config.Config, client *mercadopago.Client, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, client: client, log: log}
}

// Configured reports whether a Mercado Pago credential can be resolved.
func (s *Service) Configured() bool {
	return s.cfg.MercadoPagoAccessToken() != ""
}

// Create validates the preference and forwards it unchanged to the provider.
// Input and credential problems are rejected before any network call.
// Nothing is persisted.
func (s *Service) Create(ctx context.Context, preference map[string]any) (*Result, error) {
	if preference == nil {
		return nil, ErrInvalidArgument
	}
	if _, ok := preference["items"].([]any); !ok {
		return nil, ErrInvalidArgument
	}
	token := s.cfg.MercadoPagoAccessToken()
	if token == "" {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	resp, err := s.client.CreatePreference(ctx, token, preference)
	if err != nil {
		metrics.ObserveBusinessProcess("mp_preference", "error", start)
		logctx.FromCtx(ctx, s.log).Warnw("mp_preference_failed", "error", err.Error())
		return nil, fmt.Errorf("failed to create preference: %w", err)
	}
	metrics.ObserveBusinessProcess("mp_preference", "ok", start)
	logctx.FromCtx(ctx, s.log).Infow("mp_preference_created", "preference_id", resp.ID)

	return &Result{ID: resp.ID, InitPoint: resp.InitPoint, SandboxInitPoint: resp.SandboxInitPoint}, nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
