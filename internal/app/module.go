package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/storefront/internal/app/api/server"
	notificationhandler "github.com/fatflowers/storefront/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/storefront/internal/app/service/notification_log"
	"github.com/fatflowers/storefront/internal/app/service/payment"
	"github.com/fatflowers/storefront/internal/app/service/preference"
	"github.com/fatflowers/storefront/internal/app/service/statistics"
	"github.com/fatflowers/storefront/internal/platform/db"
	"github.com/fatflowers/storefront/internal/platform/mercadopago"
	"github.com/fatflowers/storefront/pkg/config"
	"github.com/fatflowers/storefront/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	mercadopago.Module,
	server.Module,
	notificationlog.Module,
	payment.Module,
	preference.Module,
	statistics.Module,
	notificationhandler.Module,
)
