package statistics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/storefront/internal/models"
	"github.com/fatflowers/storefront/pkg/types"
)

type StatisticType string

const (
	// Webhook deliveries per received date, labelled by topic
	StatisticTypeDailyWebhookCount StatisticType = "daily_webhook_count"
	// Reconciled payments per processed date, labelled by status
	StatisticTypeDailyPaymentCount StatisticType = "daily_payment_count"
	// Failed fetches per last error date, labelled by http status
	StatisticTypeDailyFetchFailureCount StatisticType = "daily_fetch_failure_count"
	// All payment records, labelled by status
	StatisticTypeTotalPaymentCount StatisticType = "total_payment_count"
)

// FilterFieldDate is the only filter field; it applies to the date column of
// each statistic.
const FilterFieldDate = "date"

var ErrInvalidStatisticRequest = errors.New("invalid statistic request")

type PaymentStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type PaymentStatisticRequest struct {
	Filters   []*types.CommonFilter       `json:"filters"`
	DataItems []*PaymentStatisticDataItem `json:"data_items"`
}

// dateFilter rebinds the request's date filters to column.
type dateFilter struct {
	filters []*types.CommonFilter
	column  string
}

func (f dateFilter) Build(builder clause.Builder) {
	if len(f.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, filter := range f.filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		bound := *filter
		bound.Field = f.column
		bound.Build(builder)
	}
}

func (r *PaymentStatisticRequest) validate() error {
	if r == nil || len(r.DataItems) == 0 {
		return fmt.Errorf("%w: no data items", ErrInvalidStatisticRequest)
	}
	for _, f := range r.Filters {
		if f == nil || f.Field != FilterFieldDate {
			return fmt.Errorf("%w: only %q filters are supported", ErrInvalidStatisticRequest, FilterFieldDate)
		}
		if len(f.Values) == 0 {
			return fmt.Errorf("%w: filter without values", ErrInvalidStatisticRequest)
		}
	}
	for _, di := range r.DataItems {
		if di == nil {
			return fmt.Errorf("%w: nil data item", ErrInvalidStatisticRequest)
		}
	}
	return nil
}

type PaymentStatisticResponseDataItem struct {
	Date  string `json:"date,omitempty"`
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
}

type PaymentStatisticResponse struct {
	DataItems map[StatisticType][]PaymentStatisticResponseDataItem `json:"data_items"`
}

// Service provides statistics operations
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

var Module = fx.Options(
	fx.Provide(New),
)

// dayExpr renders column as a YYYY-MM-DD string in the connected dialect.
func (s *Service) dayExpr(column string) string {
	if s.db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
	}
	return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM-DD')", column)
}

// Internal helpers for various stats
func (s *Service) daily(ctx context.Context, request *PaymentStatisticRequest, model any, dateCol, labelCol string) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	day := s.dayExpr(dateCol)
	q := s.db.WithContext(ctx).Model(model).
		Select(fmt.Sprintf("%s as date, COALESCE(CAST(%s AS TEXT), '') as label, count(*) as value", day, labelCol)).
		Where(dateCol+" IS NOT NULL").
		Where(clause.Where{Exprs: []clause.Expression{dateFilter{filters: request.Filters, column: dateCol}}}).
		Group(day).
		Group(labelCol).
		Order("date DESC").
		Order("label")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalPaymentCount(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.db.WithContext(ctx).Model(&models.MPPayment{}).
		Select("COALESCE(status, '') as label, count(*) as value").
		Where(clause.Where{Exprs: []clause.Expression{dateFilter{filters: request.Filters, column: "created_at"}}}).
		Group("status").
		Order("label")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getPaymentStatistic(ctx context.Context, request *PaymentStatisticRequest, dataItem *PaymentStatisticDataItem) ([]PaymentStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeDailyWebhookCount:
		return s.daily(ctx, request, &models.MPWebhook{}, "received_at", "topic")
	case StatisticTypeDailyPaymentCount:
		return s.daily(ctx, request, &models.MPPayment{}, models.MPPaymentColProcessedAt, models.MPPaymentColStatus)
	case StatisticTypeDailyFetchFailureCount:
		return s.daily(ctx, request, &models.MPPayment{}, models.MPPaymentColLastErrorAt, models.MPPaymentColHTTPStatus)
	case StatisticTypeTotalPaymentCount:
		return s.getTotalPaymentCount(ctx, request)
	default:
		return nil, fmt.Errorf("%w: invalid data item id: %s", ErrInvalidStatisticRequest, dataItem.ID)
	}
}

// GetPaymentStatistic computes every requested data item concurrently.
func (s *Service) GetPaymentStatistic(ctx context.Context, request *PaymentStatisticRequest) (*PaymentStatisticResponse, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(request.DataItems))
	resChan := make(chan *lo.Entry[StatisticType, []PaymentStatisticResponseDataItem], len(request.DataItems))

	for _, item := range request.DataItems {
		wg.Add(1)
		go func(di *PaymentStatisticDataItem) {
			defer wg.Done()
			res, err := s.getPaymentStatistic(ctx, request, di)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []PaymentStatisticResponseDataItem]{Key: di.ID, Value: res}
		}(item)
	}

	wg.Wait()
	close(errChan)
	close(resChan)

	if err := <-errChan; err != nil {
		return nil, err
	}
	results := make(map[StatisticType][]PaymentStatisticResponseDataItem, len(request.DataItems))
	for entry := range resChan {
		results[entry.Key] = entry.Value
	}
	return &PaymentStatisticResponse{DataItems: results}, nil
}
