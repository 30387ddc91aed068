package repository

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository interface {
	GetReturnTrend(ctx context.Context, groupBy string, start, end time.Time) ([]model.ReturnTrendRow, error)
	GetTopReturnedProducts(ctx context.Context, start, end time.Time, limit int) ([]model.ProductRanking, error)
	GetReasonBreakdown(ctx context.Context, start, end time.Time) ([]model.ReasonBreakdown, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// GetReturnTrend buckets return requests by creation period. groupBy must be a
// DATE_TRUNC field (week, month, quarter, year).
func (r *statisticsRepository) GetReturnTrend(ctx context.Context, groupBy string, start, end time.Time) ([]model.ReturnTrendRow, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC($1, rr.created_at), 'YYYY-MM-DD') AS period,
			COUNT(*) AS requested,
			COUNT(*) FILTER (WHERE rr.approved_at IS NOT NULL) AS approved,
			COUNT(*) FILTER (WHERE rr.status = $4) AS rejected,
			COUNT(*) FILTER (WHERE rr.status = $5) AS completed,
			COALESCE(SUM(rr.refunded_amount) FILTER (WHERE rr.status = $5), 0) AS refunded_amount,
			COALESCE(SUM(rr.restocking_fee) FILTER (WHERE rr.status = $5), 0) AS restocking_fees
		FROM return_requests rr
		WHERE rr.created_at >= $2
		  AND rr.created_at <= $3
		GROUP BY DATE_TRUNC($1, rr.created_at)
		ORDER BY period
	`

	var rows []model.ReturnTrendRow
	if err := r.db.WithContext(ctx).Raw(query,
		groupBy, start, end, model.ReturnStatusRejected, model.ReturnStatusCompleted,
	).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query return trend: %w", err)
	}
	return rows, nil
}

func (r *statisticsRepository) GetTopReturnedProducts(ctx context.Context, start, end time.Time, limit int) ([]model.ProductRanking, error) {
	var rankings []model.ProductRanking
	if err := r.db.WithContext(ctx).Table("return_requests").
		Select("products.id as product_id, products.name as product_name, products.sku as product_sku, SUM(return_requests.quantity) as total_quantity, SUM(return_requests.requested_amount) as total_value").
		Joins("JOIN products ON products.id = return_requests.product_id").
		Where("return_requests.status NOT IN ? AND return_requests.created_at >= ? AND return_requests.created_at <= ?",
			[]model.ReturnStatus{model.ReturnStatusRejected, model.ReturnStatusCancelled}, start, end).
		Group("products.id, products.name, products.sku").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rankings).Error; err != nil {
		return nil, fmt.Errorf("failed to query top returned products: %w", err)
	}
	return rankings, nil
}

func (r *statisticsRepository) GetReasonBreakdown(ctx context.Context, start, end time.Time) ([]model.ReasonBreakdown, error) {
	var reasons []model.ReasonBreakdown
	if err := r.db.WithContext(ctx).Table("return_requests").
		Select("reason_code, COUNT(*) as count").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Group("reason_code").
		Order("count DESC").
		Scan(&reasons).Error; err != nil {
		return nil, fmt.Errorf("failed to query return reasons: %w", err)
	}
	return reasons, nil
}
