package service

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/model"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"

	"github.com/shopspring/decimal"
)

const topReturnedProductsLimit = 5

type StatisticsFilter struct {
	GroupBy   string // week, month, quarter, year
	StartDate time.Time
	EndDate   time.Time
}

type StatisticsService interface {
	GetReturnStatistics(ctx context.Context, filter StatisticsFilter) (*model.ReturnStatistics, error)
}

type statisticsService struct {
	statsRepo repository.StatisticsRepository
}

func NewStatisticsService(statsRepo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{statsRepo: statsRepo}
}

func (s *statisticsService) GetReturnStatistics(ctx context.Context, filter StatisticsFilter) (*model.ReturnStatistics, error) {
	groupBy := filter.GroupBy
	switch groupBy {
	case "week", "month", "quarter", "year":
	case "":
		groupBy = "month"
	default:
		return nil, returns.Errorf(returns.ErrValidation, "group_by must be one of week, month, quarter, year")
	}
	if filter.EndDate.Before(filter.StartDate) {
		return nil, returns.Errorf(returns.ErrValidation, "end_date is before start_date")
	}

	trend, err := s.statsRepo.GetReturnTrend(ctx, groupBy, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to build return trend: %w", err)
	}
	top, err := s.statsRepo.GetTopReturnedProducts(ctx, filter.StartDate, filter.EndDate, topReturnedProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank returned products: %w", err)
	}
	reasons, err := s.statsRepo.GetReasonBreakdown(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to break down return reasons: %w", err)
	}

	stats := &model.ReturnStatistics{
		TimeRangeStartDate:  filter.StartDate,
		TimeRangeEndDate:    filter.EndDate,
		GroupBy:             groupBy,
		TotalRefunded:       decimal.Zero,
		TotalRestockingFees: decimal.Zero,
		Trend:               trend,
		TopReturnedProducts: top,
		Reasons:             reasons,
	}
	for _, row := range trend {
		stats.TotalRequested += row.Requested
		stats.TotalCompleted += row.Completed
		stats.TotalRefunded = stats.TotalRefunded.Add(row.RefundedAmount)
		stats.TotalRestockingFees = stats.TotalRestockingFees.Add(row.RestockingFees)
	}
	return stats, nil
}
