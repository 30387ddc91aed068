package service

import (
	"context"
	"fmt"

	"fulfillment/internal/model"
	"fulfillment/internal/repository"
)

// DTOs
type ProductResponse struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	Price        string `json:"price"`
}

type StockCardResponse struct {
	Product   ProductResponse              `json:"product"`
	Movements []model.InventoryTransaction `json:"movements"`
	Total     int64                        `json:"total"`
	Page      int                          `json:"page"`
	Limit     int                          `json:"limit"`
}

// InventoryService exposes stock levels and their movement history,
// including units put back by return dispositions.
type InventoryService interface {
	GetStockCard(ctx context.Context, productID string, page, limit int) (*StockCardResponse, error)
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	inventoryTxRepo repository.InventoryTxRepository
}

func NewInventoryService(productRepo repository.ProductRepository, inventoryTxRepo repository.InventoryTxRepository) InventoryService {
	return &inventoryService{productRepo: productRepo, inventoryTxRepo: inventoryTxRepo}
}

func (s *inventoryService) GetStockCard(ctx context.Context, productID string, page, limit int) (*StockCardResponse, error) {
	id, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "product")
	}

	movements, total, err := s.inventoryTxRepo.ListByProduct(ctx, id, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock movements: %w", err)
	}

	return &StockCardResponse{
		Product: ProductResponse{
			ID:           product.ID.String(),
			SKU:          product.SKU,
			Name:         product.Name,
			CurrentStock: product.CurrentStock,
			Price:        product.Price.StringFixed(2),
		},
		Movements: movements,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}
