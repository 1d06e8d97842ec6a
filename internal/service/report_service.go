package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-pos-inventory/internal/cache"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SalesSummary struct {
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type SalesSummaryReport struct {
	Summary SalesSummary `json:"summary"`
	Sales   []model.Sale `json:"sales"`
}

type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	StockValuation decimal.Decimal `json:"stock_valuation"`
}

// ReportService serves the read-only aggregation endpoints. Results are
// cached for a short TTL; a cache failure only costs the query, never the
// response.
type ReportService interface {
	LowStockProducts(ctx context.Context) ([]model.Product, error)
	SalesSummaryBetween(ctx context.Context, from, to time.Time) (*SalesSummaryReport, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type reportService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	cache       cache.Cache
	cacheTTL    time.Duration
	threshold   int
	log         *logrus.Logger
}

func NewReportService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, c cache.Cache, cacheTTL time.Duration, lowStockThreshold int, log *logrus.Logger) ReportService {
	if c == nil {
		c = cache.Noop{}
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &reportService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
		threshold:   lowStockThreshold,
		log:         log,
	}
}

func (s *reportService) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	key := fmt.Sprintf("report:low-stock:%d", s.threshold)

	var cached []model.Product
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.productRepo.FindLowStock(s.threshold)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, products)
	return products, nil
}

func (s *reportService) SalesSummaryBetween(ctx context.Context, from, to time.Time) (*SalesSummaryReport, error) {
	key := fmt.Sprintf("report:sales-summary:%d:%d", from.Unix(), to.Unix())

	var cached SalesSummaryReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	count, revenue, err := s.saleRepo.SummaryBetween(from, to)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindBetween(from, to)
	if err != nil {
		return nil, err
	}

	report := &SalesSummaryReport{
		Summary: SalesSummary{TotalSales: count, TotalRevenue: revenue},
		Sales:   sales,
	}
	s.toCache(ctx, key, report)
	return report, nil
}

func (s *reportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	key := "report:dashboard"

	var cached DashboardStats
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	total, lowStock, valuation, err := s.productRepo.Stats(s.threshold)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:  total,
		LowStockCount:  lowStock,
		StockValuation: valuation,
	}
	s.toCache(ctx, key, stats)
	return stats, nil
}

func (s *reportService) fromCache(ctx context.Context, key string, out interface{}) bool {
	payload, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("report cache read failed")
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("report cache payload corrupt")
		return false
	}
	return true
}

func (s *reportService) toCache(ctx context.Context, key string, v interface{}) {
	if s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("report cache write failed")
	}
}
