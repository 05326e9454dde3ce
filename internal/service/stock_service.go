package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrInsufficientStock = errors.New("quantité en stock insuffisante")

// Default thresholds applied when a medication gets its first stock line.
const (
	defaultMinStock = 10
	defaultMaxStock = 100
)

// pricePerDinar converts the integer millime amounts stored on medic to
// dinars for valuation.
var pricePerDinar = decimal.NewFromInt(1000)

// StockService manages inventory lines per medication batch. Removal is
// FIFO by expiry date: the earliest-expiring batch is consumed first.
type StockService interface {
	List(ctx context.Context, page, size int) (*repository.PagedResult[model.Stock], error)
	ForMedication(ctx context.Context, medicID int) ([]model.Stock, error)

	AddStock(ctx context.Context, req dto.AddStockRequest) (*model.Stock, error)
	RemoveStock(ctx context.Context, req dto.RemoveStockRequest) error
	SetThresholds(ctx context.Context, medicID int, req dto.ThresholdsRequest) (int, error)

	Alerts(ctx context.Context) (*dto.StockAlertsResponse, error)
	TotalAlertsCount(ctx context.Context) (int, error)
	Valuation(ctx context.Context) (*dto.StockValuationResponse, error)
}

type stockService struct {
	stocks        repository.StockRepository
	medications   repository.MedicationRepository
	expiryHorizon time.Duration
}

func NewStockService(stocks repository.StockRepository, medications repository.MedicationRepository, expiryAlertDays int) StockService {
	return &stockService{
		stocks:        stocks,
		medications:   medications,
		expiryHorizon: time.Duration(expiryAlertDays) * 24 * time.Hour,
	}
}

func (s *stockService) List(ctx context.Context, page, size int) (*repository.PagedResult[model.Stock], error) {
	return s.stocks.GetPaged(ctx, page, size, repository.WithOrder("medicname", false))
}

func (s *stockService) ForMedication(ctx context.Context, medicID int) ([]model.Stock, error) {
	return s.stocks.Find(ctx, "medicid = ?", medicID)
}

// AddStock merges into the existing line for the same medication and
// batch, or creates a new line with the default thresholds. The
// medication name is snapshotted on the line at creation time.
func (s *stockService) AddStock(ctx context.Context, req dto.AddStockRequest) (*model.Stock, error) {
	medication, err := s.medications.GetByID(ctx, req.MedicID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	line, err := s.stocks.FindByMedicAndBatch(ctx, req.MedicID, req.BatchNo)
	switch {
	case err == nil:
		line.Quantity += req.Quantity
		if req.ExpiryDate != nil {
			line.ExpiryDate = req.ExpiryDate
		}
		if req.Location != "" {
			line.Location = req.Location
		}
		line.SetUpdatedAt(now)
		if err := s.stocks.Update(ctx, line); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		line = &model.Stock{
			MedicID:    req.MedicID,
			MedicName:  medication.ItemName,
			Quantity:   req.Quantity,
			MinStock:   defaultMinStock,
			MaxStock:   defaultMaxStock,
			ExpiryDate: req.ExpiryDate,
			BatchNo:    req.BatchNo,
			Location:   req.Location,
		}
		line.SetAddedAt(now)
		if err := s.stocks.Add(ctx, line); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	log.Info().Int("medicid", req.MedicID).Str("batchno", req.BatchNo).
		Int("quantity", req.Quantity).Msg("entrée de stock")
	return line, nil
}

// RemoveStock consumes quantity FIFO across batches, earliest expiry
// first. The total on hand is checked up front so a partial removal is
// never left behind on failure.
func (s *stockService) RemoveStock(ctx context.Context, req dto.RemoveStockRequest) error {
	lines, err := s.stocks.Find(ctx, "medicid = ? AND quantity > 0", req.MedicID)
	if err != nil {
		return err
	}

	total := 0
	for i := range lines {
		total += lines[i].Quantity
	}
	if total < req.Quantity {
		return fmt.Errorf("%w : %d disponible, %d demandé", ErrInsufficientStock, total, req.Quantity)
	}

	now := time.Now()
	remaining := req.Quantity
	for remaining > 0 {
		line, err := s.stocks.FirstExpiring(ctx, req.MedicID)
		if err != nil {
			return err
		}

		take := remaining
		if take > line.Quantity {
			take = line.Quantity
		}
		line.Quantity -= take
		line.SetUpdatedAt(now)
		if err := s.stocks.Update(ctx, line); err != nil {
			return err
		}
		remaining -= take
	}

	log.Info().Int("medicid", req.MedicID).Int("quantity", req.Quantity).Msg("sortie de stock")
	return nil
}

// SetThresholds applies the min/max pair to every line of the
// medication and returns how many lines were touched.
func (s *stockService) SetThresholds(ctx context.Context, medicID int, req dto.ThresholdsRequest) (int, error) {
	lines, err := s.stocks.Find(ctx, "medicid = ?", medicID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range lines {
		lines[i].MinStock = req.MinStock
		lines[i].MaxStock = req.MaxStock
		lines[i].SetUpdatedAt(now)
		if err := s.stocks.Update(ctx, &lines[i]); err != nil {
			return i, err
		}
	}
	return len(lines), nil
}

func (s *stockService) Alerts(ctx context.Context) (*dto.StockAlertsResponse, error) {
	low, err := s.stocks.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	expiring, err := s.stocks.ExpiringBefore(ctx, time.Now().Add(s.expiryHorizon))
	if err != nil {
		return nil, err
	}

	resp := &dto.StockAlertsResponse{
		LowStock: make([]dto.LowStockAlert, 0, len(low)),
		Expiring: make([]dto.ExpiryAlert, 0, len(expiring)),
	}
	for i := range low {
		resp.LowStock = append(resp.LowStock, dto.LowStockAlert{
			MedicID:      low[i].MedicID,
			MedicName:    low[i].MedicName,
			CurrentStock: low[i].Quantity,
			MinStock:     low[i].MinStock,
		})
	}
	for i := range expiring {
		resp.Expiring = append(resp.Expiring, dto.ExpiryAlert{
			MedicID:    expiring[i].MedicID,
			MedicName:  expiring[i].MedicName,
			BatchNo:    expiring[i].BatchNo,
			Quantity:   expiring[i].Quantity,
			ExpiryDate: *expiring[i].ExpiryDate,
		})
	}
	resp.Total = len(resp.LowStock) + len(resp.Expiring)
	return resp, nil
}

func (s *stockService) TotalAlertsCount(ctx context.Context) (int, error) {
	low, err := s.stocks.CountLowStock(ctx)
	if err != nil {
		return 0, err
	}
	expiring, err := s.stocks.CountExpiringBefore(ctx, time.Now().Add(s.expiryHorizon))
	if err != nil {
		return 0, err
	}
	return int(low + expiring), nil
}

// Valuation totals quantity on hand times the medication's net price,
// grouped by medication, in dinars.
func (s *stockService) Valuation(ctx context.Context) (*dto.StockValuationResponse, error) {
	lines, err := s.stocks.Find(ctx, "quantity > 0")
	if err != nil {
		return nil, err
	}

	type agg struct {
		name     string
		quantity int
	}
	byMedic := make(map[int]*agg)
	order := make([]int, 0, len(lines))
	for i := range lines {
		a, ok := byMedic[lines[i].MedicID]
		if !ok {
			a = &agg{name: lines[i].MedicName}
			byMedic[lines[i].MedicID] = a
			order = append(order, lines[i].MedicID)
		}
		a.quantity += lines[i].Quantity
	}

	resp := &dto.StockValuationResponse{Lines: make([]dto.ValuationLine, 0, len(order))}
	total := decimal.Zero
	for _, medicID := range order {
		a := byMedic[medicID]
		medication, err := s.medications.GetByID(ctx, medicID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}

		unit := decimal.NewFromInt(int64(medication.NetPrice)).Div(pricePerDinar)
		value := unit.Mul(decimal.NewFromInt(int64(a.quantity)))
		resp.Lines = append(resp.Lines, dto.ValuationLine{
			MedicID:   medicID,
			MedicName: a.name,
			Quantity:  a.quantity,
			UnitPrice: unit,
			Value:     value,
		})
		total = total.Add(value)
	}
	resp.Total = total
	return resp, nil
}
