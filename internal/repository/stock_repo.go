package repository

import (
	"context"
	"errors"
	"time"

	"github.com/youssef7511/AVCNA/internal/model"

	"gorm.io/gorm"
)

// StockRepository extends the generic contract with the inventory
// queries used by the stock service and the scheduled alert scan.
type StockRepository interface {
	Repository[model.Stock]

	LowStock(ctx context.Context) ([]model.Stock, error)
	ExpiringBefore(ctx context.Context, limit time.Time) ([]model.Stock, error)
	FindByMedicAndBatch(ctx context.Context, medicID int, batchNo string) (*model.Stock, error)

	// FirstExpiring returns the non-empty line with the earliest expiry
	// date for a medication, the FIFO candidate for a removal.
	FirstExpiring(ctx context.Context, medicID int) (*model.Stock, error)

	CountLowStock(ctx context.Context) (int64, error)
	CountExpiringBefore(ctx context.Context, limit time.Time) (int64, error)
}

type stockRepo struct {
	Repository[model.Stock]
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepo{Repository: New[model.Stock](db), db: db}
}

func (r *stockRepo) LowStock(ctx context.Context) ([]model.Stock, error) {
	var items []model.Stock
	err := r.db.WithContext(ctx).
		Where("quantity < minstock").
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func (r *stockRepo) ExpiringBefore(ctx context.Context, limit time.Time) ([]model.Stock, error) {
	var items []model.Stock
	err := r.db.WithContext(ctx).
		Where("expirydate IS NOT NULL AND expirydate <= ?", limit).
		Order("expirydate ASC").
		Find(&items).Error
	return items, err
}

func (r *stockRepo) FindByMedicAndBatch(ctx context.Context, medicID int, batchNo string) (*model.Stock, error) {
	return r.First(ctx, "medicid = ? AND batchno = ?", medicID, batchNo)
}

func (r *stockRepo) FirstExpiring(ctx context.Context, medicID int) (*model.Stock, error) {
	var item model.Stock
	err := r.db.WithContext(ctx).
		Where("medicid = ? AND quantity > 0", medicID).
		Order("expirydate ASC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepo) CountLowStock(ctx context.Context) (int64, error) {
	return r.CountWhere(ctx, "quantity < minstock")
}

func (r *stockRepo) CountExpiringBefore(ctx context.Context, limit time.Time) (int64, error) {
	return r.CountWhere(ctx, "expirydate IS NOT NULL AND expirydate <= ?", limit)
}
