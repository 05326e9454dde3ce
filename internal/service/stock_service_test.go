package service

import (
	"context"
	"testing"
	"time"

	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockFixture(t *testing.T) (StockService, repository.StockRepository, *model.Medication) {
	t.Helper()
	db := newTestDB(t)
	stocks := repository.NewStockRepository(db)
	medications := repository.NewMedicationRepository(db)

	m := &model.Medication{ItemName: "Doliprane 1000mg", NetPrice: 3500, IsActive: 1}
	require.NoError(t, medications.Add(context.Background(), m))

	return NewStockService(stocks, medications, 90), stocks, m
}

func TestAddStockCreatesLineWithDefaults(t *testing.T) {
	svc, _, m := newStockFixture(t)

	line, err := svc.AddStock(context.Background(), dto.AddStockRequest{
		MedicID: m.RecordID, Quantity: 40, BatchNo: "L001",
	})
	require.NoError(t, err)

	assert.Equal(t, "Doliprane 1000mg", line.MedicName)
	assert.Equal(t, 40, line.Quantity)
	assert.Equal(t, 10, line.MinStock)
	assert.Equal(t, 100, line.MaxStock)
	assert.NotNil(t, line.AddedAt)
}

func TestAddStockMergesSameBatch(t *testing.T) {
	svc, stocks, m := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 40, BatchNo: "L001"})
	require.NoError(t, err)
	_, err = svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 20, BatchNo: "L001"})
	require.NoError(t, err)
	_, err = svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 5, BatchNo: "L002"})
	require.NoError(t, err)

	lines, err := stocks.Find(ctx, "medicid = ?", m.RecordID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	merged, err := stocks.FindByMedicAndBatch(ctx, m.RecordID, "L001")
	require.NoError(t, err)
	assert.Equal(t, 60, merged.Quantity)
}

func TestAddStockUnknownMedication(t *testing.T) {
	svc, _, _ := newStockFixture(t)

	_, err := svc.AddStock(context.Background(), dto.AddStockRequest{MedicID: 999, Quantity: 1, BatchNo: "L001"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRemoveStockFIFO(t *testing.T) {
	svc, stocks, m := newStockFixture(t)
	ctx := context.Background()

	soon := time.Now().Add(30 * 24 * time.Hour)
	later := time.Now().Add(300 * 24 * time.Hour)

	_, err := svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 10, BatchNo: "OLD", ExpiryDate: &soon})
	require.NoError(t, err)
	_, err = svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 50, BatchNo: "NEW", ExpiryDate: &later})
	require.NoError(t, err)

	// 25 units: drains OLD (10) then takes 15 from NEW
	require.NoError(t, svc.RemoveStock(ctx, dto.RemoveStockRequest{MedicID: m.RecordID, Quantity: 25}))

	old, err := stocks.FindByMedicAndBatch(ctx, m.RecordID, "OLD")
	require.NoError(t, err)
	assert.Zero(t, old.Quantity)

	newer, err := stocks.FindByMedicAndBatch(ctx, m.RecordID, "NEW")
	require.NoError(t, err)
	assert.Equal(t, 35, newer.Quantity)
}

func TestRemoveStockInsufficient(t *testing.T) {
	svc, stocks, m := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 10, BatchNo: "L001"})
	require.NoError(t, err)

	err = svc.RemoveStock(ctx, dto.RemoveStockRequest{MedicID: m.RecordID, Quantity: 11})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// nothing consumed
	line, err := stocks.FindByMedicAndBatch(ctx, m.RecordID, "L001")
	require.NoError(t, err)
	assert.Equal(t, 10, line.Quantity)
}

func TestAlerts(t *testing.T) {
	svc, stocks, m := newStockFixture(t)
	ctx := context.Background()

	soon := time.Now().Add(10 * 24 * time.Hour)
	far := time.Now().Add(365 * 24 * time.Hour)

	require.NoError(t, stocks.Add(ctx, &model.Stock{MedicID: m.RecordID, MedicName: m.ItemName, Quantity: 2, MinStock: 10, BatchNo: "LOW"}))
	require.NoError(t, stocks.Add(ctx, &model.Stock{MedicID: m.RecordID, MedicName: m.ItemName, Quantity: 50, MinStock: 10, BatchNo: "EXP", ExpiryDate: &soon}))
	require.NoError(t, stocks.Add(ctx, &model.Stock{MedicID: m.RecordID, MedicName: m.ItemName, Quantity: 50, MinStock: 10, BatchNo: "OK", ExpiryDate: &far}))

	alerts, err := svc.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts.LowStock, 1)
	assert.Equal(t, 2, alerts.LowStock[0].CurrentStock)
	assert.Equal(t, 10, alerts.LowStock[0].MinStock)
	require.Len(t, alerts.Expiring, 1)
	assert.Equal(t, "EXP", alerts.Expiring[0].BatchNo)
	assert.Equal(t, 2, alerts.Total)

	total, err := svc.TotalAlertsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestSetThresholds(t *testing.T) {
	svc, stocks, m := newStockFixture(t)
	ctx := context.Background()

	_, err := svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 10, BatchNo: "L001"})
	require.NoError(t, err)
	_, err = svc.AddStock(ctx, dto.AddStockRequest{MedicID: m.RecordID, Quantity: 10, BatchNo: "L002"})
	require.NoError(t, err)

	n, err := svc.SetThresholds(ctx, m.RecordID, dto.ThresholdsRequest{MinStock: 5, MaxStock: 200})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines, err := stocks.Find(ctx, "medicid = ?", m.RecordID)
	require.NoError(t, err)
	for _, l := range lines {
		assert.Equal(t, 5, l.MinStock)
		assert.Equal(t, 200, l.MaxStock)
	}
}

func TestValuation(t *testing.T) {
	svc, stocks, m := newStockFixture(t)
	ctx := context.Background()

	// two batches of the same medication aggregate into one line
	require.NoError(t, stocks.Add(ctx, &model.Stock{MedicID: m.RecordID, MedicName: m.ItemName, Quantity: 10, BatchNo: "A"}))
	require.NoError(t, stocks.Add(ctx, &model.Stock{MedicID: m.RecordID, MedicName: m.ItemName, Quantity: 5, BatchNo: "B"}))

	resp, err := svc.Valuation(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)

	// 3500 millimes = 3.5 dinars; 15 units = 52.5
	assert.Equal(t, "3.5", resp.Lines[0].UnitPrice.String())
	assert.Equal(t, 15, resp.Lines[0].Quantity)
	assert.Equal(t, "52.5", resp.Lines[0].Value.String())
	assert.Equal(t, "52.5", resp.Total.String())
}
