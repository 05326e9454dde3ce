package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/youssef7511/AVCNA/internal/infra"
	"github.com/youssef7511/AVCNA/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	return db
}

func TestGenericCRUD(t *testing.T) {
	ctx := context.Background()
	repo := New[model.Dci](newTestDB(t))

	d := &model.Dci{ItemName: "Paracétamol"}
	require.NoError(t, repo.Add(ctx, d))
	assert.NotZero(t, d.RecordID)

	got, err := repo.GetByID(ctx, d.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Paracétamol", got.ItemName)

	got.ItemName = "Ibuprofène"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, d.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofène", got.ItemName)

	require.NoError(t, repo.DeleteByID(ctx, d.RecordID))
	_, err = repo.GetByID(ctx, d.RecordID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := New[model.Dci](newTestDB(t))
	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindFirstExists(t *testing.T) {
	ctx := context.Background()
	repo := New[model.Labo](newTestDB(t))
	require.NoError(t, repo.AddRange(ctx, []model.Labo{
		{ItemName: "Sanofi"},
		{ItemName: "Pfizer"},
		{ItemName: "Sanofi"},
	}))

	items, err := repo.Find(ctx, "itemname = ?", "Sanofi")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	first, err := repo.First(ctx, "itemname = ?", "Pfizer")
	require.NoError(t, err)
	assert.Equal(t, "Pfizer", first.ItemName)

	_, err = repo.First(ctx, "itemname = ?", "Novartis")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := repo.Exists(ctx, "itemname = ?", "Pfizer")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "itemname = ?", "Novartis")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = repo.CountWhere(ctx, "itemname = ?", "Sanofi")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestAddRangeEmpty(t *testing.T) {
	repo := New[model.Voie](newTestDB(t))
	assert.NoError(t, repo.AddRange(context.Background(), nil))
}

func TestGetPaged(t *testing.T) {
	ctx := context.Background()
	repo := New[model.Forme](newTestDB(t))

	var formes []model.Forme
	for _, name := range []string{"Comprimé", "Gélule", "Sirop", "Pommade", "Collyre"} {
		formes = append(formes, model.Forme{ItemName: name})
	}
	require.NoError(t, repo.AddRange(ctx, formes))

	page, err := repo.GetPaged(ctx, 1, 2, WithOrder("itemname", false))
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.PageNumber)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Collyre", page.Items[0].ItemName)
	assert.Equal(t, "Comprimé", page.Items[1].ItemName)

	page, err = repo.GetPaged(ctx, 3, 2, WithOrder("itemname", false))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sirop", page.Items[0].ItemName)

	// Filter narrows both the items and the total.
	page, err = repo.GetPaged(ctx, 1, 10, WithFilter("itemname LIKE ?", "Co%"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)

	// Out of range paging values fall back to sane defaults.
	page, err = repo.GetPaged(ctx, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 50, page.PageSize)
}

func TestMedicationFanOutQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicationRepository(newTestDB(t))

	require.NoError(t, repo.AddRange(ctx, []model.Medication{
		{ItemName: "DOLIPRANE", Dci1: "Paracétamol", Fam1: "Antalgique", Labo: "Sanofi", Forme: "Comprimé", Voie: "Orale", IsActive: 1},
		{ItemName: "EFFERALGAN", Dci2: "Paracétamol", Family: "Antalgique", Labo: "UPSA", IsActive: 1},
		{ItemName: "ADVIL", Dci1: "Ibuprofène", Fam1: "AINS", Labo: "Pfizer", IsActive: 1},
	}))

	meds, err := repo.FindBySubstance(ctx, "Paracétamol")
	require.NoError(t, err)
	assert.Len(t, meds, 2)

	// Matching is case-sensitive.
	meds, err = repo.FindBySubstance(ctx, "paracétamol")
	require.NoError(t, err)
	assert.Empty(t, meds)

	n, err := repo.CountByFamily(ctx, "Antalgique")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.CountByLabo(ctx, "Pfizer")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	meds, err = repo.FindByForme(ctx, "Comprimé")
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "DOLIPRANE", meds[0].ItemName)

	n, err = repo.CountByVoie(ctx, "Orale")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFindByBarcodeSkipsInactive(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicationRepository(newTestDB(t))

	require.NoError(t, repo.AddRange(ctx, []model.Medication{
		{ItemName: "ANCIEN", Barcode: "6194000123457", IsActive: 0},
		{ItemName: "ACTUEL", Barcode: "6194000765432", IsActive: 1},
	}))

	m, err := repo.FindByBarcode(ctx, "6194000765432")
	require.NoError(t, err)
	assert.Equal(t, "ACTUEL", m.ItemName)

	_, err = repo.FindByBarcode(ctx, "6194000123457")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicationRepository(newTestDB(t))

	require.NoError(t, repo.AddRange(ctx, []model.Medication{
		{ItemName: "A", Labo: "Ancien nom", IsActive: 1},
		{ItemName: "B", Labo: "Ancien nom", IsActive: 1},
	}))

	meds, err := repo.FindByLabo(ctx, "Ancien nom")
	require.NoError(t, err)
	for i := range meds {
		meds[i].Labo = "Nouveau nom"
	}
	require.NoError(t, repo.UpdateAll(ctx, meds))

	n, err := repo.CountByLabo(ctx, "Nouveau nom")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	assert.NoError(t, repo.UpdateAll(ctx, nil))
}

func TestStockQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepository(newTestDB(t))

	soon := time.Now().AddDate(0, 0, 15)
	later := time.Now().AddDate(1, 0, 0)

	require.NoError(t, repo.AddRange(ctx, []model.Stock{
		{MedicID: 1, MedicName: "DOLIPRANE", BatchNo: "L1", Quantity: 3, MinStock: 10, MaxStock: 100, ExpiryDate: &later},
		{MedicID: 1, MedicName: "DOLIPRANE", BatchNo: "L2", Quantity: 40, MinStock: 10, MaxStock: 100, ExpiryDate: &soon},
		{MedicID: 2, MedicName: "ADVIL", BatchNo: "L3", Quantity: 0, MinStock: 5, MaxStock: 50, ExpiryDate: &soon},
	}))

	low, err := repo.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	// Ordered by quantity, empties first.
	assert.Equal(t, "L3", low[0].BatchNo)
	assert.Equal(t, "L1", low[1].BatchNo)

	exp, err := repo.ExpiringBefore(ctx, time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, exp, 2)

	n, err := repo.CountExpiringBefore(ctx, time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.CountLowStock(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	line, err := repo.FindByMedicAndBatch(ctx, 1, "L2")
	require.NoError(t, err)
	assert.Equal(t, 40, line.Quantity)

	_, err = repo.FindByMedicAndBatch(ctx, 1, "L9")
	assert.ErrorIs(t, err, ErrNotFound)

	// FIFO candidate: earliest expiry with stock left, empty lines ignored.
	first, err := repo.FirstExpiring(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "L2", first.BatchNo)

	_, err = repo.FirstExpiring(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
