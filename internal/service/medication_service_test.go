package service

import (
	"context"
	"testing"

	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMedicationFixture(t *testing.T) (MedicationService, *syncDeps) {
	t.Helper()
	db := newTestDB(t)
	deps := &syncDeps{
		medications: repository.NewMedicationRepository(db),
		dcis:        repository.New[model.Dci](db),
		families:    repository.New[model.Family](db),
		labos:       repository.New[model.Labo](db),
		formes:      repository.New[model.Forme](db),
		voies:       repository.New[model.Voie](db),
	}
	sync := NewSyncService(deps.medications, deps.dcis, deps.families, deps.labos, deps.formes, deps.voies)
	return NewMedicationService(deps.medications, sync, nil), deps
}

type syncDeps struct {
	medications repository.MedicationRepository
	dcis        repository.Repository[model.Dci]
	families    repository.Repository[model.Family]
	labos       repository.Repository[model.Labo]
	formes      repository.Repository[model.Forme]
	voies       repository.Repository[model.Voie]
}

func TestCreateMedicationSyncsLookups(t *testing.T) {
	ctx := context.Background()
	svc, deps := newMedicationFixture(t)

	m, err := svc.Create(ctx, dto.MedicationRequest{
		ItemName: "DOLIPRANE 1000",
		Dci1:     "Paracétamol",
		Fam1:     "Antalgique",
		Labo:     "Sanofi",
		Forme:    "Comprimé",
		Voie:     "Orale",
	})
	require.NoError(t, err)
	assert.NotZero(t, m.RecordID)
	assert.Equal(t, 1, m.IsActive)
	assert.Equal(t, "Paracétamol", m.Dci, "combined DCI rebuilt on create")
	assert.NotNil(t, m.AddedAt)

	// Direction A: the lookup rows now exist.
	for _, check := range []struct {
		exists func() (bool, error)
	}{
		{func() (bool, error) { return deps.dcis.Exists(ctx, "itemname = ?", "Paracétamol") }},
		{func() (bool, error) { return deps.families.Exists(ctx, "itemname = ?", "Antalgique") }},
		{func() (bool, error) { return deps.labos.Exists(ctx, "itemname = ?", "Sanofi") }},
		{func() (bool, error) { return deps.formes.Exists(ctx, "itemname = ?", "Comprimé") }},
		{func() (bool, error) { return deps.voies.Exists(ctx, "itemname = ?", "Orale") }},
	} {
		ok, err := check.exists()
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestCreateMedicationRejectsBadFormats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMedicationFixture(t)

	_, err := svc.Create(ctx, dto.MedicationRequest{ItemName: "X", Barcode: "12"})
	assert.ErrorIs(t, err, ErrInvalidBarcode)

	_, err = svc.Create(ctx, dto.MedicationRequest{ItemName: "X", AMM: "/2020"})
	assert.ErrorIs(t, err, ErrInvalidAMM)
}

func TestUpdateMedicationRebuildsDci(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMedicationFixture(t)

	m, err := svc.Create(ctx, dto.MedicationRequest{ItemName: "BITHERAPIE", Dci1: "A", Dci2: "B"})
	require.NoError(t, err)
	assert.Equal(t, "A + B", m.Dci)

	m, err = svc.Update(ctx, m.RecordID, dto.MedicationRequest{ItemName: "BITHERAPIE", Dci1: "A"})
	require.NoError(t, err)
	assert.Equal(t, "A", m.Dci)
	assert.NotNil(t, m.UpdatedAt)
}

func TestUpdateMedicationNotFound(t *testing.T) {
	svc, _ := newMedicationFixture(t)
	_, err := svc.Update(context.Background(), 404, dto.MedicationRequest{ItemName: "X"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeactivateMedication(t *testing.T) {
	ctx := context.Background()
	svc, deps := newMedicationFixture(t)

	m, err := svc.Create(ctx, dto.MedicationRequest{ItemName: "RETIRE", Barcode: "6194000123457"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, m.RecordID))

	got, err := deps.medications.GetByID(ctx, m.RecordID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.IsActive)

	// Barcode lookup only serves active medications.
	_, err = svc.GetByBarcode(ctx, "6194000123457")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListMedicationsFilters(t *testing.T) {
	ctx := context.Background()
	svc, deps := newMedicationFixture(t)

	require.NoError(t, deps.medications.AddRange(ctx, []model.Medication{
		{ItemName: "DOLIPRANE", Labo: "Sanofi", IsActive: 1},
		{ItemName: "ADVIL", Labo: "Pfizer", IsActive: 1},
		{ItemName: "ANCIEN", Labo: "Sanofi", IsActive: 0},
	}))

	page, err := svc.List(ctx, dto.MedicationFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount, "inactive rows excluded by default")

	page, err = svc.List(ctx, dto.MedicationFilter{Active: "all", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)

	page, err = svc.List(ctx, dto.MedicationFilter{Active: "false", Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ANCIEN", page.Items[0].ItemName)

	page, err = svc.List(ctx, dto.MedicationFilter{Labo: "Sanofi", Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "DOLIPRANE", page.Items[0].ItemName)

	page, err = svc.List(ctx, dto.MedicationFilter{Name: "DOLI", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)
}
