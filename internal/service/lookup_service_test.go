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

func newLookupFixture(t *testing.T) (*LookupService[model.Dci, *model.Dci], repository.MedicationRepository) {
	t.Helper()
	db := newTestDB(t)
	medications := repository.NewMedicationRepository(db)
	dcis := repository.New[model.Dci](db)
	sync := NewSyncService(
		medications,
		dcis,
		repository.New[model.Family](db),
		repository.New[model.Labo](db),
		repository.New[model.Forme](db),
		repository.New[model.Voie](db),
	)
	svc := NewLookupService[model.Dci](dcis, FanOutFuncs{
		Rename: sync.RenameDciInMedications,
		Clear:  sync.ClearDciFromMedications,
		Count:  sync.CountMedicationsUsingDci,
	}, "dci", ApplyDci)
	return svc, medications
}

func TestLookupCreate(t *testing.T) {
	svc, _ := newLookupFixture(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, dto.LookupRequest{ItemName: "  Paracetamol  ", ItemInfo: "antalgique"})
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", d.ItemName)
	assert.Equal(t, "antalgique", d.ItemInfo)
	assert.NotNil(t, d.AddedAt)

	_, err = svc.Create(ctx, dto.LookupRequest{ItemName: "Paracetamol"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestLookupUpdateRenameFansOut(t *testing.T) {
	svc, medications := newLookupFixture(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, dto.LookupRequest{ItemName: "Paracetamol"})
	require.NoError(t, err)

	m := &model.Medication{ItemName: "Doliprane", Dci1: "Paracetamol"}
	m.RebuildDci()
	require.NoError(t, medications.Add(ctx, m))

	updated, renamed, err := svc.Update(ctx, d.RecordID, dto.LookupRequest{ItemName: "Paracétamol"})
	require.NoError(t, err)
	assert.Equal(t, "Paracétamol", updated.ItemName)
	assert.Equal(t, 1, renamed)

	got, err := medications.GetByID(ctx, m.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Paracétamol", got.Dci1)
	assert.Equal(t, "Paracétamol", got.Dci)
}

func TestLookupUpdateSameNameNoFanOut(t *testing.T) {
	svc, _ := newLookupFixture(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, dto.LookupRequest{ItemName: "Paracetamol"})
	require.NoError(t, err)

	_, renamed, err := svc.Update(ctx, d.RecordID, dto.LookupRequest{ItemName: "Paracetamol", ItemInfo: "maj"})
	require.NoError(t, err)
	assert.Zero(t, renamed)

	got, err := svc.Get(ctx, d.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "maj", got.ItemInfo)
	assert.NotNil(t, got.UpdatedAt)
}

func TestLookupUpdateDuplicateTarget(t *testing.T) {
	svc, _ := newLookupFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.LookupRequest{ItemName: "Paracetamol"})
	require.NoError(t, err)
	d2, err := svc.Create(ctx, dto.LookupRequest{ItemName: "Ibuprofene"})
	require.NoError(t, err)

	_, _, err = svc.Update(ctx, d2.RecordID, dto.LookupRequest{ItemName: "Paracetamol"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestLookupDeleteClearsReferences(t *testing.T) {
	svc, medications := newLookupFixture(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, dto.LookupRequest{ItemName: "Paracetamol"})
	require.NoError(t, err)

	m := &model.Medication{ItemName: "Doliprane", Dci1: "Paracetamol", Dci2: "Cafeine"}
	m.RebuildDci()
	require.NoError(t, medications.Add(ctx, m))

	cleared, err := svc.Delete(ctx, d.RecordID)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	_, err = svc.Get(ctx, d.RecordID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := medications.GetByID(ctx, m.RecordID)
	require.NoError(t, err)
	assert.Empty(t, got.Dci1)
	assert.Equal(t, "Cafeine", got.Dci)
}

func TestLookupUsage(t *testing.T) {
	svc, medications := newLookupFixture(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, dto.LookupRequest{ItemName: "Paracetamol"})
	require.NoError(t, err)

	require.NoError(t, medications.Add(ctx, &model.Medication{ItemName: "A", Dci1: "Paracetamol"}))
	require.NoError(t, medications.Add(ctx, &model.Medication{ItemName: "B", Dci4: "Paracetamol"}))

	usage, err := svc.Usage(ctx, d.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", usage.ItemName)
	assert.Equal(t, 2, usage.Count)
}
