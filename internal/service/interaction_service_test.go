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

func newInteractionFixture(t *testing.T) InteractionService {
	t.Helper()
	return NewInteractionService(repository.New[model.Interaction](newTestDB(t)))
}

func seedInteractions(t *testing.T, svc InteractionService) {
	t.Helper()
	ctx := context.Background()
	for _, req := range []dto.InteractionRequest{
		{Dci1: "Warfarine", Dci2: "Aspirine", Level: "MAJEUR", Description: "Risque hémorragique majoré"},
		{Dci1: "Paracétamol", Dci2: "Warfarine", Level: "MODERE"},
		{Dci1: "Ibuprofène", Dci2: "Lithium", Level: "MAJEUR"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
}

func TestInteractionCheck(t *testing.T) {
	ctx := context.Background()
	svc := newInteractionFixture(t)
	seedInteractions(t, svc)

	// A substance matches whichever side of the pair it appears on.
	found, err := svc.Check(ctx, []string{"Warfarine"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Check(ctx, []string{"Aspirine", "Lithium"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// Exact match only, same as the rest of the reference model.
	found, err = svc.Check(ctx, []string{"warfarine"})
	require.NoError(t, err)
	assert.Empty(t, found)

	// Blanks and duplicates are dropped before querying.
	found, err = svc.Check(ctx, []string{"", "  ", "Lithium", "Lithium"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = svc.Check(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestInteractionCheckMedication(t *testing.T) {
	ctx := context.Background()
	svc := newInteractionFixture(t)
	seedInteractions(t, svc)

	found, err := svc.CheckMedication(ctx, &model.Medication{
		ItemName: "BITHERAPIE",
		Dci1:     "Paracétamol",
		Dci2:     "Ibuprofène",
	})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestInteractionCRUD(t *testing.T) {
	ctx := context.Background()
	svc := newInteractionFixture(t)

	created, err := svc.Create(ctx, dto.InteractionRequest{
		Dci1: " Warfarine ", Dci2: "Aspirine", Level: "MAJEUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "Warfarine", created.Dci1, "sides are trimmed")
	assert.NotNil(t, created.AddedAt)

	updated, err := svc.Update(ctx, created.RecordID, dto.InteractionRequest{
		Dci1: "Warfarine", Dci2: "Aspirine", Level: "MODERE", Conduite: "Surveillance de l'INR",
	})
	require.NoError(t, err)
	assert.Equal(t, "MODERE", updated.Level)
	assert.NotNil(t, updated.UpdatedAt)

	page, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)

	require.NoError(t, svc.Delete(ctx, created.RecordID))
	_, err = svc.Get(ctx, created.RecordID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
