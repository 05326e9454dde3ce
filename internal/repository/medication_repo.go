package repository

import (
	"context"

	"github.com/youssef7511/AVCNA/internal/model"

	"gorm.io/gorm"
)

// Per-category match conditions for the denormalized medication columns.
// Matching is exact and case-sensitive on purpose: renames and deletes
// only touch rows storing the value verbatim.
const (
	substanceMatch = "dci1 = ? OR dci2 = ? OR dci3 = ? OR dci4 = ?"
	familyMatch    = "fam1 = ? OR fam2 = ? OR fam3 = ? OR family = ?"
	laboMatch      = "labo = ?"
	formeMatch     = "forme = ?"
	voieMatch      = "voie = ?"
)

// MedicationRepository extends the generic contract with the fan-out
// queries of the reference sync: find/count medications naming a lookup
// value in the corresponding denormalized columns, and persist a batch
// of rewritten rows in one transaction.
type MedicationRepository interface {
	Repository[model.Medication]

	FindBySubstance(ctx context.Context, name string) ([]model.Medication, error)
	FindByFamily(ctx context.Context, name string) ([]model.Medication, error)
	FindByLabo(ctx context.Context, name string) ([]model.Medication, error)
	FindByForme(ctx context.Context, name string) ([]model.Medication, error)
	FindByVoie(ctx context.Context, name string) ([]model.Medication, error)

	CountBySubstance(ctx context.Context, name string) (int64, error)
	CountByFamily(ctx context.Context, name string) (int64, error)
	CountByLabo(ctx context.Context, name string) (int64, error)
	CountByForme(ctx context.Context, name string) (int64, error)
	CountByVoie(ctx context.Context, name string) (int64, error)

	FindByBarcode(ctx context.Context, barcode string) (*model.Medication, error)

	// UpdateAll saves every medication in one transaction so a fan-out
	// either applies to all matching rows or to none.
	UpdateAll(ctx context.Context, medications []model.Medication) error
}

type medicationRepo struct {
	Repository[model.Medication]
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) MedicationRepository {
	return &medicationRepo{Repository: New[model.Medication](db), db: db}
}

func (r *medicationRepo) FindBySubstance(ctx context.Context, name string) ([]model.Medication, error) {
	return r.Find(ctx, substanceMatch, name, name, name, name)
}

func (r *medicationRepo) FindByFamily(ctx context.Context, name string) ([]model.Medication, error) {
	return r.Find(ctx, familyMatch, name, name, name, name)
}

func (r *medicationRepo) FindByLabo(ctx context.Context, name string) ([]model.Medication, error) {
	return r.Find(ctx, laboMatch, name)
}

func (r *medicationRepo) FindByForme(ctx context.Context, name string) ([]model.Medication, error) {
	return r.Find(ctx, formeMatch, name)
}

func (r *medicationRepo) FindByVoie(ctx context.Context, name string) ([]model.Medication, error) {
	return r.Find(ctx, voieMatch, name)
}

func (r *medicationRepo) CountBySubstance(ctx context.Context, name string) (int64, error) {
	return r.CountWhere(ctx, substanceMatch, name, name, name, name)
}

func (r *medicationRepo) CountByFamily(ctx context.Context, name string) (int64, error) {
	return r.CountWhere(ctx, familyMatch, name, name, name, name)
}

func (r *medicationRepo) CountByLabo(ctx context.Context, name string) (int64, error) {
	return r.CountWhere(ctx, laboMatch, name)
}

func (r *medicationRepo) CountByForme(ctx context.Context, name string) (int64, error) {
	return r.CountWhere(ctx, formeMatch, name)
}

func (r *medicationRepo) CountByVoie(ctx context.Context, name string) (int64, error) {
	return r.CountWhere(ctx, voieMatch, name)
}

func (r *medicationRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Medication, error) {
	return r.First(ctx, "barcode = ? AND isactive = 1", barcode)
}

func (r *medicationRepo) UpdateAll(ctx context.Context, medications []model.Medication) error {
	if len(medications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range medications {
			if err := tx.Save(&medications[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
