package service

import (
	"context"
	"strings"
	"time"

	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/rs/zerolog/log"
)

// SyncService keeps the lookup tables and the denormalized text columns
// on medic consistent in both directions, without foreign keys.
//
// Direction A (medication → lookups): saving a medication materializes
// any free-text value it carries as a lookup row if one does not exist
// yet. Best effort: callers log and continue on failure.
//
// Direction B (lookups → medications): renaming or deleting a lookup
// entry propagates to every medication naming it. Matching is exact and
// case-sensitive; a previously typed inconsistent-case value is not
// caught. Direction A's own de-duplication, by contrast, is
// case-insensitive. The mismatch is historical behavior and is kept.
type SyncService interface {
	SyncLookupTables(ctx context.Context, m *model.Medication) error

	RenameDciInMedications(ctx context.Context, oldName, newName string) (int, error)
	ClearDciFromMedications(ctx context.Context, name string) (int, error)
	CountMedicationsUsingDci(ctx context.Context, name string) (int, error)

	RenameFamilyInMedications(ctx context.Context, oldName, newName string) (int, error)
	ClearFamilyFromMedications(ctx context.Context, name string) (int, error)
	CountMedicationsUsingFamily(ctx context.Context, name string) (int, error)

	RenameLaboInMedications(ctx context.Context, oldName, newName string) (int, error)
	ClearLaboFromMedications(ctx context.Context, name string) (int, error)
	CountMedicationsUsingLabo(ctx context.Context, name string) (int, error)

	RenameFormeInMedications(ctx context.Context, oldName, newName string) (int, error)
	ClearFormeFromMedications(ctx context.Context, name string) (int, error)
	CountMedicationsUsingForme(ctx context.Context, name string) (int, error)

	RenameVoieInMedications(ctx context.Context, oldName, newName string) (int, error)
	ClearVoieFromMedications(ctx context.Context, name string) (int, error)
	CountMedicationsUsingVoie(ctx context.Context, name string) (int, error)
}

type syncService struct {
	medications repository.MedicationRepository
	dcis        repository.Repository[model.Dci]
	families    repository.Repository[model.Family]
	labos       repository.Repository[model.Labo]
	formes      repository.Repository[model.Forme]
	voies       repository.Repository[model.Voie]
}

func NewSyncService(
	medications repository.MedicationRepository,
	dcis repository.Repository[model.Dci],
	families repository.Repository[model.Family],
	labos repository.Repository[model.Labo],
	formes repository.Repository[model.Forme],
	voies repository.Repository[model.Voie],
) SyncService {
	return &syncService{
		medications: medications,
		dcis:        dcis,
		families:    families,
		labos:       labos,
		formes:      formes,
		voies:       voies,
	}
}

// ── Direction A : medication → lookup tables ────────────────────────────────

// SyncLookupTables inserts a lookup row for every free-text value on the
// medication that has no row yet. The existence check is exact-match on
// itemname and is not transactionally guarded: two concurrent saves
// introducing the same new name can both pass the check and insert
// twice. Accepted for a single-operator tool.
func (s *syncService) SyncLookupTables(ctx context.Context, m *model.Medication) error {
	now := time.Now()

	for _, name := range distinctNonBlank(m.Dci1, m.Dci2, m.Dci3, m.Dci4) {
		exists, err := s.dcis.Exists(ctx, "itemname = ?", name)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.dcis.Add(ctx, &model.Dci{Tracking: model.Tracking{AddedAt: &now}, ItemName: name}); err != nil {
				return err
			}
			log.Info().Str("itemname", name).Msg("auto-ajout DCI")
		}
	}

	for _, name := range distinctNonBlank(m.Fam1, m.Fam2, m.Fam3, m.Family) {
		exists, err := s.families.Exists(ctx, "itemname = ?", name)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.families.Add(ctx, &model.Family{Tracking: model.Tracking{AddedAt: &now}, ItemName: name}); err != nil {
				return err
			}
			log.Info().Str("itemname", name).Msg("auto-ajout famille")
		}
	}

	if name := strings.TrimSpace(m.Labo); name != "" {
		exists, err := s.labos.Exists(ctx, "itemname = ?", name)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.labos.Add(ctx, &model.Labo{Tracking: model.Tracking{AddedAt: &now}, ItemName: name}); err != nil {
				return err
			}
			log.Info().Str("itemname", name).Msg("auto-ajout labo")
		}
	}

	if name := strings.TrimSpace(m.Forme); name != "" {
		exists, err := s.formes.Exists(ctx, "itemname = ?", name)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.formes.Add(ctx, &model.Forme{Tracking: model.Tracking{AddedAt: &now}, ItemName: name}); err != nil {
				return err
			}
			log.Info().Str("itemname", name).Msg("auto-ajout forme")
		}
	}

	if name := strings.TrimSpace(m.Voie); name != "" {
		exists, err := s.voies.Exists(ctx, "itemname = ?", name)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.voies.Add(ctx, &model.Voie{Tracking: model.Tracking{AddedAt: &now}, ItemName: name}); err != nil {
				return err
			}
			log.Info().Str("itemname", name).Msg("auto-ajout voie")
		}
	}

	return nil
}

// distinctNonBlank trims the values and de-duplicates them
// case-insensitively, keeping the first spelling seen.
func distinctNonBlank(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ── Direction B : lookup tables → medications ───────────────────────────────

// rewrite applies newValue to every field pointer currently equal to
// match, and reports whether anything changed.
func rewrite(fields []*string, match, newValue string) bool {
	changed := false
	for _, f := range fields {
		if *f == match {
			*f = newValue
			changed = true
		}
	}
	return changed
}

func renameGuard(oldName, newName string) bool {
	if strings.TrimSpace(oldName) == "" || strings.TrimSpace(newName) == "" {
		return false
	}
	return !strings.EqualFold(oldName, newName)
}

// ----- DCI -----

func (s *syncService) RenameDciInMedications(ctx context.Context, oldName, newName string) (int, error) {
	if !renameGuard(oldName, newName) {
		return 0, nil
	}

	medications, err := s.medications.FindBySubstance(ctx, oldName)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		m := &medications[i]
		rewrite(m.SubstanceFields(), oldName, newName)
		m.RebuildDci()
		m.SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("old", oldName).Str("new", newName).Int("count", len(medications)).
		Msg("DCI renommée dans les médicaments")
	return len(medications), nil
}

func (s *syncService) ClearDciFromMedications(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}

	medications, err := s.medications.FindBySubstance(ctx, name)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		m := &medications[i]
		rewrite(m.SubstanceFields(), name, "")
		m.RebuildDci()
		m.SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("itemname", name).Int("count", len(medications)).
		Msg("DCI effacée des médicaments")
	return len(medications), nil
}

func (s *syncService) CountMedicationsUsingDci(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}
	n, err := s.medications.CountBySubstance(ctx, name)
	return int(n), err
}

// ----- Familles -----

func (s *syncService) RenameFamilyInMedications(ctx context.Context, oldName, newName string) (int, error) {
	if !renameGuard(oldName, newName) {
		return 0, nil
	}

	medications, err := s.medications.FindByFamily(ctx, oldName)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		m := &medications[i]
		rewrite(m.FamilyFields(), oldName, newName)
		m.SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("old", oldName).Str("new", newName).Int("count", len(medications)).
		Msg("famille renommée dans les médicaments")
	return len(medications), nil
}

func (s *syncService) ClearFamilyFromMedications(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}

	medications, err := s.medications.FindByFamily(ctx, name)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		m := &medications[i]
		rewrite(m.FamilyFields(), name, "")
		m.SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("itemname", name).Int("count", len(medications)).
		Msg("famille effacée des médicaments")
	return len(medications), nil
}

func (s *syncService) CountMedicationsUsingFamily(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}
	n, err := s.medications.CountByFamily(ctx, name)
	return int(n), err
}

// ----- Labos -----

func (s *syncService) RenameLaboInMedications(ctx context.Context, oldName, newName string) (int, error) {
	if !renameGuard(oldName, newName) {
		return 0, nil
	}

	medications, err := s.medications.FindByLabo(ctx, oldName)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		medications[i].Labo = newName
		medications[i].SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("old", oldName).Str("new", newName).Int("count", len(medications)).
		Msg("labo renommé dans les médicaments")
	return len(medications), nil
}

func (s *syncService) ClearLaboFromMedications(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}

	medications, err := s.medications.FindByLabo(ctx, name)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		medications[i].Labo = ""
		medications[i].SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("itemname", name).Int("count", len(medications)).
		Msg("labo effacé des médicaments")
	return len(medications), nil
}

func (s *syncService) CountMedicationsUsingLabo(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}
	n, err := s.medications.CountByLabo(ctx, name)
	return int(n), err
}

// ----- Formes -----

func (s *syncService) RenameFormeInMedications(ctx context.Context, oldName, newName string) (int, error) {
	if !renameGuard(oldName, newName) {
		return 0, nil
	}

	medications, err := s.medications.FindByForme(ctx, oldName)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		medications[i].Forme = newName
		medications[i].SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("old", oldName).Str("new", newName).Int("count", len(medications)).
		Msg("forme renommée dans les médicaments")
	return len(medications), nil
}

func (s *syncService) ClearFormeFromMedications(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}

	medications, err := s.medications.FindByForme(ctx, name)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		medications[i].Forme = ""
		medications[i].SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("itemname", name).Int("count", len(medications)).
		Msg("forme effacée des médicaments")
	return len(medications), nil
}

func (s *syncService) CountMedicationsUsingForme(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}
	n, err := s.medications.CountByForme(ctx, name)
	return int(n), err
}

// ----- Voies -----

func (s *syncService) RenameVoieInMedications(ctx context.Context, oldName, newName string) (int, error) {
	if !renameGuard(oldName, newName) {
		return 0, nil
	}

	medications, err := s.medications.FindByVoie(ctx, oldName)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		medications[i].Voie = newName
		medications[i].SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("old", oldName).Str("new", newName).Int("count", len(medications)).
		Msg("voie renommée dans les médicaments")
	return len(medications), nil
}

func (s *syncService) ClearVoieFromMedications(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}

	medications, err := s.medications.FindByVoie(ctx, name)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for i := range medications {
		medications[i].Voie = ""
		medications[i].SetUpdatedAt(now)
	}

	if err := s.medications.UpdateAll(ctx, medications); err != nil {
		return 0, err
	}
	log.Info().Str("itemname", name).Int("count", len(medications)).
		Msg("voie effacée des médicaments")
	return len(medications), nil
}

func (s *syncService) CountMedicationsUsingVoie(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, nil
	}
	n, err := s.medications.CountByVoie(ctx, name)
	return int(n), err
}
