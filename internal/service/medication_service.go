package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidBarcode = errors.New("code-barres invalide")
	ErrInvalidAMM     = errors.New("numéro AMM invalide")
)

const barcodeCacheTTL = 5 * time.Minute

// MedicationService is the business logic over the medic table. Every
// successful save runs the Direction-A reference sync as a best-effort
// side step: a sync failure is logged, never surfaced, because the
// medication itself was persisted.
type MedicationService interface {
	List(ctx context.Context, filter dto.MedicationFilter) (*repository.PagedResult[model.Medication], error)
	Get(ctx context.Context, id int) (*model.Medication, error)
	GetByBarcode(ctx context.Context, barcode string) (*model.Medication, error)
	Create(ctx context.Context, req dto.MedicationRequest) (*model.Medication, error)
	Update(ctx context.Context, id int, req dto.MedicationRequest) (*model.Medication, error)
	Deactivate(ctx context.Context, id int) error
}

type medicationService struct {
	repo repository.MedicationRepository
	sync SyncService
	rdb  *redis.Client // optional barcode cache; nil disables caching
}

func NewMedicationService(repo repository.MedicationRepository, sync SyncService, rdb *redis.Client) MedicationService {
	return &medicationService{repo: repo, sync: sync, rdb: rdb}
}

func (s *medicationService) List(ctx context.Context, filter dto.MedicationFilter) (*repository.PagedResult[model.Medication], error) {
	opts := []repository.PageOption{repository.WithOrder("itemname", false)}

	switch filter.Active {
	case "false":
		opts = append(opts, repository.WithFilter("isactive = 0"))
	case "all":
		// no filter
	default:
		opts = append(opts, repository.WithFilter("isactive = 1"))
	}

	if filter.Name != "" {
		opts = append(opts, repository.WithFilter("itemname LIKE ?", "%"+filter.Name+"%"))
	}
	if filter.Labo != "" {
		opts = append(opts, repository.WithFilter("labo = ?", filter.Labo))
	}
	if filter.Family != "" {
		opts = append(opts, repository.WithFilter("fam1 = ? OR fam2 = ? OR fam3 = ? OR family = ?",
			filter.Family, filter.Family, filter.Family, filter.Family))
	}
	if filter.Dci != "" {
		opts = append(opts, repository.WithFilter("dci1 = ? OR dci2 = ? OR dci3 = ? OR dci4 = ?",
			filter.Dci, filter.Dci, filter.Dci, filter.Dci))
	}

	return s.repo.GetPaged(ctx, filter.Page, filter.Limit, opts...)
}

func (s *medicationService) Get(ctx context.Context, id int) (*model.Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *medicationService) GetByBarcode(ctx context.Context, barcode string) (*model.Medication, error) {
	cacheKey := "medic:barcode:" + barcode

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var m model.Medication
			if json.Unmarshal([]byte(cached), &m) == nil {
				return &m, nil
			}
		}
	}

	m, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(m); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, barcodeCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("cache write failed")
			}
		}
	}
	return m, nil
}

func (s *medicationService) Create(ctx context.Context, req dto.MedicationRequest) (*model.Medication, error) {
	if err := checkFormats(req); err != nil {
		return nil, err
	}

	now := time.Now()
	m := &model.Medication{IsActive: 1}
	applyMedicationRequest(m, req)
	m.RebuildDci()
	m.SetAddedAt(now)

	if err := s.repo.Add(ctx, m); err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}

	s.bestEffortSync(ctx, m)
	return m, nil
}

func (s *medicationService) Update(ctx context.Context, id int, req dto.MedicationRequest) (*model.Medication, error) {
	if err := checkFormats(req); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyMedicationRequest(m, req)
	m.RebuildDci()
	m.SetUpdatedAt(time.Now())

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update medication %d: %w", id, err)
	}

	s.bestEffortSync(ctx, m)
	return m, nil
}

func (s *medicationService) Deactivate(ctx context.Context, id int) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	m.IsActive = 0
	m.SetUpdatedAt(time.Now())
	return s.repo.Update(ctx, m)
}

// bestEffortSync runs Direction A and swallows the outcome: the save
// already succeeded, a missed lookup row is only a convenience loss.
func (s *medicationService) bestEffortSync(ctx context.Context, m *model.Medication) {
	if err := s.sync.SyncLookupTables(ctx, m); err != nil {
		log.Error().Err(err).Int("recordid", m.RecordID).
			Msg("synchronisation des références échouée")
	}
}

func checkFormats(req dto.MedicationRequest) error {
	if strings.TrimSpace(req.Barcode) != "" && !ValidBarcode(req.Barcode) {
		return ErrInvalidBarcode
	}
	if !ValidAMM(req.AMM) {
		return ErrInvalidAMM
	}
	return nil
}

func applyMedicationRequest(m *model.Medication, req dto.MedicationRequest) {
	m.MedicNo = req.MedicNo
	m.MedicID = req.MedicID
	m.Barcode = req.Barcode
	m.AMM = req.AMM
	m.ItemName = req.ItemName
	m.ShortName = req.ShortName
	m.Forme = req.Forme
	m.Voie = req.Voie
	m.Present = req.Present
	m.Posology = req.Posology
	m.Dci1 = req.Dci1
	m.Dci2 = req.Dci2
	m.Dci3 = req.Dci3
	m.Dci4 = req.Dci4
	m.Fam1 = req.Fam1
	m.Fam2 = req.Fam2
	m.Fam3 = req.Fam3
	m.Family = req.Family
	m.Labo = req.Labo
	m.Dose1 = req.Dose1
	m.Dose2 = req.Dose2
	m.U1 = req.U1
	m.U2 = req.U2
	m.Price = req.Price
	m.RefPrice = req.RefPrice
	m.NetPrice = req.NetPrice
	m.Tableau = req.Tableau
	m.Indication = req.Indication
	m.Pediatric = req.Pediatric
}
