package service

import (
	"context"
	"strings"
	"time"

	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"
)

// InteractionService manages the drug interaction table and answers
// "which known interactions involve any of these substances".
type InteractionService interface {
	List(ctx context.Context, page, size int) (*repository.PagedResult[model.Interaction], error)
	Get(ctx context.Context, id int) (*model.Interaction, error)
	Create(ctx context.Context, req dto.InteractionRequest) (*model.Interaction, error)
	Update(ctx context.Context, id int, req dto.InteractionRequest) (*model.Interaction, error)
	Delete(ctx context.Context, id int) error

	// Check returns every interaction where one side matches any of the
	// given substances. Matching is exact on DCI name, like the rest of
	// the reference model.
	Check(ctx context.Context, substances []string) ([]model.Interaction, error)

	// CheckMedication runs Check over a medication's own substances.
	CheckMedication(ctx context.Context, m *model.Medication) ([]model.Interaction, error)
}

type interactionService struct {
	repo repository.Repository[model.Interaction]
}

func NewInteractionService(repo repository.Repository[model.Interaction]) InteractionService {
	return &interactionService{repo: repo}
}

func (s *interactionService) List(ctx context.Context, page, size int) (*repository.PagedResult[model.Interaction], error) {
	return s.repo.GetPaged(ctx, page, size, repository.WithOrder("dci1", false))
}

func (s *interactionService) Get(ctx context.Context, id int) (*model.Interaction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *interactionService) Create(ctx context.Context, req dto.InteractionRequest) (*model.Interaction, error) {
	entity := &model.Interaction{}
	applyInteractionRequest(entity, req)
	entity.SetAddedAt(time.Now())
	if err := s.repo.Add(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *interactionService) Update(ctx context.Context, id int, req dto.InteractionRequest) (*model.Interaction, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInteractionRequest(entity, req)
	entity.SetUpdatedAt(time.Now())
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *interactionService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *interactionService) Check(ctx context.Context, substances []string) ([]model.Interaction, error) {
	names := distinctNonBlank(substances...)
	if len(names) == 0 {
		return nil, nil
	}
	return s.repo.Find(ctx, "dci1 IN ? OR dci2 IN ?", names, names)
}

func (s *interactionService) CheckMedication(ctx context.Context, m *model.Medication) ([]model.Interaction, error) {
	return s.Check(ctx, []string{m.Dci1, m.Dci2, m.Dci3, m.Dci4})
}

func applyInteractionRequest(entity *model.Interaction, req dto.InteractionRequest) {
	entity.Dci1 = strings.TrimSpace(req.Dci1)
	entity.Dci2 = strings.TrimSpace(req.Dci2)
	entity.Level = req.Level
	entity.Description = req.Description
	entity.Conduite = req.Conduite
	entity.Mecanisme = req.Mecanisme
}
