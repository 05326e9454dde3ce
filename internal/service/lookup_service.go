package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/rs/zerolog/log"
)

var ErrDuplicateName = errors.New("une entrée porte déjà ce nom")

// FanOutFuncs bundles the Direction-B operations of one lookup
// category. The sync service owns the actual rewriting; the lookup
// service only decides when to call which.
type FanOutFuncs struct {
	Rename func(ctx context.Context, oldName, newName string) (int, error)
	Clear  func(ctx context.Context, name string) (int, error)
	Count  func(ctx context.Context, name string) (int, error)
}

// LookupEntity is the pointer constraint shared by the five reference
// table types: trackable, named, nothing else required.
type LookupEntity[T any] interface {
	*T
	model.Trackable
	model.Named
}

// LookupService is the CRUD surface shared by the five reference
// tables. Update propagates a name change to the medications before
// touching the lookup row itself; Delete clears the references first.
// If the lookup write then fails the medications have already been
// rewritten, which mirrors the two-step behavior of the desktop tool.
type LookupService[T any, PT LookupEntity[T]] struct {
	repo   repository.Repository[T]
	fanOut FanOutFuncs
	label  string
	apply  func(PT, dto.LookupRequest)
}

func NewLookupService[T any, PT LookupEntity[T]](
	repo repository.Repository[T],
	fanOut FanOutFuncs,
	label string,
	apply func(PT, dto.LookupRequest),
) *LookupService[T, PT] {
	return &LookupService[T, PT]{repo: repo, fanOut: fanOut, label: label, apply: apply}
}

func (s *LookupService[T, PT]) List(ctx context.Context, page, size int) (*repository.PagedResult[T], error) {
	return s.repo.GetPaged(ctx, page, size, repository.WithOrder("itemname", false))
}

func (s *LookupService[T, PT]) Get(ctx context.Context, id int) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LookupService[T, PT]) Create(ctx context.Context, req dto.LookupRequest) (*T, error) {
	name := strings.TrimSpace(req.ItemName)
	exists, err := s.repo.Exists(ctx, "itemname = ?", name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	var entity T
	p := PT(&entity)
	req.ItemName = name
	s.apply(p, req)
	p.SetAddedAt(time.Now())

	if err := s.repo.Add(ctx, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update saves the edited row. When itemname changed, the rename is
// fanned out to the medic table first so that no window exists where a
// medication references a name the lookup no longer carries.
func (s *LookupService[T, PT]) Update(ctx context.Context, id int, req dto.LookupRequest) (*T, int, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	p := PT(entity)

	oldName := p.DisplayName()
	newName := strings.TrimSpace(req.ItemName)

	renamed := 0
	if oldName != newName {
		dup, err := s.repo.Exists(ctx, "itemname = ? AND recordid <> ?", newName, id)
		if err != nil {
			return nil, 0, err
		}
		if dup {
			return nil, 0, ErrDuplicateName
		}
		renamed, err = s.fanOut.Rename(ctx, oldName, newName)
		if err != nil {
			return nil, 0, err
		}
	}

	req.ItemName = newName
	s.apply(p, req)
	p.SetUpdatedAt(time.Now())

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, renamed, err
	}

	if renamed > 0 {
		log.Info().Str("entity", s.label).Str("old", oldName).Str("new", newName).
			Int("medications", renamed).Msg("renommage propagé")
	}
	return entity, renamed, nil
}

// Delete clears every reference on medic, then removes the lookup row.
func (s *LookupService[T, PT]) Delete(ctx context.Context, id int) (int, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	p := PT(entity)

	cleared, err := s.fanOut.Clear(ctx, p.DisplayName())
	if err != nil {
		return 0, err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return cleared, err
	}

	log.Info().Str("entity", s.label).Str("itemname", p.DisplayName()).
		Int("medications", cleared).Msg("entrée supprimée, références effacées")
	return cleared, nil
}

// Usage reports how many medications reference the entry, so the UI can
// warn before a rename or delete.
func (s *LookupService[T, PT]) Usage(ctx context.Context, id int) (*dto.UsageResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := PT(entity)

	n, err := s.fanOut.Count(ctx, p.DisplayName())
	if err != nil {
		return nil, err
	}
	return &dto.UsageResponse{RecordID: id, ItemName: p.DisplayName(), Count: n}, nil
}
