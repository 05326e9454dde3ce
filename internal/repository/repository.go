package repository

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
)

// ErrNotFound is returned by GetByID/First when no row matches.
var ErrNotFound = errors.New("record not found")

// PagedResult is one page of entities plus paging metadata.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// Repository is the generic data access contract shared by every entity.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling unit testing via in-memory stubs.
//
// Predicates are expressed as GORM conditions (query string + args),
// e.g. Find(ctx, "itemname = ?", name).
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	Find(ctx context.Context, query string, args ...any) ([]T, error)
	First(ctx context.Context, query string, args ...any) (*T, error)
	Add(ctx context.Context, entity *T) error
	AddRange(ctx context.Context, entities []T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
	CountWhere(ctx context.Context, query string, args ...any) (int64, error)
	Exists(ctx context.Context, query string, args ...any) (bool, error)
	GetPaged(ctx context.Context, page, pageSize int, opts ...PageOption) (*PagedResult[T], error)

	// DB exposes the underlying *gorm.DB so callers can open transactions.
	DB() *gorm.DB
}

// PageOption narrows or orders a GetPaged query.
type PageOption func(*gorm.DB) *gorm.DB

// WithFilter restricts the page to rows matching a GORM condition.
func WithFilter(query string, args ...any) PageOption {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}

// WithOrder orders the page by the given column, descending when desc.
func WithOrder(column string, desc bool) PageOption {
	return func(db *gorm.DB) *gorm.DB {
		if desc {
			return db.Order(column + " DESC")
		}
		return db.Order(column + " ASC")
	}
}

type gormRepo[T any] struct{ db *gorm.DB }

// New returns a GORM-backed Repository for T.
func New[T any](db *gorm.DB) Repository[T] { return &gormRepo[T]{db: db} }

func (r *gormRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

func (r *gormRepo[T]) GetByID(ctx context.Context, id int) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).First(&item, "recordid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepo[T]) Find(ctx context.Context, query string, args ...any) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Where(query, args...).Find(&items).Error
	return items, err
}

func (r *gormRepo[T]) First(ctx context.Context, query string, args ...any) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Where(query, args...).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepo[T]) Add(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *gormRepo[T]) AddRange(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entities).Error
}

func (r *gormRepo[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *gormRepo[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}

func (r *gormRepo[T]) DeleteByID(ctx context.Context, id int) error {
	var item T
	return r.db.WithContext(ctx).Where("recordid = ?", id).Delete(&item).Error
}

func (r *gormRepo[T]) Count(ctx context.Context) (int64, error) {
	var item T
	var n int64
	err := r.db.WithContext(ctx).Model(&item).Count(&n).Error
	return n, err
}

func (r *gormRepo[T]) CountWhere(ctx context.Context, query string, args ...any) (int64, error) {
	var item T
	var n int64
	err := r.db.WithContext(ctx).Model(&item).Where(query, args...).Count(&n).Error
	return n, err
}

func (r *gormRepo[T]) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	n, err := r.CountWhere(ctx, query, args...)
	return n > 0, err
}

func (r *gormRepo[T]) GetPaged(ctx context.Context, page, pageSize int, opts ...PageOption) (*PagedResult[T], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var item T
	q := r.db.WithContext(ctx).Model(&item)
	for _, opt := range opts {
		q = opt(q)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []T
	err := q.Limit(pageSize).Offset((page - 1) * pageSize).Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &PagedResult[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (r *gormRepo[T]) DB() *gorm.DB { return r.db }
