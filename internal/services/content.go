package services

import (
	"context"
	"errors"

	"portfolio-server/internal/apperrors"
	"portfolio-server/internal/models"
	"portfolio-server/internal/repository"
)

// ContentStore is the persistence needed by ContentService.
type ContentStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T, techs *[]models.Technology) error
	Delete(ctx context.Context, id string) error
}

// TechnologyResolver maps slugs to stored technologies.
type TechnologyResolver interface {
	Resolve(ctx context.Context, slugs []string) ([]models.Technology, error)
}

// ContentService manages projects, experiences and engagements. Label names
// the entity in client messages, e.g. "Projet".
type ContentService[T any, PT models.TechnologyTagged[T]] struct {
	store ContentStore[T]
	techs TechnologyResolver
	label string
}

func NewContentService[T any, PT models.TechnologyTagged[T]](store ContentStore[T], techs TechnologyResolver, label string) *ContentService[T, PT] {
	return &ContentService[T, PT]{store: store, techs: techs, label: label}
}

func (s *ContentService[T, PT]) notFound() error {
	return apperrors.NewNotFound(s.label + " introuvable")
}

func (s *ContentService[T, PT]) List(ctx context.Context) ([]T, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal("list "+s.label+" failed", err)
	}
	return items, nil
}

func (s *ContentService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, apperrors.NewInternal("get "+s.label+" failed", err)
	}
	return item, nil
}

// Create stores item with the technologies matching slugs.
func (s *ContentService[T, PT]) Create(ctx context.Context, item *T, slugs []string) (*T, error) {
	techs, err := s.techs.Resolve(ctx, slugs)
	if err != nil {
		return nil, err
	}
	PT(item).SetTechnologies(techs)
	PT(item).Normalize()

	if err := s.store.Create(ctx, item); err != nil {
		return nil, s.writeError("create", err)
	}
	return item, nil
}

// Update loads the record, lets apply modify it and saves it. A nil slugs
// keeps the current technologies; an empty one clears them.
func (s *ContentService[T, PT]) Update(ctx context.Context, id string, apply func(*T), slugs *[]string) (*T, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(item)
	PT(item).Normalize()

	var techs *[]models.Technology
	if slugs != nil {
		resolved, err := s.techs.Resolve(ctx, *slugs)
		if err != nil {
			return nil, err
		}
		techs = &resolved
	}

	if err := s.store.Update(ctx, item, techs); err != nil {
		return nil, s.writeError("update", err)
	}
	return item, nil
}

func (s *ContentService[T, PT]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.notFound()
		}
		return apperrors.NewInternal("delete "+s.label+" failed", err)
	}
	return nil
}

func (s *ContentService[T, PT]) writeError(op string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict(s.label + " : ce slug existe déjà")
	}
	return apperrors.NewInternal(op+" "+s.label+" failed", err)
}
