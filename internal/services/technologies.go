package services

import (
	"context"
	"errors"

	"github.com/gosimple/slug"

	"portfolio-server/internal/apperrors"
	"portfolio-server/internal/models"
	"portfolio-server/internal/repository"
)

const (
	MsgTechnologyNotFound  = "Technologie introuvable"
	MsgTechnologyDuplicate = "Une technologie avec ce nom ou ce slug existe déjà"
	MsgTechnologyInUse     = "Cette technologie est encore utilisée"
)

// TechnologyStore is the persistence needed by TechnologyService.
type TechnologyStore interface {
	List(ctx context.Context) ([]models.Technology, error)
	Get(ctx context.Context, id string) (*models.Technology, error)
	Create(ctx context.Context, technology *models.Technology) error
	Save(ctx context.Context, technology *models.Technology) error
	Delete(ctx context.Context, id string) error
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Technology, error)
	Usage(ctx context.Context, id string) (models.TechnologyUsage, error)
}

// TechnologyInput creates a technology. An empty Slug is derived from Name.
type TechnologyInput struct {
	Name     string
	Slug     string
	Category *string
	Icon     *string
}

// TechnologyPatch updates a technology. Nil fields are kept.
type TechnologyPatch struct {
	Name     *string
	Slug     *string
	Category *string
	Icon     *string
}

type TechnologyService struct {
	store TechnologyStore
}

func NewTechnologyService(store TechnologyStore) *TechnologyService {
	return &TechnologyService{store: store}
}

func (s *TechnologyService) List(ctx context.Context) ([]models.Technology, error) {
	technologies, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal("list technologies failed", err)
	}
	return technologies, nil
}

func (s *TechnologyService) Get(ctx context.Context, id string) (*models.Technology, error) {
	technology, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(MsgTechnologyNotFound)
		}
		return nil, apperrors.NewInternal("get technology failed", err)
	}
	return technology, nil
}

func (s *TechnologyService) Create(ctx context.Context, in TechnologyInput) (*models.Technology, error) {
	technology := &models.Technology{
		Name:     in.Name,
		Slug:     normalizeSlug(in.Slug, in.Name),
		Category: emptyToNil(in.Category),
		Icon:     emptyToNil(in.Icon),
	}
	if technology.Slug == "" {
		return nil, apperrors.NewValidation("Slug invalide")
	}

	if err := s.store.Create(ctx, technology); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(MsgTechnologyDuplicate)
		}
		return nil, apperrors.NewInternal("create technology failed", err)
	}
	return technology, nil
}

func (s *TechnologyService) Update(ctx context.Context, id string, patch TechnologyPatch) (*models.Technology, error) {
	technology, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		technology.Name = *patch.Name
	}
	if patch.Slug != nil {
		technology.Slug = normalizeSlug(*patch.Slug, technology.Name)
	}
	if patch.Category != nil {
		technology.Category = emptyToNil(patch.Category)
	}
	if patch.Icon != nil {
		technology.Icon = emptyToNil(patch.Icon)
	}
	if technology.Slug == "" {
		return nil, apperrors.NewValidation("Slug invalide")
	}

	if err := s.store.Save(ctx, technology); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(MsgTechnologyDuplicate)
		}
		return nil, apperrors.NewInternal("update technology failed", err)
	}
	return technology, nil
}

// Delete removes an unreferenced technology. A referenced one is a conflict
// whose details carry the per-type usage counts.
func (s *TechnologyService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	usage, err := s.store.Usage(ctx, id)
	if err != nil {
		return apperrors.NewInternal("technology usage lookup failed", err)
	}
	if usage.Total() > 0 {
		return apperrors.NewConflict(MsgTechnologyInUse).WithDetails(map[string]interface{}{
			"projects":    usage.Projects,
			"experiences": usage.Experiences,
			"engagements": usage.Engagements,
		})
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound(MsgTechnologyNotFound)
		}
		return apperrors.NewInternal("delete technology failed", err)
	}
	return nil
}

// Resolve looks up technologies by slug. Unknown slugs are dropped.
func (s *TechnologyService) Resolve(ctx context.Context, slugs []string) ([]models.Technology, error) {
	technologies, err := s.store.FindBySlugs(ctx, dedupe(slugs))
	if err != nil {
		return nil, apperrors.NewInternal("technology lookup failed", err)
	}
	return technologies, nil
}

func normalizeSlug(raw, fallback string) string {
	if raw == "" {
		raw = fallback
	}
	return slug.Make(raw)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
