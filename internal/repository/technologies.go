package repository

import (
	"context"

	"gorm.io/gorm"

	"portfolio-server/internal/models"
)

// TechnologyRepository persists technologies with GORM.
type TechnologyRepository struct {
	DB *gorm.DB
}

// NewTechnologyRepository creates a new TechnologyRepository.
func NewTechnologyRepository(db *gorm.DB) *TechnologyRepository {
	return &TechnologyRepository{DB: db}
}

func (r *TechnologyRepository) List(ctx context.Context) ([]models.Technology, error) {
	technologies := []models.Technology{}
	if err := r.DB.WithContext(ctx).Order("name asc").Find(&technologies).Error; err != nil {
		return nil, err
	}
	return technologies, nil
}

func (r *TechnologyRepository) Get(ctx context.Context, id string) (*models.Technology, error) {
	var technology models.Technology
	if err := r.DB.WithContext(ctx).First(&technology, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &technology, nil
}

func (r *TechnologyRepository) Create(ctx context.Context, technology *models.Technology) error {
	return mapError(r.DB.WithContext(ctx).Create(technology).Error)
}

func (r *TechnologyRepository) Save(ctx context.Context, technology *models.Technology) error {
	return mapError(r.DB.WithContext(ctx).Save(technology).Error)
}

func (r *TechnologyRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&models.Technology{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindBySlugs resolves slugs in one query. Unknown slugs are absent from the result.
func (r *TechnologyRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Technology, error) {
	technologies := []models.Technology{}
	if len(slugs) == 0 {
		return technologies, nil
	}
	if err := r.DB.WithContext(ctx).Where("slug IN ?", slugs).Order("name asc").Find(&technologies).Error; err != nil {
		return nil, err
	}
	return technologies, nil
}

// Usage counts the join rows referencing the technology.
func (r *TechnologyRepository) Usage(ctx context.Context, id string) (models.TechnologyUsage, error) {
	var usage models.TechnologyUsage
	counts := []struct {
		table string
		dest  *int64
	}{
		{"project_technologies", &usage.Projects},
		{"experience_technologies", &usage.Experiences},
		{"engagement_technologies", &usage.Engagements},
	}
	for _, c := range counts {
		if err := r.DB.WithContext(ctx).Table(c.table).Where("technology_id = ?", id).Count(c.dest).Error; err != nil {
			return models.TechnologyUsage{}, err
		}
	}
	return usage, nil
}

func (r *TechnologyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Technology{}).Count(&count).Error
	return count, err
}
