package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio-server/internal/models"
)

const technologiesAssociation = "Technologies"

// ContentRepository persists projects, experiences and engagements along
// with their technology join rows.
type ContentRepository[T any, PT models.TechnologyTagged[T]] struct {
	DB *gorm.DB
}

// NewContentRepository creates a ContentRepository for the model T.
func NewContentRepository[T any, PT models.TechnologyTagged[T]](db *gorm.DB) *ContentRepository[T, PT] {
	return &ContentRepository[T, PT]{DB: db}
}

// List returns every record with its technologies, in display order.
func (r *ContentRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	err := r.DB.WithContext(ctx).
		Preload(technologiesAssociation).
		Order("sort_order asc").
		Order("start_date desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContentRepository[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.DB.WithContext(ctx).Preload(technologiesAssociation).First(&item, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &item, nil
}

// Create inserts the record and its join rows. Technologies must already exist.
func (r *ContentRepository[T, PT]) Create(ctx context.Context, item *T) error {
	return mapError(r.DB.WithContext(ctx).Create(item).Error)
}

// Update saves the record's columns. When techs is non-nil the technology
// set is replaced by it; otherwise the join rows are left untouched.
func (r *ContentRepository[T, PT]) Update(ctx context.Context, item *T, techs *[]models.Technology) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
			return err
		}
		if techs == nil {
			return nil
		}

		association := tx.Model(item).Association(technologiesAssociation)
		if len(*techs) == 0 {
			return association.Clear()
		}
		return association.Replace(*techs)
	})
	if err != nil {
		return mapError(err)
	}
	if techs != nil {
		PT(item).SetTechnologies(*techs)
	}
	return nil
}

// Delete removes the record and its join rows.
func (r *ContentRepository[T, PT]) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return mapError(err)
		}
		return tx.Select(technologiesAssociation).Delete(&item).Error
	})
}

func (r *ContentRepository[T, PT]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}
