package models

import "github.com/gosimple/slug"

// TechnologyTagged is implemented by the content records that carry a set of
// technologies through a join table.
type TechnologyTagged[T any] interface {
	*T
	GetID() string
	SetTechnologies([]Technology)
	Normalize()
}

// Timeline holds the optional period covered by a content record.
type Timeline struct {
	StartDate      *Date `json:"startDate"`
	EndDate        *Date `json:"endDate"`
	DurationMonths *int  `json:"durationMonths"`
}

// Normalize fills DurationMonths from the dates when it was not given.
func (t *Timeline) Normalize() {
	if t.DurationMonths != nil || t.StartDate == nil || t.EndDate == nil {
		return
	}
	months := t.StartDate.MonthsUntil(*t.EndDate)
	t.DurationMonths = &months
}

// Project is a portfolio project.
type Project struct {
	BaseModel
	Timeline
	Title        string       `gorm:"size:255;not null" json:"title"`
	Slug         string       `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description  string       `gorm:"type:text" json:"description"`
	Place        *string      `gorm:"size:255" json:"place"`
	Link         *string      `gorm:"size:255" json:"link"`
	Repository   *string      `gorm:"size:255" json:"repository"`
	ImageURL     *string      `gorm:"size:255" json:"imageUrl"`
	Achievements []string     `gorm:"serializer:json;type:json" json:"achievements"`
	Featured     bool         `gorm:"default:false" json:"featured"`
	SortOrder    int          `gorm:"default:0;index" json:"sortOrder"`
	Technologies []Technology `gorm:"many2many:project_technologies;" json:"technologies"`
}

func (p *Project) GetID() string                      { return p.ID }
func (p *Project) SetTechnologies(techs []Technology) { p.Technologies = techs }

// Normalize turns the slug (or the title when it is empty) into a URL slug
// and fills the duration.
func (p *Project) Normalize() {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = slug.Make(p.Slug)
	p.Timeline.Normalize()
}

// Experience is a professional position.
type Experience struct {
	BaseModel
	Timeline
	Title        string       `gorm:"size:255;not null" json:"title"`
	Company      string       `gorm:"size:255;not null" json:"company"`
	Place        *string      `gorm:"size:255" json:"place"`
	Description  string       `gorm:"type:text" json:"description"`
	Achievements []string     `gorm:"serializer:json;type:json" json:"achievements"`
	SortOrder    int          `gorm:"default:0;index" json:"sortOrder"`
	Technologies []Technology `gorm:"many2many:experience_technologies;" json:"technologies"`
}

func (e *Experience) GetID() string                      { return e.ID }
func (e *Experience) SetTechnologies(techs []Technology) { e.Technologies = techs }

// Engagement is a volunteer, associative or community involvement.
type Engagement struct {
	BaseModel
	Timeline
	Title        string       `gorm:"size:255;not null" json:"title"`
	Organization string       `gorm:"size:255;not null" json:"organization"`
	Place        *string      `gorm:"size:255" json:"place"`
	Description  string       `gorm:"type:text" json:"description"`
	KeyPoints    []string     `gorm:"serializer:json;type:json" json:"keyPoints"`
	SortOrder    int          `gorm:"default:0;index" json:"sortOrder"`
	Technologies []Technology `gorm:"many2many:engagement_technologies;" json:"technologies"`
}

func (e *Engagement) GetID() string                      { return e.ID }
func (e *Engagement) SetTechnologies(techs []Technology) { e.Technologies = techs }
