package models

// Technology is a tag attached to projects, experiences and engagements.
type Technology struct {
	BaseModel
	Name     string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug     string  `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Category *string `gorm:"size:100" json:"category"`
	Icon     *string `gorm:"size:255" json:"icon"`
}

// TechnologyUsage counts the records that reference a technology.
type TechnologyUsage struct {
	Projects    int64 `json:"projects"`
	Experiences int64 `json:"experiences"`
	Engagements int64 `json:"engagements"`
}

// Total returns the number of references across all content types.
func (u TechnologyUsage) Total() int64 {
	return u.Projects + u.Experiences + u.Engagements
}
