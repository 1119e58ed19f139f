package handlers

import (
	"portfolio-server/internal/models"
	"portfolio-server/internal/services"
)

type (
	ProjectHandler    = ContentHandler[models.Project, *models.Project, CreateProjectRequest, UpdateProjectRequest]
	ExperienceHandler = ContentHandler[models.Experience, *models.Experience, CreateExperienceRequest, UpdateExperienceRequest]
	EngagementHandler = ContentHandler[models.Engagement, *models.Engagement, CreateEngagementRequest, UpdateEngagementRequest]
)

func NewProjectHandler(service *services.ContentService[models.Project, *models.Project]) *ProjectHandler {
	return NewContentHandler[models.Project, *models.Project, CreateProjectRequest, UpdateProjectRequest](service)
}

func NewExperienceHandler(service *services.ContentService[models.Experience, *models.Experience]) *ExperienceHandler {
	return NewContentHandler[models.Experience, *models.Experience, CreateExperienceRequest, UpdateExperienceRequest](service)
}

func NewEngagementHandler(service *services.ContentService[models.Engagement, *models.Engagement]) *EngagementHandler {
	return NewContentHandler[models.Engagement, *models.Engagement, CreateEngagementRequest, UpdateEngagementRequest](service)
}

type CreateProjectRequest struct {
	TimelineFields
	Title        string   `json:"title" binding:"required,max=255"`
	Slug         string   `json:"slug" binding:"omitempty,max=255"`
	Description  string   `json:"description"`
	Place        *string  `json:"place" binding:"omitempty,max=255"`
	Link         *string  `json:"link" binding:"omitempty,url,max=255"`
	Repository   *string  `json:"repository" binding:"omitempty,url,max=255"`
	ImageURL     *string  `json:"imageUrl" binding:"omitempty,max=255"`
	Achievements []string `json:"achievements"`
	Featured     bool     `json:"featured"`
	SortOrder    int      `json:"sortOrder"`
	Technologies []string `json:"technologies"`
}

func (r CreateProjectRequest) Apply(p *models.Project) {
	r.TimelineFields.apply(&p.Timeline)
	p.Title = r.Title
	p.Slug = r.Slug
	p.Description = r.Description
	setOptional(&p.Place, r.Place)
	setOptional(&p.Link, r.Link)
	setOptional(&p.Repository, r.Repository)
	setOptional(&p.ImageURL, r.ImageURL)
	p.Achievements = r.Achievements
	p.Featured = r.Featured
	p.SortOrder = r.SortOrder
}

func (r CreateProjectRequest) TechnologySlugs() *[]string { return &r.Technologies }

type UpdateProjectRequest struct {
	TimelineFields
	Title        *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Slug         *string   `json:"slug" binding:"omitempty,min=1,max=255"`
	Description  *string   `json:"description"`
	Place        *string   `json:"place" binding:"omitempty,max=255"`
	Link         *string   `json:"link" binding:"omitempty,url,max=255"`
	Repository   *string   `json:"repository" binding:"omitempty,url,max=255"`
	ImageURL     *string   `json:"imageUrl" binding:"omitempty,max=255"`
	Achievements *[]string `json:"achievements"`
	Featured     *bool     `json:"featured"`
	SortOrder    *int      `json:"sortOrder"`
	Technologies *[]string `json:"technologies"`
}

func (r UpdateProjectRequest) Apply(p *models.Project) {
	r.TimelineFields.apply(&p.Timeline)
	setString(&p.Title, r.Title)
	setString(&p.Slug, r.Slug)
	setString(&p.Description, r.Description)
	setOptional(&p.Place, r.Place)
	setOptional(&p.Link, r.Link)
	setOptional(&p.Repository, r.Repository)
	setOptional(&p.ImageURL, r.ImageURL)
	setValue(&p.Achievements, r.Achievements)
	setValue(&p.Featured, r.Featured)
	setValue(&p.SortOrder, r.SortOrder)
}

func (r UpdateProjectRequest) TechnologySlugs() *[]string { return r.Technologies }

type CreateExperienceRequest struct {
	TimelineFields
	Title        string   `json:"title" binding:"required,max=255"`
	Company      string   `json:"company" binding:"required,max=255"`
	Place        *string  `json:"place" binding:"omitempty,max=255"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	SortOrder    int      `json:"sortOrder"`
	Technologies []string `json:"technologies"`
}

func (r CreateExperienceRequest) Apply(e *models.Experience) {
	r.TimelineFields.apply(&e.Timeline)
	e.Title = r.Title
	e.Company = r.Company
	setOptional(&e.Place, r.Place)
	e.Description = r.Description
	e.Achievements = r.Achievements
	e.SortOrder = r.SortOrder
}

func (r CreateExperienceRequest) TechnologySlugs() *[]string { return &r.Technologies }

type UpdateExperienceRequest struct {
	TimelineFields
	Title        *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Company      *string   `json:"company" binding:"omitempty,min=1,max=255"`
	Place        *string   `json:"place" binding:"omitempty,max=255"`
	Description  *string   `json:"description"`
	Achievements *[]string `json:"achievements"`
	SortOrder    *int      `json:"sortOrder"`
	Technologies *[]string `json:"technologies"`
}

func (r UpdateExperienceRequest) Apply(e *models.Experience) {
	r.TimelineFields.apply(&e.Timeline)
	setString(&e.Title, r.Title)
	setString(&e.Company, r.Company)
	setOptional(&e.Place, r.Place)
	setString(&e.Description, r.Description)
	setValue(&e.Achievements, r.Achievements)
	setValue(&e.SortOrder, r.SortOrder)
}

func (r UpdateExperienceRequest) TechnologySlugs() *[]string { return r.Technologies }

type CreateEngagementRequest struct {
	TimelineFields
	Title        string   `json:"title" binding:"required,max=255"`
	Organization string   `json:"organization" binding:"required,max=255"`
	Place        *string  `json:"place" binding:"omitempty,max=255"`
	Description  string   `json:"description"`
	KeyPoints    []string `json:"keyPoints"`
	SortOrder    int      `json:"sortOrder"`
	Technologies []string `json:"technologies"`
}

func (r CreateEngagementRequest) Apply(e *models.Engagement) {
	r.TimelineFields.apply(&e.Timeline)
	e.Title = r.Title
	e.Organization = r.Organization
	setOptional(&e.Place, r.Place)
	e.Description = r.Description
	e.KeyPoints = r.KeyPoints
	e.SortOrder = r.SortOrder
}

func (r CreateEngagementRequest) TechnologySlugs() *[]string { return &r.Technologies }

type UpdateEngagementRequest struct {
	TimelineFields
	Title        *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Organization *string   `json:"organization" binding:"omitempty,min=1,max=255"`
	Place        *string   `json:"place" binding:"omitempty,max=255"`
	Description  *string   `json:"description"`
	KeyPoints    *[]string `json:"keyPoints"`
	SortOrder    *int      `json:"sortOrder"`
	Technologies *[]string `json:"technologies"`
}

func (r UpdateEngagementRequest) Apply(e *models.Engagement) {
	r.TimelineFields.apply(&e.Timeline)
	setString(&e.Title, r.Title)
	setString(&e.Organization, r.Organization)
	setOptional(&e.Place, r.Place)
	setString(&e.Description, r.Description)
	setValue(&e.KeyPoints, r.KeyPoints)
	setValue(&e.SortOrder, r.SortOrder)
}

func (r UpdateEngagementRequest) TechnologySlugs() *[]string { return r.Technologies }
