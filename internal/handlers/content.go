package handlers

import (
	"github.com/gin-gonic/gin"

	"portfolio-server/internal/models"
	"portfolio-server/internal/services"
	"portfolio-server/internal/utils"
)

// ContentPayload is a create or update body for a content record.
type ContentPayload[T any] interface {
	Apply(item *T)
	TechnologySlugs() *[]string
}

// ContentHandler serves the CRUD endpoints of projects, experiences and
// engagements. C is the create body, U the update body.
type ContentHandler[T any, PT models.TechnologyTagged[T], C ContentPayload[T], U ContentPayload[T]] struct {
	Service *services.ContentService[T, PT]
}

// NewContentHandler creates a ContentHandler over service.
func NewContentHandler[T any, PT models.TechnologyTagged[T], C ContentPayload[T], U ContentPayload[T]](service *services.ContentService[T, PT]) *ContentHandler[T, PT, C, U] {
	return &ContentHandler[T, PT, C, U]{Service: service}
}

func (h *ContentHandler[T, PT, C, U]) List(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.List(c, items, len(items))
}

func (h *ContentHandler[T, PT, C, U]) Get(c *gin.Context) {
	item, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, item)
}

func (h *ContentHandler[T, PT, C, U]) Create(c *gin.Context) {
	var req C
	if !utils.BindAndValidate(c, &req) {
		return
	}

	item := new(T)
	req.Apply(item)
	var slugs []string
	if s := req.TechnologySlugs(); s != nil {
		slugs = *s
	}

	created, err := h.Service.Create(c.Request.Context(), item, slugs)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Created(c, created)
}

// Update applies the body to the stored record. An omitted technologies
// field keeps the current set; an empty array clears it.
func (h *ContentHandler[T, PT, C, U]) Update(c *gin.Context) {
	var req U
	if !utils.BindAndValidate(c, &req) {
		return
	}

	apply := func(item *T) { req.Apply(item) }
	updated, err := h.Service.Update(c.Request.Context(), c.Param("id"), apply, req.TechnologySlugs())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, updated)
}

func (h *ContentHandler[T, PT, C, U]) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, gin.H{"id": id})
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// setOptional stores src in dst, turning "" into NULL. A nil src keeps dst.
func setOptional(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	v := *src
	*dst = &v
}

func setValue[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

func setPointer[V any](dst **V, src *V) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// TimelineFields is the period shared by every content body.
type TimelineFields struct {
	StartDate      *models.Date `json:"startDate"`
	EndDate        *models.Date `json:"endDate"`
	DurationMonths *int         `json:"durationMonths" binding:"omitempty,min=1"`
}

// apply copies the given fields. Changing a date without a duration drops the
// stored duration so it is computed again.
func (f TimelineFields) apply(t *models.Timeline) {
	if (f.StartDate != nil || f.EndDate != nil) && f.DurationMonths == nil {
		t.DurationMonths = nil
	}
	setPointer(&t.StartDate, f.StartDate)
	setPointer(&t.EndDate, f.EndDate)
	setPointer(&t.DurationMonths, f.DurationMonths)
}
